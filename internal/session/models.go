package session

type (
	// стан майстра прийому, прив'язаний до користувача бота.
	// живе тільки в пам'яті процесу і губиться при рестарті
	Chat struct {
		// попередній стан
		PreviousState string `json:"prev_state" binding:"required" example:"menu"`
		// поточний стан
		CurrentState string `json:"curr_state" binding:"required" example:"anon"`

		// вибір анонімності: nil поки не зроблено.
		// переживає цикл подачі, щоб наступного разу пропустити питання
		Anonymous *bool `json:"anonymous,omitempty"`
		// ключ обраної категорії
		Category string `json:"category,omitempty"`
	}
)
