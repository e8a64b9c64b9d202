package database

import "time"

// стани майстра прийому звернення
const (
	// головне меню, початковий і кінцевий стан
	MENU = "menu"
	// очікування вибору анонімності
	ANON = "anon"
	// очікування вибору категорії
	CATEGORY = "category"
	// очікування тексту звернення
	WAIT_MESSAGE = "await_message"
)

// статуси звернення
const (
	STATUS_NEW         = "new"
	STATUS_IN_PROGRESS = "in_progress"
	STATUS_WAITING     = "waiting"
	STATUS_DONE        = "done"
)

type (
	// Звернення. UserID зберігається завжди, навіть для анонімних -
	// анонімність впливає лише на те, що бачать співробітники
	Ticket struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`

		UserID    int64  `json:"user_id"`
		Anonymous bool   `json:"anonymous"`
		Category  string `json:"category"`

		Status   string `json:"status"`
		Assignee string `json:"assignee,omitempty"`
	}

	// Запис про співробітника в сховищі стану
	StaffMember struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username,omitempty"`
		Name     string `json:"name,omitempty"`
		Active   bool   `json:"active"`
	}

	// Запис про робочу групу в сховищі стану
	GroupTarget struct {
		ChatID int64  `json:"chat_id"`
		Name   string `json:"name,omitempty"`
		Active bool   `json:"active"`
	}
)

func IsKnownStatus(status string) bool {
	switch status {
	case STATUS_NEW, STATUS_IN_PROGRESS, STATUS_WAITING, STATUS_DONE:
		return true
	}
	return false
}
