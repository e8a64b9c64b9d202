package requests

import (
	"encoding/json"
	"strings"
)

type (
	// Опис об'єкта - Оновлення (вхідна подія від Telegram)
	Update struct {
		UpdateID int64 `json:"update_id"`
		// вхідне повідомлення (текст, файл, медіа)
		Message *Message `json:"message,omitempty"`
		// натискання inline-кнопки
		CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
	}

	// Опис об'єкта - Повідомлення
	Message struct {
		MessageID int64 `json:"message_id"`
		From      *User `json:"from,omitempty"`
		Chat      Chat  `json:"chat"`
		Date      int64 `json:"date"`

		Text    string `json:"text,omitempty"`
		Caption string `json:"caption,omitempty"`

		Photo    []PhotoSize `json:"photo,omitempty"`
		Document *Document   `json:"document,omitempty"`
		Voice    *Voice      `json:"voice,omitempty"`
		Video    *Video      `json:"video,omitempty"`
	}

	// Опис об'єкта - Користувач
	User struct {
		ID        int64  `json:"id"`
		IsBot     bool   `json:"is_bot"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name,omitempty"`
		Username  string `json:"username,omitempty"`
	}

	// Опис об'єкта - Чат
	Chat struct {
		ID    int64  `json:"id"`
		Type  string `json:"type" example:"private"`
		Title string `json:"title,omitempty"`
	}

	// Опис об'єкта - Натискання кнопки
	CallbackQuery struct {
		ID      string   `json:"id"`
		From    User     `json:"from"`
		Message *Message `json:"message,omitempty"`
		Data    string   `json:"data,omitempty"`
	}

	PhotoSize struct {
		FileID string `json:"file_id"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}

	Document struct {
		FileID   string `json:"file_id"`
		FileName string `json:"file_name,omitempty"`
		MimeType string `json:"mime_type,omitempty"`
	}

	Voice struct {
		FileID   string `json:"file_id"`
		Duration int    `json:"duration"`
	}

	Video struct {
		FileID   string `json:"file_id"`
		Duration int    `json:"duration"`
	}
)

type (
	// Inline-клавіатура під повідомленням
	InlineKeyboardMarkup struct {
		InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
	}

	InlineKeyboardButton struct {
		Text         string `json:"text"`
		CallbackData string `json:"callback_data,omitempty"`
	}
)

type (
	SendMessageRequest struct {
		ChatID           int64                 `json:"chat_id"`
		Text             string                `json:"text"`
		ReplyToMessageID int64                 `json:"reply_to_message_id,omitempty"`
		ReplyMarkup      *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}

	// Надіслати копію повідомлення без посилання на оригінал
	CopyMessageRequest struct {
		ChatID     int64 `json:"chat_id"`
		FromChatID int64 `json:"from_chat_id"`
		MessageID  int64 `json:"message_id"`
	}

	AnswerCallbackRequest struct {
		CallbackQueryID string `json:"callback_query_id"`
		Text            string `json:"text,omitempty"`
		ShowAlert       bool   `json:"show_alert,omitempty"`
	}

	HookSetupRequest struct {
		URL            string   `json:"url"`
		SecretToken    string   `json:"secret_token,omitempty"`
		AllowedUpdates []string `json:"allowed_updates,omitempty"`
	}

	// Загальна обгортка відповіді Bot API
	APIResponse struct {
		OK          bool            `json:"ok"`
		Result      json.RawMessage `json:"result,omitempty"`
		ErrorCode   int             `json:"error_code,omitempty"`
		Description string          `json:"description,omitempty"`
	}
)

// типи вхідних повідомлень для журналу подій
const (
	MESSAGE_TEXT     = "text"
	MESSAGE_PHOTO    = "photo"
	MESSAGE_DOCUMENT = "document"
	MESSAGE_VOICE    = "voice"
	MESSAGE_VIDEO    = "video"
	MESSAGE_OTHER    = "other"
)

func (m *Message) Type() string {
	switch {
	case m.Text != "":
		return MESSAGE_TEXT
	case len(m.Photo) != 0:
		return MESSAGE_PHOTO
	case m.Document != nil:
		return MESSAGE_DOCUMENT
	case m.Voice != nil:
		return MESSAGE_VOICE
	case m.Video != nil:
		return MESSAGE_VIDEO
	}
	return MESSAGE_OTHER
}

// текст команди без аргументів, "" якщо повідомлення не команда
func (m *Message) Command() string {
	if !strings.HasPrefix(m.Text, "/") {
		return ""
	}
	cmd := strings.Fields(m.Text)[0]
	// команда може бути адресована через @BotName
	if i := strings.Index(cmd, "@"); i != -1 {
		cmd = cmd[:i]
	}
	return cmd
}

// аргументи команди одним рядком
func (m *Message) CommandArgs() string {
	if m.Command() == "" {
		return ""
	}
	parts := strings.SplitN(m.Text, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
