package bot

import (
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
	"f1-route-bot/internal/telegram/requests"
)

// протокол callback-даних кнопок
const (
	CB_START      = "start"
	CB_CATEGORIES = "categories"
	CB_HOME       = "home"
	CB_ANON_YES   = "anon:1"
	CB_ANON_NO    = "anon:0"
	// cat:<key>
	CB_CAT_PREFIX = "cat:"
	// info:<section>
	CB_INFO_PREFIX = "info:"
	// st:<ticket_id>:<status>
	CB_STATUS_PREFIX = "st:"
)

func menuKeyboard(d *directory.Directory) *requests.InlineKeyboardMarkup {
	rows := [][]requests.InlineKeyboardButton{
		{{Text: "📝 Подати звернення", CallbackData: CB_START}},
		{{Text: "📂 Категорії", CallbackData: CB_CATEGORIES}},
	}
	if _, ok := d.Info["about"]; ok {
		rows = append(rows, []requests.InlineKeyboardButton{
			{Text: "ℹ️ Про нас", CallbackData: CB_INFO_PREFIX + "about"},
		})
	}
	return &requests.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func anonKeyboard() *requests.InlineKeyboardMarkup {
	return &requests.InlineKeyboardMarkup{InlineKeyboard: [][]requests.InlineKeyboardButton{
		{
			{Text: "Так", CallbackData: CB_ANON_YES},
			{Text: "Ні", CallbackData: CB_ANON_NO},
		},
		{{Text: "✖️ Скасувати", CallbackData: CB_HOME}},
	}}
}

func categoriesKeyboard(d *directory.Directory) *requests.InlineKeyboardMarkup {
	rows := make([][]requests.InlineKeyboardButton, 0, len(d.Categories)+1)
	for _, c := range d.Categories {
		rows = append(rows, []requests.InlineKeyboardButton{
			{Text: c.Label, CallbackData: CB_CAT_PREFIX + c.Key},
		})
	}
	rows = append(rows, []requests.InlineKeyboardButton{
		{Text: "✖️ Скасувати", CallbackData: CB_HOME},
	})
	return &requests.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func cancelKeyboard() *requests.InlineKeyboardMarkup {
	return &requests.InlineKeyboardMarkup{InlineKeyboard: [][]requests.InlineKeyboardButton{
		{{Text: "✖️ Скасувати", CallbackData: CB_HOME}},
	}}
}

// клавіатура відмітки статусу, чіпляється тільки до копій у групах
func statusKeyboard(ticketID string) *requests.InlineKeyboardMarkup {
	return &requests.InlineKeyboardMarkup{InlineKeyboard: [][]requests.InlineKeyboardButton{
		{
			{Text: "🛠 Взяти", CallbackData: CB_STATUS_PREFIX + ticketID + ":" + database.STATUS_IN_PROGRESS},
			{Text: "⏳ Очікує", CallbackData: CB_STATUS_PREFIX + ticketID + ":" + database.STATUS_WAITING},
			{Text: "✅ Виконано", CallbackData: CB_STATUS_PREFIX + ticketID + ":" + database.STATUS_DONE},
		},
	}}
}

// людська назва статусу для підтверджень
func statusLabel(status string) string {
	switch status {
	case database.STATUS_NEW:
		return "нове"
	case database.STATUS_IN_PROGRESS:
		return "в роботі"
	case database.STATUS_WAITING:
		return "очікує"
	case database.STATUS_DONE:
		return "виконано"
	}
	return status
}
