package client

import (
	"context"
	"encoding/json"

	"f1-route-bot/internal/telegram/requests"
)

// Надіслати текст у чат, опційно з inline-клавіатурою
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, keyboard *requests.InlineKeyboardMarkup) error {
	data := requests.SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.Invoke(ctx, "sendMessage", nil, jsonData)

	return err
}

// Надіслати текст відповіддю на конкретне повідомлення
func (c *Client) ReplyMessage(ctx context.Context, chatID, replyTo int64, text string, keyboard *requests.InlineKeyboardMarkup) error {
	data := requests.SendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: replyTo,
		ReplyMarkup:      keyboard,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.Invoke(ctx, "sendMessage", nil, jsonData)

	return err
}

// Передати копію повідомлення користувача в інший чат.
// copyMessage не тягне за собою посилання на автора оригіналу
func (c *Client) CopyMessage(ctx context.Context, toChatID, fromChatID, messageID int64) error {
	data := requests.CopyMessageRequest{
		ChatID:     toChatID,
		FromChatID: fromChatID,
		MessageID:  messageID,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.Invoke(ctx, "copyMessage", nil, jsonData)

	return err
}

// Підтвердити натискання кнопки. text показується користувачу,
// з alert=true - модальним вікном
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	data := requests.AnswerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.Invoke(ctx, "answerCallbackQuery", nil, jsonData)

	return err
}
