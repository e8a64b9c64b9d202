package client

import (
	"context"
	"encoding/json"

	"f1-route-bot/internal/telegram/requests"
)

func (c *Client) SetHook(ctx context.Context, hookAddr, secret string) (content []byte, err error) {
	data := requests.HookSetupRequest{
		URL:            hookAddr,
		SecretToken:    secret,
		AllowedUpdates: []string{"message", "callback_query"},
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return c.Invoke(ctx, "setWebhook", nil, jsonData)
}

func (c *Client) DeleteHook(ctx context.Context) (content []byte, err error) {
	return c.Invoke(ctx, "deleteWebhook", nil, nil)
}
