// Package telegram реализует клиента Telegram-бота: отправку сообщений
// пользователям и проверку доступности бота.
package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client обертка над Bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

// New создает клиента и проверяет токен обращением к Bot API.
func New(token string) (*Client, error) {
	const op = "telegram.New"

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{api: api}, nil
}

// Send отправляет текстовое сообщение в чат. Идентификатор чата хранится
// строкой, Bot API принимает числовой.
func (c *Client) Send(ctx context.Context, chatID, text string) error {
	const op = "telegram.Send"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid chat id %q: %w", op, chatID, err)
	}
	if _, err := c.api.Send(tgbotapi.NewMessage(id, text)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Me возвращает имя пользователя бота, подтверждая его доступность.
func (c *Client) Me() (string, error) {
	const op = "telegram.Me"

	me, err := c.api.GetMe()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return me.UserName, nil
}
