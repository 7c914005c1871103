package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/logger"
)

// Bot is the part of the Bot API the check-in flow talks to.
// *tgbotapi.BotAPI satisfies it.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

var _ Bot = (*tgbotapi.BotAPI)(nil)

type UpdateHandler func(context.Context, tgbotapi.Update)

type Client struct {
	api *tgbotapi.BotAPI
}

func NewClient(token string, debug bool) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = debug

	logger.Info().Str("bot", api.Self.UserName).Msg("Telegram bot authorized")
	return &Client{api: api}, nil
}

func (c *Client) API() *tgbotapi.BotAPI {
	return c.api
}

// Poll runs long polling until ctx is done. handler is called inline, callers
// that need concurrency fan out themselves.
func (c *Client) Poll(ctx context.Context, timeout int, handler UpdateHandler) error {
	if timeout <= 0 {
		timeout = 30
	}

	// a webhook left over from a previous deploy blocks getUpdates
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logger.Warn().Err(err).Msg("failed to delete webhook before polling")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handler(ctx, update)
		}
	}
}

// SetWebhook registers url with Telegram.
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// Bio returns the user's bio, or "" when it is empty or cannot be fetched.
func Bio(bot Bot, userID int64) (string, error) {
	chat, err := bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: userID},
	})
	if err != nil {
		return "", apperrors.NewTelegramAPIError("getChat", err)
	}
	return strings.TrimSpace(chat.Bio), nil
}

// DeleteMessage goes through Request since deleteMessage returns a bool, not a Message.
func DeleteMessage(bot Bot, chatID int64, messageID int) error {
	if _, err := bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return apperrors.NewTelegramAPIError("deleteMessage", err)
	}
	return nil
}

func AnswerCallback(bot Bot, callbackID string) error {
	if _, err := bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return apperrors.NewTelegramAPIError("answerCallbackQuery", err)
	}
	return nil
}
