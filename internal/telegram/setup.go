// Package telegram creates the Bot API client and registers the webhook and
// the command menu at startup.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/idnt/idntbot/internal/bot/handlers"
	"github.com/idnt/idntbot/internal/config"
	"github.com/idnt/idntbot/internal/logger"
)

// ErrEmptyToken is returned by NewTelegramBot without a token.
var ErrEmptyToken = errors.New("telegram bot token cannot be empty")

// allowedUpdates are the update types the bot handles.
var allowedUpdates = []string{"message", "inline_query"}

// Registrar is the subset of *bot.Bot used at startup.
type Registrar interface {
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// NewTelegramBot creates an outbound-only Bot API client. Updates arrive
// through the webhook server, so the client never polls and skips getMe.
// A non-empty apiURL replaces the public Bot API endpoint.
func NewTelegramBot(token, apiURL string, log *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "telegram_bot")

	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	if apiURL != "" {
		opts = append(opts, bot.WithServerURL(apiURL))
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot client created", "api_url", apiURL)
	return b, nil
}

// Setup registers the webhook when a URL is configured and publishes the
// command menu when enabled. Failures are logged and do not stop startup.
func Setup(ctx context.Context, r Registrar, cfg config.TelegramConfig, commands []handlers.Command, log *slog.Logger) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "telegram_setup")

	if cfg.WebhookURL != "" {
		if err := SetupWebhook(ctx, r, cfg.WebhookURL, cfg.WebhookSecret); err != nil {
			log.WarnContext(ctx, "Failed to register webhook", "error", err)
		} else {
			log.InfoContext(ctx, "Webhook registered", "url", cfg.WebhookURL)
		}
	}

	if cfg.RegisterCommands {
		if err := RegisterCommands(ctx, r, commands); err != nil {
			log.WarnContext(ctx, "Failed to register command menu", "error", err)
		} else {
			log.InfoContext(ctx, "Command menu registered", "count", len(commands))
		}
	}
}

// SetupWebhook points Telegram at url, signing deliveries with secret.
func SetupWebhook(ctx context.Context, r Registrar, url, secret string) error {
	ok, err := r.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: allowedUpdates,
	})
	if err != nil {
		return fmt.Errorf("setWebhook failed: %w", err)
	}
	if !ok {
		return errors.New("setWebhook was not accepted")
	}
	return nil
}

// RegisterCommands publishes the command list shown in Telegram clients.
func RegisterCommands(ctx context.Context, r Registrar, commands []handlers.Command) error {
	botCommands := make([]models.BotCommand, 0, len(commands))
	for _, c := range commands {
		botCommands = append(botCommands, models.BotCommand{Command: c.Name, Description: c.Description})
	}

	ok, err := r.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: botCommands})
	if err != nil {
		return fmt.Errorf("setMyCommands failed: %w", err)
	}
	if !ok {
		return errors.New("setMyCommands was not accepted")
	}
	return nil
}
