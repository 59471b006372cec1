package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Bot API method names reported in Delivery.
const (
	MethodSendMessage       = "sendMessage"
	MethodAnswerInlineQuery = "answerInlineQuery"
)

// Sender is the subset of *bot.Bot used to reply.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerInlineQuery(ctx context.Context, params *bot.AnswerInlineQueryParams) (bool, error)
}

// Delivery is the outcome of one outbound Bot API call. Callers may ignore
// it; the router logs and counts failures.
type Delivery struct {
	Method string
	Target string
	Err    error
}

// Failed reports whether the call returned an error.
func (d Delivery) Failed() bool {
	return d.Err != nil
}

// sendText sends a Markdown text message.
func sendText(ctx context.Context, s Sender, chatID int64, text string) Delivery {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	return Delivery{Method: MethodSendMessage, Target: strconv.FormatInt(chatID, 10), Err: err}
}

// sendButtons sends a plain text message with an inline keyboard, one row per
// argument.
func sendButtons(ctx context.Context, s Sender, chatID int64, text string, rows ...[]models.InlineKeyboardButton) Delivery {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	return Delivery{Method: MethodSendMessage, Target: strconv.FormatInt(chatID, 10), Err: err}
}

// sendList sends header followed by one bullet line per URL.
func sendList(ctx context.Context, s Sender, chatID int64, header string, urls []string) Delivery {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for i, u := range urls {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(u)
	}
	return sendText(ctx, s, chatID, b.String())
}

// urlButton builds a one-button keyboard row opening link.
func urlButton(label, link string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{{Text: label, URL: link}}
}
