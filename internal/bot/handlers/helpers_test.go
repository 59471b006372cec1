package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/idnt/idntbot/internal/config"
)

// fakeSender records outbound calls.
type fakeSender struct {
	mu       sync.Mutex
	messages []*bot.SendMessageParams
	answers  []*bot.AnswerInlineQueryParams
	err      error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, params)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeSender) AnswerInlineQuery(_ context.Context, params *bot.AnswerInlineQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, params)
	if f.err != nil {
		return false, f.err
	}
	return true, nil
}

func (f *fakeSender) lastMessage(t *testing.T) *bot.SendMessageParams {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(f.messages))
	}
	return f.messages[0]
}

// staticURLs is a URLSource returning a fixed list.
type staticURLs struct {
	mu    sync.Mutex
	urls  []string
	calls int
}

func (s *staticURLs) URLs(context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.urls
}

var testURLs = []string{
	"https://idnt.es/",
	"https://idnt.es/products/sudadera-negra",
	"https://idnt.es/products/camiseta-blanca",
	"https://idnt.es/collections/invierno",
	"https://idnt.es/pages/about",
	"https://idnt.es/products/SUDADERA-roja",
	"https://idnt.es/blogs/news/lanzamiento",
	"https://idnt.es/products/gorra",
	"https://idnt.es/collections/verano",
	"https://idnt.es/products/sudadera-gris",
}

func testDeps(urls []string) (HandlerDeps, *staticURLs) {
	cfg := config.Default()
	cfg.Telegram.Token = "123:abc"
	src := &staticURLs{urls: urls}
	return HandlerDeps{Config: cfg, Sitemap: src}, src
}

func messageUpdate(text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: 42},
			From: &models.User{ID: 7},
			Text: text,
		},
	}
}

func keyboard(t *testing.T, params *bot.SendMessageParams) [][]models.InlineKeyboardButton {
	t.Helper()
	kb, ok := params.ReplyMarkup.(*models.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup = %T, want *models.InlineKeyboardMarkup", params.ReplyMarkup)
	}
	return kb.InlineKeyboard
}
