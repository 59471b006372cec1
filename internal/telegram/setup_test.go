package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"

	"github.com/idnt/idntbot/internal/bot/handlers"
	"github.com/idnt/idntbot/internal/config"
)

type fakeRegistrar struct {
	webhook  *bot.SetWebhookParams
	commands *bot.SetMyCommandsParams
	err      error
}

func (f *fakeRegistrar) SetWebhook(_ context.Context, params *bot.SetWebhookParams) (bool, error) {
	f.webhook = params
	return f.err == nil, f.err
}

func (f *fakeRegistrar) SetMyCommands(_ context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	f.commands = params
	return f.err == nil, f.err
}

var testCommands = []handlers.Command{
	{Name: "start", Description: "Bienvenida"},
	{Name: "buscar", Description: "Buscar en la web"},
}

func TestSetup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cfg          config.TelegramConfig
		wantWebhook  bool
		wantCommands bool
	}{
		{name: "nothing configured", cfg: config.TelegramConfig{}},
		{
			name:        "webhook only",
			cfg:         config.TelegramConfig{WebhookURL: "https://bot.idnt.es/", WebhookSecret: "s3cret"},
			wantWebhook: true,
		},
		{
			name:         "commands only",
			cfg:          config.TelegramConfig{RegisterCommands: true},
			wantCommands: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRegistrar{}
			Setup(context.Background(), r, tt.cfg, testCommands, nil)

			if (r.webhook != nil) != tt.wantWebhook {
				t.Errorf("webhook registered = %v, want %v", r.webhook != nil, tt.wantWebhook)
			}
			if r.webhook != nil {
				if r.webhook.URL != tt.cfg.WebhookURL || r.webhook.SecretToken != tt.cfg.WebhookSecret {
					t.Errorf("webhook params = %+v", r.webhook)
				}
			}

			if (r.commands != nil) != tt.wantCommands {
				t.Errorf("commands registered = %v, want %v", r.commands != nil, tt.wantCommands)
			}
			if r.commands != nil {
				got := r.commands.Commands
				if len(got) != 2 || got[0].Command != "start" || got[1].Description != "Buscar en la web" {
					t.Errorf("commands = %+v", got)
				}
			}
		})
	}
}

func TestSetup_FailuresAreNotFatal(t *testing.T) {
	t.Parallel()

	r := &fakeRegistrar{err: errors.New("unauthorized")}
	cfg := config.TelegramConfig{WebhookURL: "https://bot.idnt.es/", RegisterCommands: true}

	Setup(context.Background(), r, cfg, testCommands, nil)

	if r.webhook == nil || r.commands == nil {
		t.Error("expected both calls to be attempted")
	}
	if err := SetupWebhook(context.Background(), r, "https://bot.idnt.es/", ""); err == nil {
		t.Error("SetupWebhook() error = nil, want failure")
	}
}

func TestNewTelegramBot_EmptyToken(t *testing.T) {
	t.Parallel()

	if _, err := NewTelegramBot("", "", nil); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("error = %v, want ErrEmptyToken", err)
	}
}

func TestNewTelegramBot_UsesAPIURL(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	t.Cleanup(api.Close)

	b, err := NewTelegramBot("123:abc", api.URL, nil)
	if err != nil {
		t.Fatalf("NewTelegramBot() error = %v", err)
	}

	if err := RegisterCommands(context.Background(), b, testCommands); err != nil {
		t.Fatalf("RegisterCommands() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 1 || !strings.HasSuffix(paths[0], "/setMyCommands") {
		t.Errorf("api paths = %v, want a single setMyCommands call", paths)
	}
}
