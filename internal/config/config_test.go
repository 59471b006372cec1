package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestLoadConfig_MissingToken(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestLoadConfig_OriginalEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q, want %q", cfg.Telegram.Token, "123:abc")
	}
	if cfg.Telegram.WebhookSecret != "s3cret" {
		t.Errorf("secret = %q, want %q", cfg.Telegram.WebhookSecret, "s3cret")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if got := cfg.ListenAddr(); got != ":9090" {
		t.Errorf("ListenAddr() = %q, want %q", got, ":9090")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Sitemap.TTL != 600*time.Second {
		t.Errorf("sitemap ttl = %v, want 600s", cfg.Sitemap.TTL)
	}
	if cfg.Sitemap.URL != "https://idnt.es/sitemap.xml" {
		t.Errorf("sitemap url = %q", cfg.Sitemap.URL)
	}
	if cfg.Site.TrackingURL != DefaultSiteTrackingURL {
		t.Errorf("tracking url = %q", cfg.Site.TrackingURL)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Telegram.WebhookSecret != "" {
		t.Errorf("secret = %q, want empty", cfg.Telegram.WebhookSecret)
	}
	if cfg.Messages.UnknownCommand != DefaultMessages.UnknownCommand {
		t.Errorf("unknown command message = %q", cfg.Messages.UnknownCommand)
	}

	task, ok := cfg.Scheduler.Tasks["sitemap_warmup"]
	if !ok {
		t.Fatal("sitemap_warmup task missing from defaults")
	}
	if task.Enabled {
		t.Error("sitemap_warmup should be disabled by default")
	}
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
telegram:
  token: "file-token"
  webhook_secret: "file-secret"
server:
  port: 7000
sitemap:
  ttl: 30s
database:
  path: ""
messages:
  pong: "pong!"
scheduler:
  tasks:
    sitemap_warmup:
      enabled: true
      schedule: "*/30 * * * * *"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Telegram.Token != "file-token" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Sitemap.TTL != 30*time.Second {
		t.Errorf("ttl = %v", cfg.Sitemap.TTL)
	}
	if cfg.Database.Path != "" {
		t.Errorf("database path = %q, want empty", cfg.Database.Path)
	}
	if cfg.Messages.Pong != "pong!" {
		t.Errorf("pong = %q", cfg.Messages.Pong)
	}
	if cfg.Messages.Help != DefaultMessages.Help {
		t.Errorf("help should keep its default, got %q", cfg.Messages.Help)
	}
	if !cfg.Scheduler.Tasks["sitemap_warmup"].Enabled {
		t.Error("sitemap_warmup should be enabled from file")
	}
	if !cfg.Scheduler.Tasks["sql_maintenance"].Enabled {
		t.Error("sql_maintenance should keep its default")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telegram:\n  token: file-token\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Errorf("token = %q, want env-token", cfg.Telegram.Token)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.Telegram.Token = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logger.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "sitemap url not a url",
			mutate:  func(c *Config) { c.Sitemap.URL = "not a url" },
			wantErr: true,
		},
		{
			name:    "enabled task without schedule",
			mutate:  func(c *Config) { c.Scheduler.Tasks["sql_maintenance"] = TaskConfig{Enabled: true} },
			wantErr: true,
		},
		{
			name:    "disabled task without schedule",
			mutate:  func(c *Config) { c.Scheduler.Tasks["sql_maintenance"] = TaskConfig{Enabled: false} },
			wantErr: false,
		},
		{
			name:    "empty message",
			mutate:  func(c *Config) { c.Messages.Pong = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.Telegram.Token = "123:abc"
			tt.mutate(cfg)

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
