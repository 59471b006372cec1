// Package config provides configuration loading, validation, and management
// for the IDNT store bot. It handles defaults, an optional YAML file and
// environment variables, and validates the result before startup continues.
package config

import (
	"errors"
	"strconv"
	"time"
)

// ErrConfiguration marks every error returned while loading configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration parameters for all components
// of the bot: logging, Telegram, the webhook server, the store site, the
// sitemap cache, the interaction database, the scheduler and metrics.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	Sitemap   SitemapConfig   `mapstructure:"sitemap"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig holds the slog handler settings.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the Bot API credentials and webhook registration settings.
type TelegramConfig struct {
	Token            string `mapstructure:"token"             validate:"required"`
	WebhookSecret    string `mapstructure:"webhook_secret"`
	WebhookURL       string `mapstructure:"webhook_url"       validate:"omitempty,url"`
	APIURL           string `mapstructure:"api_url"           validate:"omitempty,url"`
	RegisterCommands bool   `mapstructure:"register_commands"`
}

// ServerConfig holds the webhook HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=1s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   validate:"min=1024"`
}

// SiteConfig holds the store links used in replies and as the sitemap fallback.
type SiteConfig struct {
	BaseURL      string `mapstructure:"base_url"      validate:"required,url"`
	TrackingURL  string `mapstructure:"tracking_url"  validate:"required,url"`
	MapsURL      string `mapstructure:"maps_url"      validate:"required,url"`
	InstagramURL string `mapstructure:"instagram_url" validate:"required,url"`
}

// SitemapConfig controls the remote sitemap fetch and its cache.
type SitemapConfig struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	TTL     time.Duration `mapstructure:"ttl"     validate:"min=1s"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=5m"`
}

// DatabaseConfig holds the interaction log settings. An empty Path disables
// the store and the tasks that depend on it.
type DatabaseConfig struct {
	Path      string        `mapstructure:"path"`
	Retention time.Duration `mapstructure:"retention" validate:"min=1h"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// MessagesConfig holds every user-facing text. Fields ending in Fmt are
// fmt format strings taking a single %s argument.
type MessagesConfig struct {
	Welcome         string `mapstructure:"welcome"          validate:"required"`
	Help            string `mapstructure:"help"             validate:"required"`
	Pong            string `mapstructure:"pong"             validate:"required"`
	UnknownCommand  string `mapstructure:"unknown_command"  validate:"required"`
	CatalogHeader   string `mapstructure:"catalog_header"   validate:"required"`
	NewsHeader      string `mapstructure:"news_header"      validate:"required"`
	SearchUsage     string `mapstructure:"search_usage"     validate:"required"`
	SearchEmptyFmt  string `mapstructure:"search_empty_fmt" validate:"required"`
	SearchFoundFmt  string `mapstructure:"search_found_fmt" validate:"required"`
	StoreHours      string `mapstructure:"store_hours"      validate:"required"`
	Address         string `mapstructure:"address"          validate:"required"`
	AddressButton   string `mapstructure:"address_button"   validate:"required"`
	Shipping        string `mapstructure:"shipping"         validate:"required"`
	TrackUsage      string `mapstructure:"track_usage"      validate:"required"`
	TrackFmt        string `mapstructure:"track_fmt"        validate:"required"`
	TrackButton     string `mapstructure:"track_button"     validate:"required"`
	Contact         string `mapstructure:"contact"          validate:"required"`
	WebsiteButton   string `mapstructure:"website_button"   validate:"required"`
	InstagramButton string `mapstructure:"instagram_button" validate:"required"`
	InlineButton    string `mapstructure:"inline_button"    validate:"required"`
}

// ListenAddr returns the address the webhook server binds to.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
