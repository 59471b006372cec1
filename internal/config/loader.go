package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Environment variables kept from the original deployment. They take
// precedence over the BOT_-prefixed automatic names.
var envBindings = map[string][]string{
	"telegram.token":          {"BOT_TOKEN", "BOT_TELEGRAM_TOKEN"},
	"telegram.webhook_secret": {"BOT_SECRET", "BOT_TELEGRAM_WEBHOOK_SECRET"},
	"server.port":             {"PORT", "BOT_SERVER_PORT"},
}

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional, a missing file is not an error)
// 3. BOT_* environment variables plus BOT_TOKEN, BOT_SECRET and PORT
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := loadConfig(v, path); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Info("Configuration loaded",
		"path", path,
		"port", cfg.Server.Port,
		"sitemap_url", cfg.Sitemap.URL,
		"sitemap_ttl", cfg.Sitemap.TTL,
		"database_path", cfg.Database.Path,
		"webhook_secret_set", cfg.Telegram.WebhookSecret != "")

	return cfg, nil
}

// Validate checks struct constraints on a loaded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return validator.New().Struct(cfg)
}

// loadConfig wires the file and environment sources into v.
func loadConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			slog.Info("Configuration file not found, using defaults and environment", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for optional configuration parameters
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	// Telegram defaults
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.webhook_secret", "")
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.api_url", "")
	v.SetDefault("telegram.register_commands", false)

	// Server defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)
	v.SetDefault("server.max_body_bytes", DefaultServerMaxBodyBytes)

	// Site defaults
	v.SetDefault("site.base_url", DefaultSiteBaseURL)
	v.SetDefault("site.tracking_url", DefaultSiteTrackingURL)
	v.SetDefault("site.maps_url", DefaultSiteMapsURL)
	v.SetDefault("site.instagram_url", DefaultSiteInstagramURL)

	// Sitemap defaults
	v.SetDefault("sitemap.url", DefaultSitemapURL)
	v.SetDefault("sitemap.ttl", DefaultSitemapTTL)
	v.SetDefault("sitemap.timeout", DefaultSitemapTimeout)

	// Database defaults
	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("database.retention", DefaultDBRetention)

	// Scheduler defaults
	for name, task := range DefaultSchedulerTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}

	// Metrics defaults
	v.SetDefault("metrics.addr", "")

	// Bot messages defaults
	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.pong", DefaultMessages.Pong)
	v.SetDefault("messages.unknown_command", DefaultMessages.UnknownCommand)
	v.SetDefault("messages.catalog_header", DefaultMessages.CatalogHeader)
	v.SetDefault("messages.news_header", DefaultMessages.NewsHeader)
	v.SetDefault("messages.search_usage", DefaultMessages.SearchUsage)
	v.SetDefault("messages.search_empty_fmt", DefaultMessages.SearchEmptyFmt)
	v.SetDefault("messages.search_found_fmt", DefaultMessages.SearchFoundFmt)
	v.SetDefault("messages.store_hours", DefaultMessages.StoreHours)
	v.SetDefault("messages.address", DefaultMessages.Address)
	v.SetDefault("messages.address_button", DefaultMessages.AddressButton)
	v.SetDefault("messages.shipping", DefaultMessages.Shipping)
	v.SetDefault("messages.track_usage", DefaultMessages.TrackUsage)
	v.SetDefault("messages.track_fmt", DefaultMessages.TrackFmt)
	v.SetDefault("messages.track_button", DefaultMessages.TrackButton)
	v.SetDefault("messages.contact", DefaultMessages.Contact)
	v.SetDefault("messages.website_button", DefaultMessages.WebsiteButton)
	v.SetDefault("messages.instagram_button", DefaultMessages.InstagramButton)
	v.SetDefault("messages.inline_button", DefaultMessages.InlineButton)
}
