package handlers

import (
	"context"
	"log/slog"

	"github.com/idnt/idntbot/internal/config"
	"github.com/idnt/idntbot/internal/database"
	"github.com/idnt/idntbot/internal/metrics"
)

// URLSource provides the store URL list, typically the sitemap cache.
type URLSource interface {
	URLs(ctx context.Context) []string
}

// HandlerDeps provides dependencies for command and inline query handlers.
// Store and Metrics are optional.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Sitemap URLSource
	Store   database.Store
	Metrics *metrics.Metrics
}
