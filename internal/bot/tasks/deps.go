// Package tasks implements the scheduled maintenance tasks of the bot.
package tasks

import (
	"context"
	"log/slog"

	"github.com/idnt/idntbot/internal/config"
	"github.com/idnt/idntbot/internal/database"
)

// Refresher refetches the sitemap. It is satisfied by *sitemap.Cache.
type Refresher interface {
	Refresh(ctx context.Context) ([]string, error)
}

// TaskDeps contains the dependencies of scheduled tasks. Store is nil when
// the database is disabled.
type TaskDeps struct {
	Logger  *slog.Logger
	Store   database.Store
	Sitemap Refresher
	Config  *config.Config
}
