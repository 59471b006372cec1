package tasks

import (
	"context"

	"github.com/idnt/idntbot/internal/logger"
)

// ScheduledTaskFunc is the signature of every scheduled task. The context is
// cancelled when the scheduler shuts down.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names, matching the keys under scheduler.tasks in the configuration.
const (
	SQLMaintenance   = "sql_maintenance"
	InteractionPrune = "interaction_prune"
	SitemapWarmup    = "sitemap_warmup"
)

// RegisterAllTasks returns the available tasks keyed by name. Database tasks
// are only registered when a store is configured.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	tasks := make(map[string]ScheduledTaskFunc)

	if deps.Store != nil {
		tasks[SQLMaintenance] = newSQLMaintenanceTask(deps)
		tasks[InteractionPrune] = newInteractionPruneTask(deps)
	} else {
		deps.Logger.Info("Database disabled, skipping database tasks")
	}

	if deps.Sitemap != nil {
		tasks[SitemapWarmup] = newSitemapWarmupTask(deps)
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
