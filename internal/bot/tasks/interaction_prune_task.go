package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/idnt/idntbot/internal/config"
)

// newInteractionPruneTask logs command usage over the retention window and
// then deletes interactions older than it.
func newInteractionPruneTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", InteractionPrune)

	retention := config.DefaultDBRetention
	if deps.Config != nil && deps.Config.Database.Retention > 0 {
		retention = deps.Config.Database.Retention
	}

	return func(ctx context.Context) error {
		cutoff := time.Now().Add(-retention)

		counts, err := deps.Store.CommandCounts(ctx, cutoff)
		if err != nil {
			log.WarnContext(ctx, "Failed to summarize command usage", "error", err)
		} else {
			for _, c := range counts {
				log.InfoContext(ctx, "Command usage", "command", c.Command, "count", c.Count, "since", cutoff)
			}
		}

		deleted, err := deps.Store.PruneInteractions(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune interactions: %w", err)
		}

		log.InfoContext(ctx, "Interaction prune completed", "deleted", deleted, "retention", retention)
		return nil
	}
}
