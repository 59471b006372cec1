package tasks

import (
	"context"
	"fmt"
)

// newSitemapWarmupTask refetches the sitemap ahead of user requests.
func newSitemapWarmupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", SitemapWarmup)

	return func(ctx context.Context) error {
		urls, err := deps.Sitemap.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("sitemap warmup failed: %w", err)
		}

		log.DebugContext(ctx, "Sitemap warmed up", "url_count", len(urls))
		return nil
	}
}
