// Package bot supervises the long-running components of the IDNT bot: the
// webhook server, the metrics server and the task scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/idnt/idntbot/internal/logger"
)

// Runner is a component that serves until its context is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// Bot runs its components together and stops all of them when one fails or
// the context is cancelled.
type Bot struct {
	logger    *slog.Logger
	webhook   Runner
	metrics   Runner
	scheduler *Scheduler
}

// NewBot creates the orchestrator. metrics and scheduler may be nil.
func NewBot(log *slog.Logger, webhook, metrics Runner, scheduler *Scheduler) *Bot {
	if log == nil {
		log = logger.Discard()
	}
	return &Bot{
		logger:    log.With("component", "bot_orchestrator"),
		webhook:   webhook,
		metrics:   metrics,
		scheduler: scheduler,
	}
}

// Run blocks until ctx is cancelled or a component fails.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := b.webhook.Run(gCtx); err != nil {
			return fmt.Errorf("webhook server: %w", err)
		}
		return nil
	})

	if b.metrics != nil {
		g.Go(func() error {
			if err := b.metrics.Run(gCtx); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	if b.scheduler != nil {
		g.Go(func() error {
			if err := b.scheduler.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully")
	return nil
}
