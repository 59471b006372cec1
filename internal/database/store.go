package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/idnt/idntbot/internal/logger"
)

// Store defines the interface for interaction log operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// SaveInteraction inserts one interaction record.
	SaveInteraction(ctx context.Context, interaction *Interaction) error

	// CommandCounts returns per-command totals for interactions created at or after since.
	CommandCounts(ctx context.Context, since time.Time) ([]CommandCount, error)

	// PruneInteractions deletes interactions created before the cutoff and
	// returns the number of deleted rows.
	PruneInteractions(ctx context.Context, before time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, log *slog.Logger) Store {
	if log == nil {
		log = logger.Discard()
	}
	return &sqlxStore{
		db:     db,
		logger: log.With("component", "store"),
	}
}

// SaveInteraction inserts one interaction record. CreatedAt defaults to now
// and is stored in UTC with second precision.
func (s *sqlxStore) SaveInteraction(ctx context.Context, interaction *Interaction) error {
	if interaction == nil {
		return errors.New("cannot save nil interaction")
	}
	if interaction.Kind == "" {
		return errors.New("interaction must have a kind")
	}

	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	interaction.CreatedAt = normalizeTime(interaction.CreatedAt)

	query := `
        INSERT INTO interactions (update_id, kind, command, chat_id, user_id, created_at)
        VALUES (:update_id, :kind, :command, :chat_id, :user_id, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, interaction)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving interaction",
			"update_id", interaction.UpdateID, "kind", interaction.Kind, "error", err)
		return fmt.Errorf("failed to save interaction (update %d): %w", interaction.UpdateID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		interaction.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving interaction",
			"update_id", interaction.UpdateID, "error", err)
	}

	s.logger.DebugContext(ctx, "Interaction saved",
		"id", interaction.ID, "kind", interaction.Kind, "command", interaction.Command)
	return nil
}

// CommandCounts returns per-command totals since the given time, most used first.
func (s *sqlxStore) CommandCounts(ctx context.Context, since time.Time) ([]CommandCount, error) {
	var counts []CommandCount
	query := `
        SELECT command, COUNT(*) AS count
        FROM interactions
        WHERE created_at >= ? AND command != ''
        GROUP BY command
        ORDER BY count DESC, command ASC;
    `

	if err := s.db.SelectContext(ctx, &counts, query, normalizeTime(since)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Error counting commands", "since", since, "error", err)
		return nil, fmt.Errorf("failed to count commands: %w", err)
	}
	return counts, nil
}

// PruneInteractions deletes interactions older than before.
func (s *sqlxStore) PruneInteractions(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE created_at < ?;`, normalizeTime(before))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return 0, err
		}
		s.logger.ErrorContext(ctx, "Error pruning interactions", "before", before, "error", err)
		return 0, fmt.Errorf("failed to prune interactions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}

	s.logger.InfoContext(ctx, "Pruned interactions", "before", before, "deleted", deleted)
	return deleted, nil
}

// RunSQLMaintenance executes VACUUM and PRAGMA optimize on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
			return err
		}
		s.logger.ErrorContext(ctx, "Failed to run VACUUM", "error", err)
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		s.logger.WarnContext(ctx, "Failed to run PRAGMA optimize", "error", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}

// normalizeTime stores timestamps in UTC with second precision so that their
// text form sorts chronologically.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
