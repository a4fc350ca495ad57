// Package sessionqueue schedules background session work on River.
package sessionqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// QueueService schedules session background jobs.
type QueueService interface {
	EnqueueDuplication(ctx context.Context, source, target sharedtypes.SessionID) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service runs session jobs on a River client.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates the River client and registers the session workers.
// River requires pgx, not database/sql, so it gets its own pool over the
// same DSN the bun handle uses.
func NewService(ctx context.Context, dsn string, store sessiondb.Repository, eventBus Publisher, logger *slog.Logger) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewDuplicateSessionWorker(store, eventBus, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{client: client, pool: pool, logger: logger}, nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Session queue service started")
	return nil
}

// Stop stops the River client and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Session queue service stopped")
	return nil
}

// EnqueueDuplication queues a deep copy of one session into another. ByArgs
// uniqueness keeps a double-click from queuing the same copy twice.
func (s *Service) EnqueueDuplication(ctx context.Context, source, target sharedtypes.SessionID) error {
	result, err := s.client.Insert(ctx, DuplicateSessionJob{
		SourceSessionID: string(source),
		TargetSessionID: string(target),
	}, &river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue session duplication: %w", err)
	}
	s.logger.InfoContext(ctx, "Session duplication job enqueued",
		attr.String("source_session_id", string(source)),
		attr.String("target_session_id", string(target)),
		attr.Any("job_id", result.Job.ID),
	)
	return nil
}
