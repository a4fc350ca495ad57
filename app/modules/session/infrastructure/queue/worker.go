package sessionqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Publisher is the slice of the event bus the worker needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// DuplicateSessionWorker performs the chunked deep copy for a queued
// duplication job and announces completion on the bus.
type DuplicateSessionWorker struct {
	river.WorkerDefaults[DuplicateSessionJob]

	store    sessiondb.Repository
	eventBus Publisher
	logger   *slog.Logger
}

// NewDuplicateSessionWorker creates the duplication worker.
func NewDuplicateSessionWorker(store sessiondb.Repository, eventBus Publisher, logger *slog.Logger) *DuplicateSessionWorker {
	return &DuplicateSessionWorker{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Work copies the source session's data into the target session.
func (w *DuplicateSessionWorker) Work(ctx context.Context, job *river.Job[DuplicateSessionJob]) error {
	source := sharedtypes.SessionID(job.Args.SourceSessionID)
	target := sharedtypes.SessionID(job.Args.TargetSessionID)

	w.logger.InfoContext(ctx, "Duplicating session data",
		attr.String("source_session_id", string(source)),
		attr.String("target_session_id", string(target)),
	)

	if err := w.store.CopySessionData(ctx, source, target); err != nil {
		w.logger.ErrorContext(ctx, "Session duplication failed",
			attr.String("source_session_id", string(source)),
			attr.String("target_session_id", string(target)),
			attr.Error(err),
		)
		return fmt.Errorf("failed to copy session data: %w", err)
	}

	if err := w.eventBus.Publish(ctx, rosterevents.SessionDuplicated, &rosterevents.SessionDuplicatedPayload{
		SourceSessionID: source,
		TargetSessionID: target,
	}); err != nil {
		// The copy is durable; a lost notification is not worth a retry.
		w.logger.ErrorContext(ctx, "Failed to publish session duplication event", attr.Error(err))
	}

	return nil
}
