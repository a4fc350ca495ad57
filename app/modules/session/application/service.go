// Package sessionservice manages session records: creation, listing, custom
// weight classes, deletion, and background duplication.
package sessionservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	sessionqueue "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/queue"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// Service is the session module's operation surface.
type Service interface {
	CreateSession(ctx context.Context, name string) (results.OperationResult, error)
	GetSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult, error)
	ListSessions(ctx context.Context) (results.OperationResult, error)
	SetCustomWeightClasses(ctx context.Context, id sharedtypes.SessionID, division sharedtypes.Division, classes []rosterdomain.WeightClass) (results.OperationResult, error)
	DeleteSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult, error)
	DuplicateSession(ctx context.Context, source sharedtypes.SessionID, targetName string) (results.OperationResult, error)
}

var _ Service = (*SessionService)(nil)

// SessionService implements the Service interface.
type SessionService struct {
	store    sessiondb.Repository
	queue    sessionqueue.QueueService
	eventBus EventPublisher
	logger   *slog.Logger
	metrics  *observability.OperationMetrics
	tracer   trace.Tracer
}

// EventPublisher is the slice of the event bus the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	store sessiondb.Repository,
	queue sessionqueue.QueueService,
	eventBus EventPublisher,
	logger *slog.Logger,
	metrics *observability.OperationMetrics,
	tracer trace.Tracer,
) *SessionService {
	return &SessionService{
		store:    store,
		queue:    queue,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// serviceWrapper wraps an operation with tracing, metrics, and panic
// recovery.
func (s *SessionService) serviceWrapper(
	ctx context.Context,
	operationName string,
	op func(ctx context.Context) (results.OperationResult, error),
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "SessionService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "SessionService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "SessionService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "SessionService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "SessionService")
	return result, nil
}

func (s *SessionService) publish(ctx context.Context, topic string, payload any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// CreateSession creates a named session.
func (s *SessionService) CreateSession(ctx context.Context, name string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CreateSession", func(ctx context.Context) (results.OperationResult, error) {
		if name == "" {
			err := &rosterdomain.ValidationError{Field: "name", Reason: "session name is required"}
			return results.FailureResult(err.Error(), err), err
		}
		session, err := s.store.CreateSession(ctx, name)
		if err != nil {
			return results.OperationResult{}, err
		}
		s.publish(ctx, rosterevents.SessionCreated, &rosterevents.SessionCreatedPayload{
			SessionID: session.ID,
			Name:      session.Name,
		})
		return results.SuccessResult(&session), nil
	})
}

// GetSession loads a session record.
func (s *SessionService) GetSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "GetSession", func(ctx context.Context) (results.OperationResult, error) {
		session, err := s.store.GetSession(ctx, id)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&session), nil
	})
}

// ListSessions lists all sessions by name.
func (s *SessionService) ListSessions(ctx context.Context) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ListSessions", func(ctx context.Context) (results.OperationResult, error) {
		sessions, err := s.store.ListSessions(ctx)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(sessions), nil
	})
}

// SetCustomWeightClasses replaces a division's custom classes on a session.
// Classes are stored sorted; the roster engine merges them with the
// standard table at classification time.
func (s *SessionService) SetCustomWeightClasses(
	ctx context.Context,
	id sharedtypes.SessionID,
	division sharedtypes.Division,
	classes []rosterdomain.WeightClass,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "SetCustomWeightClasses", func(ctx context.Context) (results.OperationResult, error) {
		if !division.Valid() {
			err := &rosterdomain.ValidationError{Field: "division", Reason: "unknown division"}
			return results.FailureResult(err.Error(), err), err
		}
		for _, c := range classes {
			if c.Name == "" || c.MaxWeight <= 0 {
				err := &rosterdomain.ValidationError{Field: "classes", Reason: "each class needs a name and a positive max weight"}
				return results.FailureResult(err.Error(), err), err
			}
		}
		if err := s.store.UpdateCustomWeights(ctx, id, division, classes); err != nil {
			return results.OperationResult{}, err
		}
		session, err := s.store.GetSession(ctx, id)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&session), nil
	})
}

// DeleteSession removes a session and everything scoped to it.
func (s *SessionService) DeleteSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "DeleteSession", func(ctx context.Context) (results.OperationResult, error) {
		if err := s.store.DeleteSession(ctx, id); err != nil {
			return results.OperationResult{}, err
		}
		s.publish(ctx, rosterevents.SessionDeleted, &rosterevents.SessionDeletedPayload{SessionID: id})
		return results.SuccessResult(&rosterevents.SessionDeletedPayload{SessionID: id}), nil
	})
}

// DuplicateSession creates the target session synchronously, copying the
// custom weight classes onto the record, then queues the entity deep copy
// as a background job.
func (s *SessionService) DuplicateSession(
	ctx context.Context,
	source sharedtypes.SessionID,
	targetName string,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "DuplicateSession", func(ctx context.Context) (results.OperationResult, error) {
		if targetName == "" {
			err := &rosterdomain.ValidationError{Field: "name", Reason: "target session name is required"}
			return results.FailureResult(err.Error(), err), err
		}
		sourceSession, err := s.store.GetSession(ctx, source)
		if err != nil {
			return results.OperationResult{}, err
		}

		target, err := s.store.CreateSession(ctx, targetName)
		if err != nil {
			return results.OperationResult{}, err
		}
		if len(sourceSession.CustomWeightsDivI) > 0 {
			if err := s.store.UpdateCustomWeights(ctx, target.ID, sharedtypes.DivisionI, sourceSession.CustomWeightsDivI); err != nil {
				return results.OperationResult{}, err
			}
		}
		if len(sourceSession.CustomWeightsDivII) > 0 {
			if err := s.store.UpdateCustomWeights(ctx, target.ID, sharedtypes.DivisionII, sourceSession.CustomWeightsDivII); err != nil {
				return results.OperationResult{}, err
			}
		}

		if err := s.queue.EnqueueDuplication(ctx, source, target.ID); err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&rosterevents.SessionDuplicatedPayload{
			SourceSessionID: source,
			TargetSessionID: target.ID,
		}), nil
	})
}
