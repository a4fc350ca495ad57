// Package rosterservice wraps the roster domain engine with storage,
// eventing, and telemetry. Every operation loads a fresh snapshot, runs the
// pure domain computation, commits the resulting transaction atomically,
// and publishes the corresponding event.
package rosterservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// RosterService implements the Service interface.
type RosterService struct {
	repo     rosterdb.Repository
	eventBus EventPublisher
	logger   *slog.Logger
	metrics  *observability.OperationMetrics
	tracer   trace.Tracer
}

// EventPublisher is the slice of the event bus the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	repo rosterdb.Repository,
	eventBus EventPublisher,
	logger *slog.Logger,
	metrics *observability.OperationMetrics,
	tracer trace.Tracer,
) *RosterService {
	return &RosterService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// serviceWrapper wraps an operation with tracing, metrics, and panic
// recovery so every service method reports telemetry the same way.
func (s *RosterService) serviceWrapper(
	ctx context.Context,
	operationName string,
	sessionID sharedtypes.SessionID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("session_id", string(sessionID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "RosterService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "RosterService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("session_id", string(sessionID)),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "RosterService")
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
			attr.String("session_id", string(sessionID)),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "RosterService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("session_id", string(sessionID)),
			attr.Any("failure_payload", result.Failure),
		)
	}

	if result.Success != nil {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("session_id", string(sessionID)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "RosterService")
	return result, nil
}

// publish sends the payload, logging rather than failing the operation
// when the bus is unavailable: the commit already happened and the change
// is durable.
func (s *RosterService) publish(ctx context.Context, topic string, payload any) {
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
