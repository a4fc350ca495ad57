// Package reportsservice renders roster state into shareable artifacts:
// xlsx workbooks and PNG overview charts.
package reportsservice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// SnapshotLoader is the slice of the roster repository the reports need.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, sessionID sharedtypes.SessionID) (rosterdomain.Snapshot, error)
}

// Service is the reports module's operation surface.
type Service interface {
	RosterWorkbook(ctx context.Context, sessionID sharedtypes.SessionID, division sharedtypes.Division) ([]byte, error)
	PlacementWorkbook(ctx context.Context, sessionID sharedtypes.SessionID) ([]byte, error)
	ForfeitChart(ctx context.Context, sessionID sharedtypes.SessionID, division sharedtypes.Division) ([]byte, error)
}

var _ Service = (*ReportsService)(nil)

// ReportsService implements the Service interface.
type ReportsService struct {
	repo    SnapshotLoader
	logger  *slog.Logger
	metrics *observability.OperationMetrics
	tracer  trace.Tracer
}

// NewReportsService creates a new ReportsService.
func NewReportsService(
	repo SnapshotLoader,
	logger *slog.Logger,
	metrics *observability.OperationMetrics,
	tracer trace.Tracer,
) *ReportsService {
	return &ReportsService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

func (s *ReportsService) serviceWrapper(
	ctx context.Context,
	operationName string,
	sessionID sharedtypes.SessionID,
	op func(ctx context.Context) ([]byte, error),
) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("session_id", string(sessionID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "ReportsService")
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ReportsService", time.Since(startTime))
	}()

	payload, err := op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Report generation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("session_id", string(sessionID)),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "ReportsService")
		span.RecordError(wrappedErr)
		return nil, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "ReportsService")
	return payload, nil
}

// RosterWorkbook renders the competition team roster workbook for a
// division.
func (s *ReportsService) RosterWorkbook(ctx context.Context, sessionID sharedtypes.SessionID, division sharedtypes.Division) ([]byte, error) {
	return s.serviceWrapper(ctx, "RosterWorkbook", sessionID, func(ctx context.Context) ([]byte, error) {
		if !division.Valid() {
			return nil, &rosterdomain.ValidationError{Field: "division", Reason: "unknown division"}
		}
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		f, err := BuildRosterWorkbook(snap, division)
		if err != nil {
			return nil, err
		}
		var buffer bytes.Buffer
		if err := f.Write(&buffer); err != nil {
			return nil, fmt.Errorf("failed to serialize workbook: %w", err)
		}
		return buffer.Bytes(), nil
	})
}

// PlacementWorkbook renders the home team placement workbook.
func (s *ReportsService) PlacementWorkbook(ctx context.Context, sessionID sharedtypes.SessionID) ([]byte, error) {
	return s.serviceWrapper(ctx, "PlacementWorkbook", sessionID, func(ctx context.Context) ([]byte, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		f, err := BuildPlacementWorkbook(snap)
		if err != nil {
			return nil, err
		}
		var buffer bytes.Buffer
		if err := f.Write(&buffer); err != nil {
			return nil, fmt.Errorf("failed to serialize workbook: %w", err)
		}
		return buffer.Bytes(), nil
	})
}

// ForfeitChart renders the division forfeit overview PNG.
func (s *ReportsService) ForfeitChart(ctx context.Context, sessionID sharedtypes.SessionID, division sharedtypes.Division) ([]byte, error) {
	return s.serviceWrapper(ctx, "ForfeitChart", sessionID, func(ctx context.Context) ([]byte, error) {
		if !division.Valid() {
			return nil, &rosterdomain.ValidationError{Field: "division", Reason: "unknown division"}
		}
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return RenderForfeitChart(snap, division)
	})
}
