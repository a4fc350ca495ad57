// Package importerservice bulk-loads session data from CSV files.
package importerservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	importerdb "github.com/high-country-wrestling/roster-bot/app/modules/importer/infrastructure/repositories"
	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	"github.com/high-country-wrestling/roster-bot/app/shared/attr"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// ImportReport is the success payload for every import operation. Rows
// referencing an unknown home team are skipped, not failed: the organizer
// fixes the names and re-imports the remainder.
type ImportReport struct {
	SessionID    sharedtypes.SessionID `json:"session_id"`
	Created      int                   `json:"created"`
	Skipped      int                   `json:"skipped"`
	UnknownTeams []string              `json:"unknown_teams,omitempty"`
}

// Service is the importer module's operation surface.
type Service interface {
	ImportHomeTeams(ctx context.Context, sessionID sharedtypes.SessionID, r io.Reader) (results.OperationResult, error)
	ImportWrestlers(ctx context.Context, sessionID sharedtypes.SessionID, r io.Reader) (results.OperationResult, error)
	ImportCompetitionTeams(ctx context.Context, sessionID sharedtypes.SessionID, r io.Reader) (results.OperationResult, error)
}

var _ Service = (*ImporterService)(nil)

// ImporterService implements the Service interface.
type ImporterService struct {
	repo    importerdb.Repository
	logger  *slog.Logger
	metrics *observability.OperationMetrics
	tracer  trace.Tracer
}

// NewImporterService creates a new ImporterService.
func NewImporterService(
	repo importerdb.Repository,
	logger *slog.Logger,
	metrics *observability.OperationMetrics,
	tracer trace.Tracer,
) *ImporterService {
	return &ImporterService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

func (s *ImporterService) serviceWrapper(
	ctx context.Context,
	operationName string,
	sessionID sharedtypes.SessionID,
	op func(ctx context.Context) (results.OperationResult, error),
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("session_id", string(sessionID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "ImporterService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ImporterService", time.Since(startTime))
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Import failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("session_id", string(sessionID)),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "ImporterService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "ImporterService")
	return result, nil
}

// ImportHomeTeams loads home teams from CSV.
func (s *ImporterService) ImportHomeTeams(ctx context.Context, sessionID sharedtypes.SessionID, r io.Reader) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ImportHomeTeams", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		rows, err := ParseHomeTeams(r)
		if err != nil {
			return results.OperationResult{}, err
		}

		// Names already present in the session are skipped so a re-import
		// never produces duplicates.
		existing, err := s.repo.HomeTeamsByName(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		teams := make([]rosterdomain.HomeTeam, 0, len(rows))
		skipped := 0
		for _, row := range rows {
			if _, ok := existing[row.Name]; ok {
				skipped++
				continue
			}
			teams = append(teams, rosterdomain.HomeTeam{Name: row.Name, State: row.State})
		}

		created, err := s.repo.InsertHomeTeams(ctx, sessionID, teams)
		if err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Imported home teams",
			attr.String("session_id", string(sessionID)),
			attr.Int("created", created),
			attr.Int("skipped", skipped),
		)
		return results.SuccessResult(&ImportReport{
			SessionID: sessionID,
			Created:   created,
			Skipped:   skipped,
		}), nil
	})
}

// ImportWrestlers loads wrestlers from CSV, resolving home team names to
// IDs. Rows naming an unknown team are reported and skipped.
func (s *ImporterService) ImportWrestlers(ctx context.Context, sessionID sharedtypes.SessionID, r io.Reader) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ImportWrestlers", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		rows, err := ParseWrestlers(r)
		if err != nil {
			return results.OperationResult{}, err
		}

		teamIDs, err := s.repo.HomeTeamsByName(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		wrestlers := make([]rosterdomain.Wrestler, 0, len(rows))
		skipped := 0
		unknown := map[string]bool{}
		for _, row := range rows {
			teamID, ok := teamIDs[row.HomeTeamName]
			if !ok {
				unknown[row.HomeTeamName] = true
				skipped++
				continue
			}
			wrestlers = append(wrestlers, rosterdomain.Wrestler{
				Name:           row.Name,
				HomeTeamID:     teamID,
				HomeTeamName:   row.HomeTeamName,
				ActualWeight:   row.Weight,
				IsFemale:       row.IsFemale,
				IsMiddleSchool: row.IsMiddleSchool,
			})
		}

		created, err := s.repo.InsertWrestlers(ctx, sessionID, wrestlers)
		if err != nil {
			return results.OperationResult{}, err
		}

		report := &ImportReport{
			SessionID:    sessionID,
			Created:      created,
			Skipped:      skipped,
			UnknownTeams: sortedKeys(unknown),
		}
		s.logger.InfoContext(ctx, "Imported wrestlers",
			attr.String("session_id", string(sessionID)),
			attr.Int("created", created),
			attr.Int("skipped", skipped),
		)
		return results.SuccessResult(report), nil
	})
}

// ImportCompetitionTeams loads competition teams from CSV. Each team is
// tied to its home team by name; unknown names are reported and skipped.
func (s *ImporterService) ImportCompetitionTeams(ctx context.Context, sessionID sharedtypes.SessionID, r io.Reader) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ImportCompetitionTeams", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		rows, err := ParseCompetitionTeams(r)
		if err != nil {
			return results.OperationResult{}, err
		}

		teamIDs, err := s.repo.HomeTeamsByName(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		teams := make([]rosterdomain.CompetitionTeam, 0, len(rows))
		skipped := 0
		unknown := map[string]bool{}
		for _, row := range rows {
			homeID, ok := teamIDs[row.HomeTeamName]
			if !ok {
				unknown[row.HomeTeamName] = true
				skipped++
				continue
			}
			teams = append(teams, rosterdomain.CompetitionTeam{
				Name:                   row.Name,
				AssociatedHomeTeamID:   homeID,
				AssociatedHomeTeamName: row.HomeTeamName,
				Division:               row.Division,
			})
		}

		created, err := s.repo.InsertCompetitionTeams(ctx, sessionID, teams)
		if err != nil {
			return results.OperationResult{}, err
		}

		report := &ImportReport{
			SessionID:    sessionID,
			Created:      created,
			Skipped:      skipped,
			UnknownTeams: sortedKeys(unknown),
		}
		s.logger.InfoContext(ctx, "Imported competition teams",
			attr.String("session_id", string(sessionID)),
			attr.Int("created", created),
			attr.Int("skipped", skipped),
		)
		return results.SuccessResult(report), nil
	})
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
