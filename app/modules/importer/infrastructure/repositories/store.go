// Package importerdb provides the batched inserts the CSV importer needs.
package importerdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Repository is the importer's storage surface.
type Repository interface {
	// HomeTeamsByName maps existing home team names to IDs for reference
	// resolution during import.
	HomeTeamsByName(ctx context.Context, sessionID sharedtypes.SessionID) (map[string]sharedtypes.HomeTeamID, error)
	InsertHomeTeams(ctx context.Context, sessionID sharedtypes.SessionID, teams []rosterdomain.HomeTeam) (int, error)
	InsertWrestlers(ctx context.Context, sessionID sharedtypes.SessionID, wrestlers []rosterdomain.Wrestler) (int, error)
	InsertCompetitionTeams(ctx context.Context, sessionID sharedtypes.SessionID, teams []rosterdomain.CompetitionTeam) (int, error)
}

// StoreImpl is the bun-backed importer repository.
type StoreImpl struct {
	DB *bun.DB
}

// NewStore creates an importer store around the shared bun handle.
func NewStore(db *bun.DB) *StoreImpl {
	return &StoreImpl{DB: db}
}

func (s *StoreImpl) HomeTeamsByName(ctx context.Context, sessionID sharedtypes.SessionID) (map[string]sharedtypes.HomeTeamID, error) {
	var teams []rosterdb.HomeTeam
	if err := s.DB.NewSelect().Model(&teams).Where("session_id = ?", string(sessionID)).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load home teams: %w", err)
	}
	byName := make(map[string]sharedtypes.HomeTeamID, len(teams))
	for _, t := range teams {
		byName[t.Name] = sharedtypes.HomeTeamID(t.ID)
	}
	return byName, nil
}

func (s *StoreImpl) InsertHomeTeams(ctx context.Context, sessionID sharedtypes.SessionID, teams []rosterdomain.HomeTeam) (int, error) {
	models := make([]rosterdb.HomeTeam, len(teams))
	for i, t := range teams {
		models[i] = rosterdb.HomeTeam{
			ID:        uuid.NewString(),
			SessionID: string(sessionID),
			Name:      t.Name,
			State:     t.State,
		}
	}
	if err := insertBatched(ctx, s.DB, models); err != nil {
		return 0, fmt.Errorf("failed to insert home teams: %w", err)
	}
	return len(models), nil
}

func (s *StoreImpl) InsertWrestlers(ctx context.Context, sessionID sharedtypes.SessionID, wrestlers []rosterdomain.Wrestler) (int, error) {
	models := make([]rosterdb.Wrestler, len(wrestlers))
	for i, w := range wrestlers {
		models[i] = rosterdb.Wrestler{
			ID:                    uuid.NewString(),
			SessionID:             string(sessionID),
			Name:                  w.Name,
			HomeTeamID:            string(w.HomeTeamID),
			HomeTeamName:          w.HomeTeamName,
			ActualWeight:          w.ActualWeight,
			CalculatedWeightClass: rosterdomain.Classify(w.ActualWeight, rosterdomain.StandardWeightClasses),
			Status:                string(sharedtypes.WrestlerUnassigned),
			IsFemale:              w.IsFemale,
			IsMiddleSchool:        w.IsMiddleSchool,
		}
	}
	if err := insertBatched(ctx, s.DB, models); err != nil {
		return 0, fmt.Errorf("failed to insert wrestlers: %w", err)
	}
	return len(models), nil
}

func (s *StoreImpl) InsertCompetitionTeams(ctx context.Context, sessionID sharedtypes.SessionID, teams []rosterdomain.CompetitionTeam) (int, error) {
	models := make([]rosterdb.CompetitionTeam, len(teams))
	for i, t := range teams {
		models[i] = rosterdb.CompetitionTeam{
			ID:                     uuid.NewString(),
			SessionID:              string(sessionID),
			Name:                   t.Name,
			AssociatedHomeTeamID:   string(t.AssociatedHomeTeamID),
			AssociatedHomeTeamName: t.AssociatedHomeTeamName,
			Division:               string(t.Division),
			Roster:                 map[string]string{},
			Reserves:               []string{},
		}
	}
	if err := insertBatched(ctx, s.DB, models); err != nil {
		return 0, fmt.Errorf("failed to insert competition teams: %w", err)
	}
	return len(models), nil
}

func insertBatched[T any](ctx context.Context, db *bun.DB, rows []T) error {
	for start := 0; start < len(rows); start += rosterdomain.MaxMutationsPerCommit {
		end := min(start+rosterdomain.MaxMutationsPerCommit, len(rows))
		batch := rows[start:end]
		if _, err := db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
