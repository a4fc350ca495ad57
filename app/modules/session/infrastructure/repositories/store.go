package sessiondb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// ErrSessionNotFound is returned when the requested session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Repository manages session records and bulk session copies.
type Repository interface {
	CreateSession(ctx context.Context, name string) (rosterdomain.Session, error)
	GetSession(ctx context.Context, id sharedtypes.SessionID) (rosterdomain.Session, error)
	ListSessions(ctx context.Context) ([]rosterdomain.Session, error)
	UpdateCustomWeights(ctx context.Context, id sharedtypes.SessionID, division sharedtypes.Division, classes []rosterdomain.WeightClass) error
	DeleteSession(ctx context.Context, id sharedtypes.SessionID) error
	// CopySessionData deep-copies every entity of the source session into the
	// target session under fresh IDs, preserving placements across the copy.
	CopySessionData(ctx context.Context, source, target sharedtypes.SessionID) error
}

// StoreImpl is the bun-backed session repository.
type StoreImpl struct {
	DB *bun.DB
}

// NewStore creates a session store around the shared bun handle.
func NewStore(db *bun.DB) *StoreImpl {
	return &StoreImpl{DB: db}
}

func (s *StoreImpl) CreateSession(ctx context.Context, name string) (rosterdomain.Session, error) {
	model := &rosterdb.Session{
		ID:   uuid.NewString(),
		Name: name,
	}
	if _, err := s.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return rosterdomain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return model.ToDomain(), nil
}

func (s *StoreImpl) GetSession(ctx context.Context, id sharedtypes.SessionID) (rosterdomain.Session, error) {
	model := new(rosterdb.Session)
	err := s.DB.NewSelect().Model(model).Where("id = ?", string(id)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return rosterdomain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return rosterdomain.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return model.ToDomain(), nil
}

func (s *StoreImpl) ListSessions(ctx context.Context) ([]rosterdomain.Session, error) {
	var models []rosterdb.Session
	if err := s.DB.NewSelect().Model(&models).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]rosterdomain.Session, len(models))
	for i, m := range models {
		sessions[i] = m.ToDomain()
	}
	return sessions, nil
}

func (s *StoreImpl) UpdateCustomWeights(ctx context.Context, id sharedtypes.SessionID, division sharedtypes.Division, classes []rosterdomain.WeightClass) error {
	column := "custom_weights_div_i"
	if division == sharedtypes.DivisionII {
		column = "custom_weights_div_ii"
	}
	payload, err := json.Marshal(classes)
	if err != nil {
		return fmt.Errorf("failed to marshal weight classes: %w", err)
	}
	res, err := s.DB.NewUpdate().
		Model((*rosterdb.Session)(nil)).
		Set(fmt.Sprintf("%s = ?", column), string(payload)).
		Set("updated_at = current_timestamp").
		Where("id = ?", string(id)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update custom weights: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes the session record and everything scoped to it.
func (s *StoreImpl) DeleteSession(ctx context.Context, id sharedtypes.SessionID) error {
	return s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []any{
			(*rosterdb.CompetitionTeam)(nil),
			(*rosterdb.Wrestler)(nil),
			(*rosterdb.HomeTeam)(nil),
		} {
			if _, err := tx.NewDelete().Model(model).Where("session_id = ?", string(id)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to delete session data: %w", err)
			}
		}
		res, err := tx.NewDelete().Model((*rosterdb.Session)(nil)).Where("id = ?", string(id)).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrSessionNotFound
		}
		return nil
	})
}

// CopySessionData inserts fresh-ID copies of the source session's home
// teams, wrestlers, and competition teams under the target session. ID
// references between entities are remapped so placements survive the copy.
// Inserts run in batches under the per-commit mutation limit; the copy as a
// whole is not atomic, matching the chunked-commit contract for bulk writes.
func (s *StoreImpl) CopySessionData(ctx context.Context, source, target sharedtypes.SessionID) error {
	var homeTeams []rosterdb.HomeTeam
	if err := s.DB.NewSelect().Model(&homeTeams).Where("session_id = ?", string(source)).Scan(ctx); err != nil {
		return fmt.Errorf("failed to load source home teams: %w", err)
	}
	var wrestlers []rosterdb.Wrestler
	if err := s.DB.NewSelect().Model(&wrestlers).Where("session_id = ?", string(source)).Scan(ctx); err != nil {
		return fmt.Errorf("failed to load source wrestlers: %w", err)
	}
	var teams []rosterdb.CompetitionTeam
	if err := s.DB.NewSelect().Model(&teams).Where("session_id = ?", string(source)).Scan(ctx); err != nil {
		return fmt.Errorf("failed to load source competition teams: %w", err)
	}

	homeTeamIDs := make(map[string]string, len(homeTeams))
	for i := range homeTeams {
		id := uuid.NewString()
		homeTeamIDs[homeTeams[i].ID] = id
		homeTeams[i].ID = id
		homeTeams[i].SessionID = string(target)
	}

	wrestlerIDs := make(map[string]string, len(wrestlers))
	teamIDs := make(map[string]string, len(teams))
	for i := range wrestlers {
		id := uuid.NewString()
		wrestlerIDs[wrestlers[i].ID] = id
		wrestlers[i].ID = id
		wrestlers[i].SessionID = string(target)
		wrestlers[i].HomeTeamID = homeTeamIDs[wrestlers[i].HomeTeamID]
	}
	for i := range teams {
		id := uuid.NewString()
		teamIDs[teams[i].ID] = id
	}
	for i := range wrestlers {
		if wrestlers[i].CompetitionTeamID != "" {
			wrestlers[i].CompetitionTeamID = teamIDs[wrestlers[i].CompetitionTeamID]
		}
	}
	for i := range teams {
		teams[i].ID = teamIDs[teams[i].ID]
		teams[i].SessionID = string(target)
		teams[i].AssociatedHomeTeamID = homeTeamIDs[teams[i].AssociatedHomeTeamID]
		remapped := make(map[string]string, len(teams[i].Roster))
		for slot, wid := range teams[i].Roster {
			if wid == "" {
				remapped[slot] = ""
				continue
			}
			remapped[slot] = wrestlerIDs[wid]
		}
		teams[i].Roster = remapped
		for j, wid := range teams[i].Reserves {
			teams[i].Reserves[j] = wrestlerIDs[wid]
		}
	}

	if err := insertBatched(ctx, s.DB, homeTeams); err != nil {
		return fmt.Errorf("failed to copy home teams: %w", err)
	}
	if err := insertBatched(ctx, s.DB, wrestlers); err != nil {
		return fmt.Errorf("failed to copy wrestlers: %w", err)
	}
	if err := insertBatched(ctx, s.DB, teams); err != nil {
		return fmt.Errorf("failed to copy competition teams: %w", err)
	}
	return nil
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
