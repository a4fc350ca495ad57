package rosterdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// ErrSessionNotFound is returned when a snapshot is requested for an
// unknown session.
var ErrSessionNotFound = errors.New("session not found")

// StoreImpl implements Repository over Postgres via bun.
type StoreImpl struct {
	DB *bun.DB
}

func NewStore(db *bun.DB) *StoreImpl {
	return &StoreImpl{DB: db}
}

func (s *StoreImpl) Snapshot(ctx context.Context, sessionID sharedtypes.SessionID) (rosterdomain.Snapshot, error) {
	var snap rosterdomain.Snapshot

	var session Session
	err := s.DB.NewSelect().Model(&session).Where("id = ?", string(sessionID)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return snap, ErrSessionNotFound
		}
		return snap, fmt.Errorf("failed to load session: %w", err)
	}
	snap.Session = session.ToDomain()

	var homeTeams []HomeTeam
	if err := s.DB.NewSelect().Model(&homeTeams).Where("session_id = ?", string(sessionID)).Scan(ctx); err != nil {
		return snap, fmt.Errorf("failed to load home teams: %w", err)
	}
	snap.HomeTeams = make(map[sharedtypes.HomeTeamID]rosterdomain.HomeTeam, len(homeTeams))
	for i := range homeTeams {
		t := homeTeams[i].toDomain()
		snap.HomeTeams[t.ID] = t
	}

	var wrestlers []Wrestler
	if err := s.DB.NewSelect().Model(&wrestlers).Where("session_id = ?", string(sessionID)).Scan(ctx); err != nil {
		return snap, fmt.Errorf("failed to load wrestlers: %w", err)
	}
	snap.Wrestlers = make(map[sharedtypes.WrestlerID]rosterdomain.Wrestler, len(wrestlers))
	for i := range wrestlers {
		w := wrestlers[i].toDomain()
		snap.Wrestlers[w.ID] = w
	}

	var teams []CompetitionTeam
	if err := s.DB.NewSelect().Model(&teams).Where("session_id = ?", string(sessionID)).Scan(ctx); err != nil {
		return snap, fmt.Errorf("failed to load competition teams: %w", err)
	}
	snap.CompetitionTeams = make(map[sharedtypes.CompetitionTeamID]rosterdomain.CompetitionTeam, len(teams))
	for i := range teams {
		t := teams[i].toDomain()
		snap.CompetitionTeams[t.ID] = t
	}

	return snap, nil
}

func (s *StoreImpl) Commit(ctx context.Context, sessionID sharedtypes.SessionID, tx rosterdomain.Transaction) error {
	if tx.Empty() {
		return nil
	}
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, dbTx bun.Tx) error {
		for _, m := range tx.Mutations {
			if err := applyMutation(ctx, dbTx, sessionID, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &rosterdomain.CommitFailure{Err: err}
	}
	return nil
}

func (s *StoreImpl) CommitChunked(ctx context.Context, sessionID sharedtypes.SessionID, txs []*rosterdomain.Transaction) error {
	for _, chunk := range rosterdomain.Chunk(txs, rosterdomain.MaxMutationsPerCommit) {
		if err := s.Commit(ctx, sessionID, *chunk); err != nil {
			return err
		}
	}
	return nil
}

func applyMutation(ctx context.Context, tx bun.Tx, sessionID sharedtypes.SessionID, m rosterdomain.Mutation) error {
	model, err := modelFor(m.Kind)
	if err != nil {
		return err
	}

	if m.Delete {
		_, err := tx.NewDelete().Model(model).
			Where("id = ?", m.ID).
			Where("session_id = ?", string(sessionID)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", m.Kind, m.ID, err)
		}
		return nil
	}

	q := tx.NewUpdate().Model(model).
		Where("id = ?", m.ID).
		Where("session_id = ?", string(sessionID)).
		Set("updated_at = current_timestamp")
	for field, value := range m.Fields {
		bound, err := bindValue(field, value)
		if err != nil {
			return err
		}
		q = q.Set(fmt.Sprintf("%s = ?", field), bound)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", m.Kind, m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s %s not found", m.Kind, m.ID)
	}
	return nil
}

func modelFor(kind rosterdomain.EntityKind) (any, error) {
	switch kind {
	case rosterdomain.KindWrestler:
		return (*Wrestler)(nil), nil
	case rosterdomain.KindHomeTeam:
		return (*HomeTeam)(nil), nil
	case rosterdomain.KindCompetitionTeam:
		return (*CompetitionTeam)(nil), nil
	default:
		return nil, fmt.Errorf("unsupported entity kind %q", kind)
	}
}

// bindValue converts the typed domain values in a field-update map into
// driver-friendly bind values. Roster maps and reserve lists go to the
// database as JSON.
func bindValue(field string, value any) (any, error) {
	switch field {
	case rosterdomain.FieldRoster, rosterdomain.FieldReserves:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		return string(data), nil
	default:
		return value, nil
	}
}

func (s *StoreImpl) CreateWrestler(ctx context.Context, sessionID sharedtypes.SessionID, w rosterdomain.Wrestler) (sharedtypes.WrestlerID, error) {
	id := string(w.ID)
	if id == "" {
		id = uuid.NewString()
	}
	model := &Wrestler{
		ID:                    id,
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
	if _, err := s.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to insert wrestler: %w", err)
	}
	return sharedtypes.WrestlerID(id), nil
}

func (s *StoreImpl) CreateHomeTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.HomeTeam) (sharedtypes.HomeTeamID, error) {
	id := string(t.ID)
	if id == "" {
		id = uuid.NewString()
	}
	model := &HomeTeam{
		ID:        id,
		SessionID: string(sessionID),
		Name:      t.Name,
		State:     t.State,
	}
	if _, err := s.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to insert home team: %w", err)
	}
	return sharedtypes.HomeTeamID(id), nil
}

func (s *StoreImpl) CreateCompetitionTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.CompetitionTeam) (sharedtypes.CompetitionTeamID, error) {
	id := string(t.ID)
	if id == "" {
		id = uuid.NewString()
	}
	roster := make(map[string]string, len(t.Roster))
	for slot, wid := range t.Roster {
		roster[slot] = string(wid)
	}
	reserves := make([]string, 0, len(t.Reserves))
	for _, wid := range t.Reserves {
		reserves = append(reserves, string(wid))
	}
	model := &CompetitionTeam{
		ID:                     id,
		SessionID:              string(sessionID),
		Name:                   t.Name,
		AssociatedHomeTeamID:   string(t.AssociatedHomeTeamID),
		AssociatedHomeTeamName: t.AssociatedHomeTeamName,
		Division:               string(t.Division),
		Pool:                   t.Pool,
		Roster:                 roster,
		Reserves:               reserves,
	}
	if _, err := s.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to insert competition team: %w", err)
	}
	return sharedtypes.CompetitionTeamID(id), nil
}
