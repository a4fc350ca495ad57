package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// BulkResultPayload reports how many entities a bulk operation touched.
type BulkResultPayload struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Operation string                `json:"operation"`
	Affected  int                   `json:"affected"`
	Skipped   int                   `json:"skipped"`
}

// BulkSetDivisionFlags marks every eligible wrestler of a home team as
// female or middle school in one pass. Wrestlers holding a competition
// placement are skipped rather than failing the whole batch; commits are
// chunked under the per-transaction mutation limit.
func (s *RosterService) BulkSetDivisionFlags(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	homeTeamID sharedtypes.HomeTeamID,
	female, middleSchool bool,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "BulkSetDivisionFlags", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		if female && middleSchool {
			err := &rosterdomain.ValidationError{Field: "is_female", Reason: "female and middle school are mutually exclusive"}
			return s.commitFailedResult(sessionID, "BulkSetDivisionFlags", err), err
		}

		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if _, ok := snap.HomeTeam(homeTeamID); !ok {
			err := &rosterdomain.ValidationError{Field: "home_team_id", Reason: "home team not found"}
			return s.commitFailedResult(sessionID, "BulkSetDivisionFlags", err), err
		}

		var txs []*rosterdomain.Transaction
		affected, skipped := 0, 0
		for _, w := range snap.Wrestlers {
			if w.HomeTeamID != homeTeamID {
				continue
			}
			if w.IsFemale == female && w.IsMiddleSchool == middleSchool {
				continue
			}
			tx, err := rosterdomain.BuildDivisionFlags(snap, w.ID, female, middleSchool)
			if err != nil {
				skipped++
				continue
			}
			txs = append(txs, &tx)
			affected++
		}

		if err := s.repo.CommitChunked(ctx, sessionID, txs); err != nil {
			return s.commitFailedResult(sessionID, "BulkSetDivisionFlags", err), err
		}
		return results.SuccessResult(&BulkResultPayload{
			SessionID: sessionID,
			Operation: "BulkSetDivisionFlags",
			Affected:  affected,
			Skipped:   skipped,
		}), nil
	})
}

// ClearSessionData deletes every wrestler, competition team, and home team
// of the session in chunked commits. The session record itself survives.
func (s *RosterService) ClearSessionData(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ClearSessionData", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		var txs []*rosterdomain.Transaction
		add := func(kind rosterdomain.EntityKind, id string) {
			tx := &rosterdomain.Transaction{}
			tx.Mutations = append(tx.Mutations, rosterdomain.DeleteMutation(kind, id))
			txs = append(txs, tx)
		}
		for id := range snap.CompetitionTeams {
			add(rosterdomain.KindCompetitionTeam, string(id))
		}
		for id := range snap.Wrestlers {
			add(rosterdomain.KindWrestler, string(id))
		}
		for id := range snap.HomeTeams {
			add(rosterdomain.KindHomeTeam, string(id))
		}

		if err := s.repo.CommitChunked(ctx, sessionID, txs); err != nil {
			return s.commitFailedResult(sessionID, "ClearSessionData", err), err
		}
		return results.SuccessResult(&BulkResultPayload{
			SessionID: sessionID,
			Operation: "ClearSessionData",
			Affected:  len(txs),
		}), nil
	})
}
