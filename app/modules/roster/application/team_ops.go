package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// CreateHomeTeam inserts a new home team.
func (s *RosterService) CreateHomeTeam(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	t rosterdomain.HomeTeam,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CreateHomeTeam", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		if t.Name == "" {
			err := &rosterdomain.ValidationError{Field: "name", Reason: "home team name is required"}
			return s.commitFailedResult(sessionID, "CreateHomeTeam", err), err
		}

		id, err := s.repo.CreateHomeTeam(ctx, sessionID, t)
		if err != nil {
			return s.commitFailedResult(sessionID, "CreateHomeTeam", err), err
		}
		return results.SuccessResult(&CreatedPayload{SessionID: sessionID, Kind: "home_team", ID: string(id)}), nil
	})
}

// CreateCompetitionTeam inserts a new competition team with an empty
// roster.
func (s *RosterService) CreateCompetitionTeam(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	t rosterdomain.CompetitionTeam,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CreateCompetitionTeam", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		if t.Name == "" {
			err := &rosterdomain.ValidationError{Field: "name", Reason: "competition team name is required"}
			return s.commitFailedResult(sessionID, "CreateCompetitionTeam", err), err
		}
		if !t.Division.Valid() {
			err := &rosterdomain.ValidationError{Field: "division", Reason: "competition team requires a division"}
			return s.commitFailedResult(sessionID, "CreateCompetitionTeam", err), err
		}
		if t.AssociatedHomeTeamID == "" {
			err := &rosterdomain.ValidationError{Field: "associated_home_team_id", Reason: "competition team requires an associated home team"}
			return s.commitFailedResult(sessionID, "CreateCompetitionTeam", err), err
		}

		id, err := s.repo.CreateCompetitionTeam(ctx, sessionID, t)
		if err != nil {
			return s.commitFailedResult(sessionID, "CreateCompetitionTeam", err), err
		}
		return results.SuccessResult(&CreatedPayload{SessionID: sessionID, Kind: "competition_team", ID: string(id)}), nil
	})
}

// DeleteCompetitionTeam removes a team and reverts every wrestler it
// references in the same transaction.
func (s *RosterService) DeleteCompetitionTeam(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	teamID sharedtypes.CompetitionTeamID,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "DeleteCompetitionTeam", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		var reverted []sharedtypes.WrestlerID
		for _, w := range snap.Wrestlers {
			if w.CompetitionTeamID == teamID {
				reverted = append(reverted, w.ID)
			}
		}

		tx, err := rosterdomain.BuildTeamDeletion(snap, teamID)
		if err != nil {
			return s.commitFailedResult(sessionID, "DeleteCompetitionTeam", err), err
		}
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "DeleteCompetitionTeam", err), err
		}

		payload := &rosterevents.TeamDeletedPayload{
			SessionID:         sessionID,
			TeamID:            teamID,
			RevertedWrestlers: reverted,
		}
		s.publish(ctx, rosterevents.TeamDeleted, payload)
		return results.SuccessResult(payload), nil
	})
}

// CompletionPayload is the success payload for SetHomeTeamCompletion.
type CompletionPayload struct {
	SessionID       sharedtypes.SessionID  `json:"session_id"`
	TeamID          sharedtypes.HomeTeamID `json:"team_id"`
	WeighInComplete bool                   `json:"weigh_in_complete"`
	RosterComplete  bool                   `json:"roster_complete"`
}

// SetHomeTeamCompletion toggles the weigh-in / roster completion flags on
// a home team.
func (s *RosterService) SetHomeTeamCompletion(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	teamID sharedtypes.HomeTeamID,
	weighInComplete, rosterComplete bool,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "SetHomeTeamCompletion", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if _, ok := snap.HomeTeam(teamID); !ok {
			err := &rosterdomain.ValidationError{Field: "team_id", Reason: "home team not found"}
			return s.commitFailedResult(sessionID, "SetHomeTeamCompletion", err), err
		}

		var tx rosterdomain.Transaction
		tx.Mutations = append(tx.Mutations, rosterdomain.UpdateMutation(
			rosterdomain.KindHomeTeam, string(teamID), map[string]any{
				rosterdomain.FieldWeighInComplete: weighInComplete,
				rosterdomain.FieldRosterComplete:  rosterComplete,
			}))
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "SetHomeTeamCompletion", err), err
		}
		return results.SuccessResult(&CompletionPayload{
			SessionID:       sessionID,
			TeamID:          teamID,
			WeighInComplete: weighInComplete,
			RosterComplete:  rosterComplete,
		}), nil
	})
}
