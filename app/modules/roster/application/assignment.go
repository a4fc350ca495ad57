package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// AssignWrestler places the wrestler on the team in the requested role,
// committing the placement and any displaced occupant's reversion in one
// transaction.
func (s *RosterService) AssignWrestler(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
	req rosterdomain.EligibilityRequest,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "AssignWrestler", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		var displaced sharedtypes.WrestlerID
		if req.Role == sharedtypes.RoleStarter {
			if team, ok := snap.CompetitionTeam(req.TeamID); ok {
				if occupant, filled := team.Roster.Occupant(req.Slot); filled && occupant != wrestlerID {
					displaced = occupant
				}
			}
		}

		tx, err := rosterdomain.BuildAssignment(snap, wrestlerID, req)
		if err != nil {
			return s.commitFailedResult(sessionID, "AssignWrestler", err), err
		}

		payload := &rosterevents.AssignedPayload{
			SessionID:           sessionID,
			WrestlerID:          wrestlerID,
			TeamID:              req.TeamID,
			Role:                req.Role,
			Slot:                req.Slot,
			DisplacedWrestlerID: displaced,
		}
		if tx.Empty() {
			// Self-reassignment: nothing to commit, nothing changed.
			return results.SuccessResult(payload), nil
		}

		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "AssignWrestler", err), err
		}

		s.publish(ctx, rosterevents.WrestlerAssigned, payload)
		return results.SuccessResult(payload), nil
	})
}

// UnassignWrestler removes the wrestler from the team, reverting them per
// the home/farmed asymmetry.
func (s *RosterService) UnassignWrestler(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
	teamID sharedtypes.CompetitionTeamID,
	role sharedtypes.RosterRole,
	slot string,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "UnassignWrestler", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		tx, err := rosterdomain.BuildUnassignment(snap, wrestlerID, teamID, role, slot)
		if err != nil {
			return s.commitFailedResult(sessionID, "UnassignWrestler", err), err
		}
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "UnassignWrestler", err), err
		}

		revertedStatus := sharedtypes.WrestlerUnassigned
		if w, ok := snap.Wrestler(wrestlerID); ok {
			if team, teamOK := snap.CompetitionTeam(teamID); teamOK && w.HomeTeamID != team.AssociatedHomeTeamID {
				revertedStatus = sharedtypes.WrestlerFarmOutAvailable
			}
		}
		payload := &rosterevents.UnassignedPayload{
			SessionID:      sessionID,
			WrestlerID:     wrestlerID,
			TeamID:         teamID,
			Role:           role,
			Slot:           slot,
			RevertedStatus: revertedStatus,
		}
		s.publish(ctx, rosterevents.WrestlerUnassigned, payload)
		return results.SuccessResult(payload), nil
	})
}

// FarmOutWrestler marks a wrestler available for farming out in the chosen
// division.
func (s *RosterService) FarmOutWrestler(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
	division sharedtypes.Division,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "FarmOutWrestler", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		tx, err := rosterdomain.BuildFarmOut(snap, wrestlerID, division)
		if err != nil {
			return s.commitFailedResult(sessionID, "FarmOutWrestler", err), err
		}
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "FarmOutWrestler", err), err
		}

		payload := &rosterevents.FarmedOutPayload{
			SessionID:  sessionID,
			WrestlerID: wrestlerID,
			Division:   division,
		}
		s.publish(ctx, rosterevents.WrestlerFarmedOut, payload)
		return results.SuccessResult(payload), nil
	})
}

// commitFailedResult is the standard failure envelope for rejected writes.
func (s *RosterService) commitFailedResult(sessionID sharedtypes.SessionID, operation string, err error) results.OperationResult {
	return results.FailureResult(&rosterevents.CommitFailedPayload{
		SessionID: sessionID,
		Operation: operation,
		Reason:    err.Error(),
	}, err)
}
