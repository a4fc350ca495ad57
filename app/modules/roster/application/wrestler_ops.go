package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// CreatedPayload is the success payload for the create operations.
type CreatedPayload struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Kind      string                `json:"kind"`
	ID        string                `json:"id"`
}

// RecordWeighIn stores an actual weight and the recomputed weight class.
func (s *RosterService) RecordWeighIn(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
	weight float64,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "RecordWeighIn", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		tx, err := rosterdomain.BuildWeighIn(snap, wrestlerID, weight)
		if err != nil {
			return s.commitFailedResult(sessionID, "RecordWeighIn", err), err
		}
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "RecordWeighIn", err), err
		}

		payload := &rosterevents.WeighedInPayload{
			SessionID:             sessionID,
			WrestlerID:            wrestlerID,
			ActualWeight:          weight,
			CalculatedWeightClass: rosterdomain.Classify(weight, rosterdomain.StandardWeightClasses),
		}
		s.publish(ctx, rosterevents.WrestlerWeighedIn, payload)
		return results.SuccessResult(payload), nil
	})
}

// SetDivisionFlags updates the female / middle-school flags.
func (s *RosterService) SetDivisionFlags(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
	female, middleSchool bool,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "SetDivisionFlags", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		tx, err := rosterdomain.BuildDivisionFlags(snap, wrestlerID, female, middleSchool)
		if err != nil {
			return s.commitFailedResult(sessionID, "SetDivisionFlags", err), err
		}
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "SetDivisionFlags", err), err
		}

		payload := &rosterevents.FlagsChangedPayload{
			SessionID:      sessionID,
			WrestlerID:     wrestlerID,
			IsFemale:       female,
			IsMiddleSchool: middleSchool,
		}
		s.publish(ctx, rosterevents.WrestlerFlagsChanged, payload)
		return results.SuccessResult(payload), nil
	})
}

// CreateWrestler inserts a new wrestler, created Unassigned with weight 0
// unless a weigh-in already happened.
func (s *RosterService) CreateWrestler(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	w rosterdomain.Wrestler,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CreateWrestler", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		if w.Name == "" {
			err := &rosterdomain.ValidationError{Field: "name", Reason: "wrestler name is required"}
			return s.commitFailedResult(sessionID, "CreateWrestler", err), err
		}
		if w.HomeTeamID == "" {
			err := &rosterdomain.ValidationError{Field: "home_team_id", Reason: "wrestler has no home team"}
			return s.commitFailedResult(sessionID, "CreateWrestler", err), err
		}
		if w.IsFemale && w.IsMiddleSchool {
			err := &rosterdomain.ValidationError{Field: "is_female", Reason: "female and middle school are mutually exclusive"}
			return s.commitFailedResult(sessionID, "CreateWrestler", err), err
		}

		id, err := s.repo.CreateWrestler(ctx, sessionID, w)
		if err != nil {
			return s.commitFailedResult(sessionID, "CreateWrestler", err), err
		}
		return results.SuccessResult(&CreatedPayload{SessionID: sessionID, Kind: "wrestler", ID: string(id)}), nil
	})
}

// DeleteWrestler removes a wrestler, clearing any roster references in the
// same transaction.
func (s *RosterService) DeleteWrestler(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "DeleteWrestler", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		tx, err := rosterdomain.BuildWrestlerDeletion(snap, wrestlerID)
		if err != nil {
			return s.commitFailedResult(sessionID, "DeleteWrestler", err), err
		}
		if err := s.repo.Commit(ctx, sessionID, tx); err != nil {
			return s.commitFailedResult(sessionID, "DeleteWrestler", err), err
		}

		payload := &rosterevents.WrestlerDeletedPayload{SessionID: sessionID, WrestlerID: wrestlerID}
		s.publish(ctx, rosterevents.WrestlerDeleted, payload)
		return results.SuccessResult(payload), nil
	})
}
