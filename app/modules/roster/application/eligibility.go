package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// EligibilityResult is the success payload for ResolveEligibility.
type EligibilityResult struct {
	Request rosterdomain.EligibilityRequest `json:"request"`
	Pools   rosterdomain.EligiblePools      `json:"pools"`
}

// PlacementsResult is the success payload for ListFarmOutPlacements.
type PlacementsResult struct {
	WrestlerID sharedtypes.WrestlerID         `json:"wrestler_id"`
	Options    []rosterdomain.PlacementOption `json:"options"`
}

// ResolveEligibility computes the home and farm candidate pools for a
// placement target. Always evaluated against a fresh snapshot.
func (s *RosterService) ResolveEligibility(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	req rosterdomain.EligibilityRequest,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ResolveEligibility", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		pools, err := rosterdomain.ResolveEligibility(snap, req)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&EligibilityResult{Request: req, Pools: pools}), nil
	})
}

// ListFarmOutPlacements ranks the open slots a farm-out wrestler could
// fill, neediest teams first.
func (s *RosterService) ListFarmOutPlacements(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	wrestlerID sharedtypes.WrestlerID,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ListFarmOutPlacements", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}

		options, err := rosterdomain.ListFarmOutPlacements(snap, wrestlerID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&PlacementsResult{WrestlerID: wrestlerID, Options: options}), nil
	})
}

// GetSnapshot loads the session's full entity snapshot.
func (s *RosterService) GetSnapshot(ctx context.Context, sessionID sharedtypes.SessionID) (rosterdomain.Snapshot, error) {
	return s.repo.Snapshot(ctx, sessionID)
}
