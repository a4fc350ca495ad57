package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// ClassificationResult is the success payload for ClassifyWeight.
type ClassificationResult struct {
	Division  sharedtypes.Division `json:"division"`
	Weight    float64              `json:"weight"`
	ClassName string               `json:"class_name"`
}

// ComputeStatistics derives the aggregate report from a fresh snapshot.
func (s *RosterService) ComputeStatistics(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ComputeStatistics", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}
		report := rosterdomain.ComputeReport(snap)
		return results.SuccessResult(&report), nil
	})
}

// ClassifyWeight maps a body weight onto the division's catalog, including
// session custom classes.
func (s *RosterService) ClassifyWeight(
	ctx context.Context,
	sessionID sharedtypes.SessionID,
	division sharedtypes.Division,
	weight float64,
) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ClassifyWeight", sessionID, func(ctx context.Context) (results.OperationResult, error) {
		if !division.Valid() {
			err := &rosterdomain.ValidationError{Field: "division", Reason: "unknown division"}
			return s.commitFailedResult(sessionID, "ClassifyWeight", err), err
		}
		snap, err := s.repo.Snapshot(ctx, sessionID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&ClassificationResult{
			Division:  division,
			Weight:    weight,
			ClassName: rosterdomain.Classify(weight, snap.ClassesFor(division)),
		}), nil
	})
}
