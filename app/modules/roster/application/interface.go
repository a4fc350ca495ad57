package rosterservice

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Service is the roster module's operation surface.
type Service interface {
	// Reads.
	ResolveEligibility(ctx context.Context, sessionID sharedtypes.SessionID, req rosterdomain.EligibilityRequest) (results.OperationResult, error)
	ListFarmOutPlacements(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID) (results.OperationResult, error)
	ComputeStatistics(ctx context.Context, sessionID sharedtypes.SessionID) (results.OperationResult, error)
	ClassifyWeight(ctx context.Context, sessionID sharedtypes.SessionID, division sharedtypes.Division, weight float64) (results.OperationResult, error)
	GetSnapshot(ctx context.Context, sessionID sharedtypes.SessionID) (rosterdomain.Snapshot, error)

	// Placement writes.
	AssignWrestler(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID, req rosterdomain.EligibilityRequest) (results.OperationResult, error)
	UnassignWrestler(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID, teamID sharedtypes.CompetitionTeamID, role sharedtypes.RosterRole, slot string) (results.OperationResult, error)
	FarmOutWrestler(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID, division sharedtypes.Division) (results.OperationResult, error)

	// Wrestler record writes.
	RecordWeighIn(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID, weight float64) (results.OperationResult, error)
	SetDivisionFlags(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID, female, middleSchool bool) (results.OperationResult, error)
	CreateWrestler(ctx context.Context, sessionID sharedtypes.SessionID, w rosterdomain.Wrestler) (results.OperationResult, error)
	DeleteWrestler(ctx context.Context, sessionID sharedtypes.SessionID, wrestlerID sharedtypes.WrestlerID) (results.OperationResult, error)

	// Team writes.
	CreateHomeTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.HomeTeam) (results.OperationResult, error)
	CreateCompetitionTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.CompetitionTeam) (results.OperationResult, error)
	DeleteCompetitionTeam(ctx context.Context, sessionID sharedtypes.SessionID, teamID sharedtypes.CompetitionTeamID) (results.OperationResult, error)
	SetHomeTeamCompletion(ctx context.Context, sessionID sharedtypes.SessionID, teamID sharedtypes.HomeTeamID, weighInComplete, rosterComplete bool) (results.OperationResult, error)

	// Bulk writes, chunked under the per-commit mutation limit.
	BulkSetDivisionFlags(ctx context.Context, sessionID sharedtypes.SessionID, homeTeamID sharedtypes.HomeTeamID, female, middleSchool bool) (results.OperationResult, error)
	ClearSessionData(ctx context.Context, sessionID sharedtypes.SessionID) (results.OperationResult, error)
}

var _ Service = (*RosterService)(nil)
