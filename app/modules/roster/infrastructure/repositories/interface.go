package rosterdb

import (
	"context"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Repository is the storage contract the roster service depends on: a
// point-in-time snapshot read and an all-or-nothing transaction commit.
type Repository interface {
	// Snapshot loads every entity of the session.
	Snapshot(ctx context.Context, sessionID sharedtypes.SessionID) (rosterdomain.Snapshot, error)

	// Commit applies the transaction atomically. On failure nothing is
	// written and the error wraps rosterdomain.CommitFailure.
	Commit(ctx context.Context, sessionID sharedtypes.SessionID, tx rosterdomain.Transaction) error

	// CommitChunked applies a batch of transactions in chunks under the
	// per-commit mutation limit. Each chunk is atomic; chunks are
	// independent.
	CommitChunked(ctx context.Context, sessionID sharedtypes.SessionID, txs []*rosterdomain.Transaction) error

	// CreateWrestler inserts a new unweighed, unassigned wrestler and
	// returns its id.
	CreateWrestler(ctx context.Context, sessionID sharedtypes.SessionID, w rosterdomain.Wrestler) (sharedtypes.WrestlerID, error)

	// CreateHomeTeam inserts a new home team and returns its id.
	CreateHomeTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.HomeTeam) (sharedtypes.HomeTeamID, error)

	// CreateCompetitionTeam inserts a new competition team with an empty
	// roster and returns its id.
	CreateCompetitionTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.CompetitionTeam) (sharedtypes.CompetitionTeamID, error)
}
