package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/integration_tests/testutils"
)

func TestSessionCustomWeightsRoundTrip(t *testing.T) {
	env := testutils.NewTestEnvironment(t)
	ctx := env.Ctx
	sessions := sessiondb.NewStore(env.DB)

	sess, err := sessions.CreateSession(ctx, "League Finals")
	require.NoError(t, err)

	classes := []rosterdomain.WeightClass{
		{Name: "98", MaxWeight: 98},
		{Name: "115", MaxWeight: 115},
	}
	require.NoError(t, sessions.UpdateCustomWeights(ctx, sess.ID, sharedtypes.DivisionII, classes))

	got, err := sessions.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, classes, got.CustomWeightsDivII)
	require.Empty(t, got.CustomWeightsDivI)

	_, err = sessions.GetSession(ctx, "no-such-session")
	require.ErrorIs(t, err, sessiondb.ErrSessionNotFound)
}

// TestCopySessionData verifies the deep copy remaps every cross-entity ID
// reference so placements survive under fresh IDs.
func TestCopySessionData(t *testing.T) {
	env := testutils.NewTestEnvironment(t)
	ctx := env.Ctx

	sessions := sessiondb.NewStore(env.DB)
	store := rosterdb.NewStore(env.DB)

	source, err := sessions.CreateSession(ctx, "Original")
	require.NoError(t, err)
	target, err := sessions.CreateSession(ctx, "Copy")
	require.NoError(t, err)

	homeTeamID, err := store.CreateHomeTeam(ctx, source.ID, rosterdomain.HomeTeam{Name: "Summit"})
	require.NoError(t, err)

	wrestlerID, err := store.CreateWrestler(ctx, source.ID, rosterdomain.Wrestler{
		Name:                  "Dana Frost",
		HomeTeamID:            homeTeamID,
		HomeTeamName:          "Summit",
		ActualWeight:          118.2,
		CalculatedWeightClass: "120",
		Status:                sharedtypes.WrestlerUnassigned,
	})
	require.NoError(t, err)

	teamID, err := store.CreateCompetitionTeam(ctx, source.ID, rosterdomain.CompetitionTeam{
		Name:                 "Summit Gold",
		AssociatedHomeTeamID: homeTeamID,
		Division:             sharedtypes.DivisionI,
		Roster:               rosterdomain.RosterMap{"120": wrestlerID},
	})
	require.NoError(t, err)

	require.NoError(t, sessions.CopySessionData(ctx, source.ID, target.ID))

	snap, err := store.Snapshot(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, snap.HomeTeams, 1)
	require.Len(t, snap.Wrestlers, 1)
	require.Len(t, snap.CompetitionTeams, 1)

	for id, team := range snap.CompetitionTeams {
		require.NotEqual(t, teamID, id)
		require.Equal(t, "Summit Gold", team.Name)

		occupant, ok := team.Roster.Occupant("120")
		require.True(t, ok)
		require.NotEqual(t, wrestlerID, occupant)

		copied, found := snap.Wrestler(occupant)
		require.True(t, found)
		require.Equal(t, "Dana Frost", copied.Name)
		require.NotEqual(t, homeTeamID, copied.HomeTeamID)
		require.Contains(t, snap.HomeTeams, copied.HomeTeamID)
		require.Equal(t, copied.HomeTeamID, team.AssociatedHomeTeamID)
	}

	// Source is untouched; deleting it leaves the copy intact.
	require.NoError(t, sessions.DeleteSession(ctx, source.ID))
	_, err = store.Snapshot(ctx, source.ID)
	require.Error(t, err)

	snap, err = store.Snapshot(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, snap.Wrestlers, 1)
}
