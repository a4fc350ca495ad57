package roster_test

import (
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	rosterservice "github.com/high-country-wrestling/roster-bot/app/modules/roster/application"
	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/integration_tests/testutils"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// TestRosterLifecycle drives a full meet setup against real Postgres and
// NATS: session, teams, a weighed-in wrestler, placement, and teardown.
func TestRosterLifecycle(t *testing.T) {
	env := testutils.NewTestEnvironment(t)
	ctx := env.Ctx

	sessions := sessiondb.NewStore(env.DB)
	sess, err := sessions.CreateSession(ctx, "Regional Dual")
	require.NoError(t, err)
	sessionID := sess.ID

	store := rosterdb.NewStore(env.DB)
	service := rosterservice.NewRosterService(
		store,
		env.EventBus,
		slog.New(slog.DiscardHandler),
		observability.NewOperationMetrics(prometheus.NewRegistry()),
		noop.NewTracerProvider().Tracer("test"),
	)

	result, err := service.CreateHomeTeam(ctx, sessionID, rosterdomain.HomeTeam{Name: "Highlands", State: "CO"})
	require.NoError(t, err)
	homeTeamID := sharedtypes.HomeTeamID(result.Success.(*rosterservice.CreatedPayload).ID)

	result, err = service.CreateCompetitionTeam(ctx, sessionID, rosterdomain.CompetitionTeam{
		Name:                 "Highlands Varsity",
		AssociatedHomeTeamID: homeTeamID,
		Division:             sharedtypes.DivisionI,
	})
	require.NoError(t, err)
	teamID := sharedtypes.CompetitionTeamID(result.Success.(*rosterservice.CreatedPayload).ID)

	result, err = service.CreateWrestler(ctx, sessionID, rosterdomain.Wrestler{
		Name:         "Rowan Pike",
		HomeTeamID:   homeTeamID,
		HomeTeamName: "Highlands",
	})
	require.NoError(t, err)
	wrestlerID := sharedtypes.WrestlerID(result.Success.(*rosterservice.CreatedPayload).ID)

	result, err = service.RecordWeighIn(ctx, sessionID, wrestlerID, 111.8)
	require.NoError(t, err)
	weighIn := result.Success.(*rosterevents.WeighedInPayload)
	require.Equal(t, "113", weighIn.CalculatedWeightClass)

	result, err = service.AssignWrestler(ctx, sessionID, wrestlerID, rosterdomain.EligibilityRequest{
		TeamID: teamID,
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)
	assigned := result.Success.(*rosterevents.AssignedPayload)
	require.Equal(t, wrestlerID, assigned.WrestlerID)
	require.Empty(t, assigned.DisplacedWrestlerID)

	// The placement must be visible in a fresh snapshot read.
	snap, err := store.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	w := snap.Wrestlers[wrestlerID]
	require.Equal(t, sharedtypes.WrestlerStarter, w.Status)
	require.Equal(t, teamID, w.CompetitionTeamID)
	require.Equal(t, "113", w.AssignedWeightClassSlot)
	occupant, ok := snap.CompetitionTeams[teamID].Roster.Occupant("113")
	require.True(t, ok)
	require.Equal(t, wrestlerID, occupant)

	result, err = service.UnassignWrestler(ctx, sessionID, wrestlerID, teamID, sharedtypes.RoleStarter, "113")
	require.NoError(t, err)
	unassigned := result.Success.(*rosterevents.UnassignedPayload)
	require.Equal(t, sharedtypes.WrestlerUnassigned, unassigned.RevertedStatus)

	snap, err = store.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	_, ok = snap.CompetitionTeams[teamID].Roster.Occupant("113")
	require.False(t, ok)

	result, err = service.ClearSessionData(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	snap, err = store.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	require.Empty(t, snap.Wrestlers)
	require.Empty(t, snap.HomeTeams)
	require.Empty(t, snap.CompetitionTeams)
}
