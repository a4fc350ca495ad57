package rosterservice

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterevents "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain/events"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

const testSessionID = sharedtypes.SessionID("session-1")

func newTestService(snap rosterdomain.Snapshot) (*RosterService, *FakeRepository, *FakePublisher) {
	repo := NewFakeRepository(snap)
	publisher := &FakePublisher{}
	logger := slog.New(slog.DiscardHandler)
	metrics := observability.NewOperationMetrics(prometheus.NewRegistry())
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewRosterService(repo, publisher, logger, metrics, tracer), repo, publisher
}

func serviceSnapshot() rosterdomain.Snapshot {
	snap := rosterdomain.Snapshot{
		Session:          rosterdomain.Session{ID: testSessionID, Name: "Season Opener"},
		HomeTeams:        map[sharedtypes.HomeTeamID]rosterdomain.HomeTeam{},
		Wrestlers:        map[sharedtypes.WrestlerID]rosterdomain.Wrestler{},
		CompetitionTeams: map[sharedtypes.CompetitionTeamID]rosterdomain.CompetitionTeam{},
	}
	snap.HomeTeams["ht-alpha"] = rosterdomain.HomeTeam{ID: "ht-alpha", Name: "Alpha", State: "CO"}
	snap.HomeTeams["ht-bravo"] = rosterdomain.HomeTeam{ID: "ht-bravo", Name: "Bravo", State: "CO"}
	snap.CompetitionTeams["ct-alpha"] = rosterdomain.CompetitionTeam{
		ID:                     "ct-alpha",
		Name:                   "Alpha Red",
		AssociatedHomeTeamID:   "ht-alpha",
		AssociatedHomeTeamName: "Alpha",
		Division:               sharedtypes.DivisionI,
		Roster:                 rosterdomain.RosterMap{},
	}
	snap.Wrestlers["w-avery"] = rosterdomain.Wrestler{
		ID: "w-avery", Name: "Avery", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha",
		ActualWeight: 112.4, CalculatedWeightClass: "113",
		Status: sharedtypes.WrestlerUnassigned,
	}
	snap.Wrestlers["w-finley"] = rosterdomain.Wrestler{
		ID: "w-finley", Name: "Finley", HomeTeamID: "ht-bravo", HomeTeamName: "Bravo",
		ActualWeight: 111.0, CalculatedWeightClass: "113",
		Status: sharedtypes.WrestlerFarmOutAvailable, FarmOutDivision: sharedtypes.DivisionI,
	}
	return snap
}

func TestAssignWrestler(t *testing.T) {
	svc, repo, publisher := newTestService(serviceSnapshot())

	result, err := svc.AssignWrestler(context.Background(), testSessionID, "w-avery", rosterdomain.EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	payload, ok := result.Success.(*rosterevents.AssignedPayload)
	require.True(t, ok)
	assert.Equal(t, sharedtypes.WrestlerID("w-avery"), payload.WrestlerID)
	assert.Empty(t, payload.DisplacedWrestlerID)

	// The fake replayed the transaction: the snapshot reflects the commit.
	w := repo.State().Wrestlers["w-avery"]
	assert.Equal(t, sharedtypes.WrestlerStarter, w.Status)
	assert.Equal(t, "113", w.AssignedWeightClassSlot)

	require.Equal(t, []string{rosterevents.WrestlerAssigned}, publisher.Topics)
}

func TestAssignWrestlerReportsDisplacement(t *testing.T) {
	snap := serviceSnapshot()
	team := snap.CompetitionTeams["ct-alpha"]
	team.Roster = rosterdomain.RosterMap{"113": "w-finley"}
	snap.CompetitionTeams["ct-alpha"] = team
	finley := snap.Wrestlers["w-finley"]
	finley.Status = sharedtypes.WrestlerStarter
	finley.CompetitionTeamID = "ct-alpha"
	finley.CompetitionTeamName = "Alpha Red"
	finley.AssignedWeightClassSlot = "113"
	finley.FarmOutDivision = ""
	snap.Wrestlers["w-finley"] = finley

	svc, repo, _ := newTestService(snap)

	result, err := svc.AssignWrestler(context.Background(), testSessionID, "w-avery", rosterdomain.EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)

	payload := result.Success.(*rosterevents.AssignedPayload)
	assert.Equal(t, sharedtypes.WrestlerID("w-finley"), payload.DisplacedWrestlerID)

	displaced := repo.State().Wrestlers["w-finley"]
	assert.Equal(t, sharedtypes.WrestlerFarmOutAvailable, displaced.Status)
	assert.Equal(t, sharedtypes.DivisionI, displaced.FarmOutDivision)
}

func TestAssignWrestlerSelfSlotSkipsCommit(t *testing.T) {
	snap := serviceSnapshot()
	team := snap.CompetitionTeams["ct-alpha"]
	team.Roster = rosterdomain.RosterMap{"113": "w-avery"}
	snap.CompetitionTeams["ct-alpha"] = team
	avery := snap.Wrestlers["w-avery"]
	avery.Status = sharedtypes.WrestlerStarter
	avery.CompetitionTeamID = "ct-alpha"
	avery.CompetitionTeamName = "Alpha Red"
	avery.AssignedWeightClassSlot = "113"
	snap.Wrestlers["w-avery"] = avery

	svc, repo, publisher := newTestService(snap)

	result, err := svc.AssignWrestler(context.Background(), testSessionID, "w-avery", rosterdomain.EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	assert.Equal(t, []string{"Snapshot"}, repo.Trace())
	assert.Empty(t, publisher.Topics)
}

func TestAssignWrestlerIneligible(t *testing.T) {
	svc, _, publisher := newTestService(serviceSnapshot())

	result, err := svc.AssignWrestler(context.Background(), testSessionID, "w-avery", rosterdomain.EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "150",
	})
	require.Error(t, err)
	var ie *rosterdomain.IneligibleAssignmentError
	require.ErrorAs(t, err, &ie)
	require.NotNil(t, result.Failure)
	assert.Empty(t, publisher.Topics)
}

func TestUnassignWrestlerRoundTrip(t *testing.T) {
	svc, repo, publisher := newTestService(serviceSnapshot())
	ctx := context.Background()

	_, err := svc.AssignWrestler(ctx, testSessionID, "w-finley", rosterdomain.EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)

	result, err := svc.UnassignWrestler(ctx, testSessionID, "w-finley", "ct-alpha", sharedtypes.RoleStarter, "113")
	require.NoError(t, err)

	payload := result.Success.(*rosterevents.UnassignedPayload)
	assert.Equal(t, sharedtypes.WrestlerFarmOutAvailable, payload.RevertedStatus)

	w := repo.State().Wrestlers["w-finley"]
	assert.Equal(t, sharedtypes.WrestlerFarmOutAvailable, w.Status)
	assert.Equal(t, sharedtypes.DivisionI, w.FarmOutDivision)

	assert.Equal(t, []string{rosterevents.WrestlerAssigned, rosterevents.WrestlerUnassigned}, publisher.Topics)
}

func TestRecordWeighIn(t *testing.T) {
	svc, repo, publisher := newTestService(serviceSnapshot())

	result, err := svc.RecordWeighIn(context.Background(), testSessionID, "w-avery", 151.5)
	require.NoError(t, err)

	payload := result.Success.(*rosterevents.WeighedInPayload)
	assert.Equal(t, "157", payload.CalculatedWeightClass)
	assert.Equal(t, "157", repo.State().Wrestlers["w-avery"].CalculatedWeightClass)
	assert.Equal(t, []string{rosterevents.WrestlerWeighedIn}, publisher.Topics)
}

func TestCommitFailureSurfaces(t *testing.T) {
	svc, repo, publisher := newTestService(serviceSnapshot())
	repo.CommitErr = assert.AnError

	result, err := svc.RecordWeighIn(context.Background(), testSessionID, "w-avery", 151.5)
	require.Error(t, err)
	var cf *rosterdomain.CommitFailure
	require.ErrorAs(t, err, &cf)
	require.NotNil(t, result.Failure)

	// Nothing published, snapshot observably unchanged.
	assert.Empty(t, publisher.Topics)
	assert.Equal(t, 112.4, repo.State().Wrestlers["w-avery"].ActualWeight)
}

func TestResolveEligibility(t *testing.T) {
	svc, _, _ := newTestService(serviceSnapshot())

	result, err := svc.ResolveEligibility(context.Background(), testSessionID, rosterdomain.EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)

	payload := result.Success.(*EligibilityResult)
	require.Len(t, payload.Pools.Home, 1)
	require.Len(t, payload.Pools.Farm, 1)
	assert.Equal(t, sharedtypes.WrestlerID("w-avery"), payload.Pools.Home[0].ID)
	assert.Equal(t, sharedtypes.WrestlerID("w-finley"), payload.Pools.Farm[0].ID)
}

func TestBulkSetDivisionFlags(t *testing.T) {
	snap := serviceSnapshot()
	for i := 0; i < 5; i++ {
		id := sharedtypes.WrestlerID("w-bulk-" + string(rune('a'+i)))
		snap.Wrestlers[id] = rosterdomain.Wrestler{
			ID: id, Name: "Bulk " + string(rune('A'+i)), HomeTeamID: "ht-alpha", HomeTeamName: "Alpha",
			ActualWeight: 100, CalculatedWeightClass: "106",
			Status: sharedtypes.WrestlerUnassigned,
		}
	}
	svc, repo, _ := newTestService(snap)

	result, err := svc.BulkSetDivisionFlags(context.Background(), testSessionID, "ht-alpha", false, true)
	require.NoError(t, err)

	payload := result.Success.(*BulkResultPayload)
	// Avery plus the five bulk wrestlers; Finley belongs to Bravo.
	assert.Equal(t, 6, payload.Affected)
	assert.Equal(t, 0, payload.Skipped)

	for id, w := range repo.State().Wrestlers {
		if w.HomeTeamID == "ht-alpha" {
			assert.True(t, w.IsMiddleSchool, "wrestler %s not marked", id)
		}
	}
}

func TestClearSessionData(t *testing.T) {
	svc, repo, _ := newTestService(serviceSnapshot())

	result, err := svc.ClearSessionData(context.Background(), testSessionID)
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	state := repo.State()
	assert.Empty(t, state.Wrestlers)
	assert.Empty(t, state.HomeTeams)
	assert.Empty(t, state.CompetitionTeams)
}

func TestCreateWrestlerValidation(t *testing.T) {
	svc, repo, _ := newTestService(serviceSnapshot())

	_, err := svc.CreateWrestler(context.Background(), testSessionID, rosterdomain.Wrestler{Name: "Nameless"})
	require.Error(t, err)
	var ve *rosterdomain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotContains(t, repo.Trace(), "CreateWrestler")

	result, err := svc.CreateWrestler(context.Background(), testSessionID, rosterdomain.Wrestler{
		Name: "Harper", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha",
	})
	require.NoError(t, err)
	payload := result.Success.(*CreatedPayload)
	created := repo.State().Wrestlers[sharedtypes.WrestlerID(payload.ID)]
	assert.Equal(t, sharedtypes.WrestlerUnassigned, created.Status)
	assert.Equal(t, rosterdomain.UnweighedClass, created.CalculatedWeightClass)
}
