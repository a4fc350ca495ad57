package rosterdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

func TestResolveEligibilityStarter(t *testing.T) {
	snap := testSnapshot()

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)

	// Avery (112.4 -> 113) fits their own slot; Casey is unweighed, Drew is
	// female, Emery is middle school, Blake (118 -> 120) is too heavy for
	// 113. Finley is in the Division I farm pool at 111.
	assert.Equal(t, []string{"w-unassigned"}, poolIDs(pools.Home))
	assert.Equal(t, []string{"w-farm"}, poolIDs(pools.Farm))
}

func TestResolveEligibilityOneClassUp(t *testing.T) {
	snap := testSnapshot()

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "120",
	})
	require.NoError(t, err)

	// Both the 113-class wrestlers may bump one class up to 120, joining
	// Blake who is natively 120. Pools are ordered by ascending weight.
	assert.Equal(t, []string{"w-unassigned", "w-heavier"}, poolIDs(pools.Home))
	assert.Equal(t, []string{"w-farm"}, poolIDs(pools.Farm))
}

func TestResolveEligibilityNoCascadeBeyondOneClass(t *testing.T) {
	snap := testSnapshot()

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "126",
	})
	require.NoError(t, err)

	// 113-class wrestlers are two classes below 126: excluded even though
	// the slot would otherwise go unfilled. Only Blake (120 -> 126) fits.
	assert.Equal(t, []string{"w-heavier"}, poolIDs(pools.Home))
	assert.Empty(t, pools.Farm)
}

func TestResolveEligibilityNeverDown(t *testing.T) {
	snap := testSnapshot()

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "106",
	})
	require.NoError(t, err)

	// Nobody in the fixture floors to 106 or below.
	assert.Empty(t, pools.Home)
	assert.Empty(t, pools.Farm)
}

func TestResolveEligibilitySelfSlotCandidate(t *testing.T) {
	snap := testSnapshot()
	placeStarter(&snap, "w-unassigned", "ct-alpha", "113")

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)

	// The current occupant remains a candidate for their own slot but for
	// nothing else.
	assert.Contains(t, poolIDs(pools.Home), "w-unassigned")

	other, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "120",
	})
	require.NoError(t, err)
	assert.NotContains(t, poolIDs(other.Home), "w-unassigned")
}

func TestResolveEligibilityReservePromotion(t *testing.T) {
	snap := testSnapshot()
	placeReserve(&snap, "w-unassigned", "ct-alpha")

	t.Run("own team reserve may start", func(t *testing.T) {
		pools, err := ResolveEligibility(snap, EligibilityRequest{
			TeamID: "ct-alpha",
			Role:   sharedtypes.RoleStarter,
			Slot:   "113",
		})
		require.NoError(t, err)
		assert.Contains(t, poolIDs(pools.Home), "w-unassigned")
	})

	t.Run("reserve is not a reserve candidate again", func(t *testing.T) {
		pools, err := ResolveEligibility(snap, EligibilityRequest{
			TeamID: "ct-alpha",
			Role:   sharedtypes.RoleReserve,
		})
		require.NoError(t, err)
		assert.NotContains(t, poolIDs(pools.Home), "w-unassigned")
	})

	t.Run("another team's reserve is unavailable", func(t *testing.T) {
		pools, err := ResolveEligibility(snap, EligibilityRequest{
			TeamID: "ct-bravo",
			Role:   sharedtypes.RoleStarter,
			Slot:   "113",
		})
		require.NoError(t, err)
		assert.NotContains(t, poolIDs(pools.Home), "w-unassigned")
		assert.NotContains(t, poolIDs(pools.Farm), "w-unassigned")
	})
}

func TestResolveEligibilityReserveRequest(t *testing.T) {
	snap := testSnapshot()

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleReserve,
	})
	require.NoError(t, err)

	// No weight adjacency for reserves: every weighed-in, open-division,
	// unplaced Alpha wrestler qualifies regardless of class.
	assert.Equal(t, []string{"w-unassigned", "w-heavier"}, poolIDs(pools.Home))
	assert.Equal(t, []string{"w-farm"}, poolIDs(pools.Farm))
}

func TestResolveEligibilityFarmPoolDivisionMatch(t *testing.T) {
	snap := testSnapshot()
	w := snap.Wrestlers["w-farm"]
	w.FarmOutDivision = sharedtypes.DivisionII
	snap.Wrestlers["w-farm"] = w

	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "113",
	})
	require.NoError(t, err)
	assert.Empty(t, pools.Farm)
}

func TestResolveEligibilityValidation(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name string
		req  EligibilityRequest
	}{
		{name: "unknown team", req: EligibilityRequest{TeamID: "ct-missing", Role: sharedtypes.RoleStarter, Slot: "113"}},
		{name: "starter without slot", req: EligibilityRequest{TeamID: "ct-alpha", Role: sharedtypes.RoleStarter}},
		{name: "slot outside catalog", req: EligibilityRequest{TeamID: "ct-alpha", Role: sharedtypes.RoleStarter, Slot: "999"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveEligibility(snap, tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestResolveEligibilityCustomClassSlot(t *testing.T) {
	snap := testSnapshot()
	snap.Session.CustomWeightsDivI = []WeightClass{{Name: "115", MaxWeight: 115.0}}

	// 115 sits between 113 and 120 in the merged catalog, so the 113-class
	// wrestlers are one class below it and Blake (120) is above it.
	pools, err := ResolveEligibility(snap, EligibilityRequest{
		TeamID: "ct-alpha",
		Role:   sharedtypes.RoleStarter,
		Slot:   "115",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"w-unassigned"}, poolIDs(pools.Home))
	assert.Equal(t, []string{"w-farm"}, poolIDs(pools.Farm))
}
