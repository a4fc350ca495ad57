package rosterdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 100.0, Percent(3, 3))
}

func TestForfeitCounts(t *testing.T) {
	snap := testSnapshot()
	placeStarter(&snap, "w-unassigned", "ct-alpha", "113")
	classes := snap.ClassesFor(sharedtypes.DivisionI)

	team := snap.CompetitionTeams["ct-alpha"]
	assert.Equal(t, len(classes)-1, ForfeitCount(team, classes))

	byClass := ForfeitsByClass(team, classes)
	assert.Equal(t, 0, byClass["113"])
	assert.Equal(t, 1, byClass["106"])

	// An explicit empty entry is a forfeit, same as an absent one.
	team.Roster["120"] = ""
	assert.Equal(t, len(classes)-1, ForfeitCount(team, classes))
}

func TestForfeitsByTeamSortedByName(t *testing.T) {
	snap := testSnapshot()
	placeStarter(&snap, "w-unassigned", "ct-alpha", "113")

	totals := ForfeitsByTeam(snap, sharedtypes.DivisionI)
	require.Len(t, totals, 2)
	assert.Equal(t, "Alpha Red", totals[0].TeamName)
	assert.Equal(t, "Bravo Blue", totals[1].TeamName)
	assert.Equal(t, totals[1].Forfeits, totals[0].Forfeits+1)
}

func TestDivisionForfeitsByClass(t *testing.T) {
	snap := testSnapshot()
	placeStarter(&snap, "w-unassigned", "ct-alpha", "113")

	byClass := DivisionForfeitsByClass(snap, sharedtypes.DivisionI)
	assert.Equal(t, 1, byClass["113"])
	assert.Equal(t, 2, byClass["106"])
}

func TestFarmOutPoolByClass(t *testing.T) {
	snap := testSnapshot()

	pool := FarmOutPoolByClass(snap, sharedtypes.DivisionI)
	assert.Equal(t, map[string]int{"113": 1}, pool)
	assert.Empty(t, FarmOutPoolByClass(snap, sharedtypes.DivisionII))
}

func TestComputeReport(t *testing.T) {
	snap := testSnapshot()
	ht := snap.HomeTeams["ht-alpha"]
	ht.WeighInComplete = true
	snap.HomeTeams["ht-alpha"] = ht

	report := ComputeReport(snap)

	assert.Equal(t, 7, report.TotalWrestlers)
	assert.Equal(t, 2, report.HomeTeamCount)
	assert.Equal(t, 2, report.CompTeamCountDivI)
	assert.Equal(t, 0, report.CompTeamCountDivII)
	assert.Equal(t, 1, report.FemaleCount)
	assert.Equal(t, 1, report.MiddleSchoolCount)

	// Casey is the only wrestler without a weight.
	assert.InDelta(t, 100.0*6.0/7.0, report.WeighInPercent, 0.001)
	assert.Equal(t, 50.0, report.TeamWeighInPercent)
	assert.Equal(t, 0.0, report.TeamRosterPercent)
	assert.Equal(t, []string{"Bravo"}, report.TeamsPendingWeighIn)
	assert.Equal(t, []string{"Alpha", "Bravo"}, report.TeamsPendingRoster)
}
