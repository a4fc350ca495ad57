package reportsservice

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

func reportSnapshot(t *testing.T) rosterdomain.Snapshot {
	t.Helper()
	gofakeit.Seed(11)

	snap := rosterdomain.Snapshot{
		Session:          rosterdomain.Session{ID: "session-1", Name: "Season Opener"},
		HomeTeams:        map[sharedtypes.HomeTeamID]rosterdomain.HomeTeam{},
		Wrestlers:        map[sharedtypes.WrestlerID]rosterdomain.Wrestler{},
		CompetitionTeams: map[sharedtypes.CompetitionTeamID]rosterdomain.CompetitionTeam{},
	}
	snap.HomeTeams["ht-alpha"] = rosterdomain.HomeTeam{ID: "ht-alpha", Name: "Alpha", State: "CO"}
	snap.HomeTeams["ht-bravo"] = rosterdomain.HomeTeam{ID: "ht-bravo", Name: "Bravo", State: "WY"}

	snap.Wrestlers["w-starter"] = rosterdomain.Wrestler{
		ID: "w-starter", Name: "Avery Starter", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha",
		ActualWeight: 112.0, CalculatedWeightClass: "113",
		Status: sharedtypes.WrestlerStarter, CompetitionTeamID: "ct-alpha",
		CompetitionTeamName: "Alpha Red", AssignedWeightClassSlot: "113",
	}
	snap.Wrestlers["w-borrowed"] = rosterdomain.Wrestler{
		ID: "w-borrowed", Name: "Blake Borrowed", HomeTeamID: "ht-bravo", HomeTeamName: "Bravo",
		ActualWeight: 118.0, CalculatedWeightClass: "120",
		Status: sharedtypes.WrestlerStarter, CompetitionTeamID: "ct-alpha",
		CompetitionTeamName: "Alpha Red", AssignedWeightClassSlot: "120",
	}
	snap.Wrestlers["w-reserve"] = rosterdomain.Wrestler{
		ID: "w-reserve", Name: "Casey Reserve", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha",
		ActualWeight: 125.0, CalculatedWeightClass: "126",
		Status: sharedtypes.WrestlerReserve, CompetitionTeamID: "ct-alpha",
		CompetitionTeamName: "Alpha Red",
	}

	// Filler wrestlers in the farm pool so the chart has depth to annotate.
	for i := 0; i < 3; i++ {
		id := sharedtypes.WrestlerID(gofakeit.UUID())
		snap.Wrestlers[id] = rosterdomain.Wrestler{
			ID: id, Name: gofakeit.Name(), HomeTeamID: "ht-bravo", HomeTeamName: "Bravo",
			ActualWeight: 130.0, CalculatedWeightClass: "132",
			Status: sharedtypes.WrestlerFarmOutAvailable, FarmOutDivision: sharedtypes.DivisionI,
		}
	}

	snap.CompetitionTeams["ct-alpha"] = rosterdomain.CompetitionTeam{
		ID: "ct-alpha", Name: "Alpha Red",
		AssociatedHomeTeamID: "ht-alpha", AssociatedHomeTeamName: "Alpha",
		Division: sharedtypes.DivisionI,
		Roster:   rosterdomain.RosterMap{"113": "w-starter", "120": "w-borrowed"},
		Reserves: []sharedtypes.WrestlerID{"w-reserve"},
	}
	return snap
}

func TestBuildRosterWorkbook(t *testing.T) {
	snap := reportSnapshot(t)

	f, err := BuildRosterWorkbook(snap, sharedtypes.DivisionI)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Alpha Red")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	assert.Equal(t, []string{"Weight Class", "Wrestler", "Notes"}, rows[0])

	// 14 standard classes follow the header; 113 and 120 filled, rest forfeit.
	classRows := rows[1:15]
	byClass := map[string][]string{}
	for _, row := range classRows {
		byClass[row[0]] = row
	}
	assert.Equal(t, "Avery Starter", byClass["113"][1])
	assert.Equal(t, "Blake Borrowed", byClass["120"][1])
	assert.Equal(t, "farm-out from Bravo", byClass["120"][2])
	assert.Equal(t, forfeitLabel, byClass["106"][1])
	assert.Equal(t, forfeitLabel, byClass["285"][1])

	// Forfeit total: 14 slots, 2 filled.
	var foundTotal bool
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "Forfeits" {
			assert.Equal(t, "12", row[1])
			foundTotal = true
		}
	}
	assert.True(t, foundTotal, "forfeit total row missing")

	// Reserve grouped under its calculated class.
	var foundReserve bool
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "126" && row[1] == "Casey Reserve" {
			foundReserve = true
		}
	}
	assert.True(t, foundReserve, "reserve row missing")
}

func TestBuildPlacementWorkbook(t *testing.T) {
	snap := reportSnapshot(t)

	f, err := BuildPlacementWorkbook(snap)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Alpha")
	assert.Contains(t, sheets, "Bravo")

	rows, err := f.GetRows("Alpha")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)

	byName := map[string][]string{}
	for _, row := range rows[1:] {
		byName[row[0]] = row
	}
	assert.Equal(t, "Alpha Red @ 113", byName["Avery Starter"][4])
	assert.Equal(t, "Alpha Red (reserve)", byName["Casey Reserve"][4])
}

func TestRenderForfeitChart(t *testing.T) {
	snap := reportSnapshot(t)

	payload, err := RenderForfeitChart(snap, sharedtypes.DivisionI)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, payload[:4])
}
