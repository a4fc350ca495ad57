package importerservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

func TestParseHomeTeams(t *testing.T) {
	csv := "name,state\nAlpha,CO\nBravo,WY\n,ignored\n"
	rows, err := ParseHomeTeams(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, HomeTeamRow{Name: "Alpha", State: "CO"}, rows[0])
	assert.Equal(t, HomeTeamRow{Name: "Bravo", State: "WY"}, rows[1])
}

func TestParseHomeTeamsMissingNameColumn(t *testing.T) {
	_, err := ParseHomeTeams(strings.NewReader("state\nCO\n"))
	require.Error(t, err)
}

func TestParseWrestlers(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Home_Team,Weight,Is_Female,Is_Middle_School",
		"Avery,Alpha,112.4,,",
		"Drew,Alpha,110,true,",
		"Casey,Bravo,,,yes",
	}, "\n")

	rows, err := ParseWrestlers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, WrestlerRow{Name: "Avery", HomeTeamName: "Alpha", Weight: 112.4}, rows[0])
	assert.True(t, rows[1].IsFemale)
	// Blank weight parses to zero, the not-yet-weighed-in marker.
	assert.Zero(t, rows[2].Weight)
	assert.True(t, rows[2].IsMiddleSchool)
}

func TestParseWrestlersInvalidWeight(t *testing.T) {
	csv := "name,home_team,weight\nAvery,Alpha,heavy\n"
	_, err := ParseWrestlers(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseCompetitionTeams(t *testing.T) {
	csv := "name,home_team,division\nAlpha Red,Alpha,I\nAlpha Gold,Alpha,II\n"
	rows, err := ParseCompetitionTeams(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sharedtypes.DivisionI, rows[0].Division)
	assert.Equal(t, sharedtypes.DivisionII, rows[1].Division)
}

func TestParseCompetitionTeamsInvalidDivision(t *testing.T) {
	csv := "name,home_team,division\nAlpha Red,Alpha,III\n"
	_, err := ParseCompetitionTeams(strings.NewReader(csv))
	require.Error(t, err)
}

func TestParseEmptyFile(t *testing.T) {
	rows, err := ParseHomeTeams(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
