package rosterdomain

import (
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// testSnapshot builds the baseline scenario used across the package tests:
// two home teams (Alpha, Bravo), one Division I competition team per home
// team, and a handful of wrestlers in assorted states.
func testSnapshot() Snapshot {
	snap := Snapshot{
		Session:          Session{ID: "session-1", Name: "Season Opener"},
		HomeTeams:        map[sharedtypes.HomeTeamID]HomeTeam{},
		Wrestlers:        map[sharedtypes.WrestlerID]Wrestler{},
		CompetitionTeams: map[sharedtypes.CompetitionTeamID]CompetitionTeam{},
	}

	snap.HomeTeams["ht-alpha"] = HomeTeam{ID: "ht-alpha", Name: "Alpha", State: "CO"}
	snap.HomeTeams["ht-bravo"] = HomeTeam{ID: "ht-bravo", Name: "Bravo", State: "CO"}

	snap.CompetitionTeams["ct-alpha"] = CompetitionTeam{
		ID:                     "ct-alpha",
		Name:                   "Alpha Red",
		AssociatedHomeTeamID:   "ht-alpha",
		AssociatedHomeTeamName: "Alpha",
		Division:               sharedtypes.DivisionI,
		Roster:                 RosterMap{},
	}
	snap.CompetitionTeams["ct-bravo"] = CompetitionTeam{
		ID:                     "ct-bravo",
		Name:                   "Bravo Blue",
		AssociatedHomeTeamID:   "ht-bravo",
		AssociatedHomeTeamName: "Bravo",
		Division:               sharedtypes.DivisionI,
		Roster:                 RosterMap{},
	}

	addTestWrestler(&snap, Wrestler{ID: "w-unassigned", Name: "Avery", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha", ActualWeight: 112.4})
	addTestWrestler(&snap, Wrestler{ID: "w-heavier", Name: "Blake", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha", ActualWeight: 118.0})
	addTestWrestler(&snap, Wrestler{ID: "w-unweighed", Name: "Casey", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha", ActualWeight: 0})
	addTestWrestler(&snap, Wrestler{ID: "w-female", Name: "Drew", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha", ActualWeight: 110.0, IsFemale: true})
	addTestWrestler(&snap, Wrestler{ID: "w-ms", Name: "Emery", HomeTeamID: "ht-alpha", HomeTeamName: "Alpha", ActualWeight: 104.0, IsMiddleSchool: true})
	addTestWrestler(&snap, Wrestler{
		ID: "w-farm", Name: "Finley", HomeTeamID: "ht-bravo", HomeTeamName: "Bravo",
		ActualWeight: 111.0, Status: sharedtypes.WrestlerFarmOutAvailable,
		FarmOutDivision: sharedtypes.DivisionI,
	})
	addTestWrestler(&snap, Wrestler{ID: "w-bravo-free", Name: "Gray", HomeTeamID: "ht-bravo", HomeTeamName: "Bravo", ActualWeight: 130.0})
	return snap
}

// addTestWrestler fills the derived fields a stored record would carry.
func addTestWrestler(snap *Snapshot, w Wrestler) {
	if w.Status == "" {
		w.Status = sharedtypes.WrestlerUnassigned
	}
	w.CalculatedWeightClass = Classify(w.ActualWeight, StandardWeightClasses)
	snap.Wrestlers[w.ID] = w
}

// placeStarter wires a wrestler into a slot on both sides of the
// relationship, the way a committed assignment transaction would.
func placeStarter(snap *Snapshot, wrestlerID sharedtypes.WrestlerID, teamID sharedtypes.CompetitionTeamID, slot string) {
	team := snap.CompetitionTeams[teamID]
	team.Roster = team.Roster.Clone()
	team.Roster[slot] = wrestlerID
	snap.CompetitionTeams[teamID] = team

	w := snap.Wrestlers[wrestlerID]
	w.Status = sharedtypes.WrestlerStarter
	w.CompetitionTeamID = teamID
	w.CompetitionTeamName = team.Name
	w.AssignedWeightClassSlot = slot
	w.FarmOutDivision = ""
	snap.Wrestlers[wrestlerID] = w
}

// placeReserve wires a wrestler into a team's reserve list on both sides.
func placeReserve(snap *Snapshot, wrestlerID sharedtypes.WrestlerID, teamID sharedtypes.CompetitionTeamID) {
	team := snap.CompetitionTeams[teamID]
	team.Reserves = append(append([]sharedtypes.WrestlerID(nil), team.Reserves...), wrestlerID)
	snap.CompetitionTeams[teamID] = team

	w := snap.Wrestlers[wrestlerID]
	w.Status = sharedtypes.WrestlerReserve
	w.CompetitionTeamID = teamID
	w.CompetitionTeamName = team.Name
	w.AssignedWeightClassSlot = ""
	w.FarmOutDivision = ""
	snap.Wrestlers[wrestlerID] = w
}

// poolIDs flattens a pool to wrestler IDs for assertion convenience.
func poolIDs(pool []Wrestler) []string {
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		out = append(out, string(w.ID))
	}
	return out
}
