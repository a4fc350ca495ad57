package rosterdomain

import (
	"sort"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Aggregate statistics are pure read-only functions over a snapshot; they
// are recomputed on demand and never cached or mutated.

// ForfeitsByClass counts, per weight class, whether the team's slot is
// unfilled (1) or filled (0 forfeits for that class).
func ForfeitsByClass(team CompetitionTeam, classes []WeightClass) map[string]int {
	out := make(map[string]int, len(classes))
	for _, wc := range classes {
		if _, filled := team.Roster.Occupant(wc.Name); filled {
			out[wc.Name] = 0
		} else {
			out[wc.Name] = 1
		}
	}
	return out
}

// ForfeitCount is the team-level forfeit total across the catalog.
func ForfeitCount(team CompetitionTeam, classes []WeightClass) int {
	count := 0
	for _, wc := range classes {
		if _, filled := team.Roster.Occupant(wc.Name); !filled {
			count++
		}
	}
	return count
}

// TeamForfeits pairs a team with its forfeit total.
type TeamForfeits struct {
	TeamID   sharedtypes.CompetitionTeamID
	TeamName string
	Forfeits int
}

// ForfeitsByTeam lists forfeit totals for every team of the division,
// sorted by team name.
func ForfeitsByTeam(snap Snapshot, division sharedtypes.Division) []TeamForfeits {
	classes := snap.ClassesFor(division)
	var out []TeamForfeits
	for _, team := range snap.CompetitionTeams {
		if team.Division != division {
			continue
		}
		out = append(out, TeamForfeits{
			TeamID:   team.ID,
			TeamName: team.Name,
			Forfeits: ForfeitCount(team, classes),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })
	return out
}

// DivisionForfeitsByClass counts, per weight class, how many of the
// division's teams forfeit that class.
func DivisionForfeitsByClass(snap Snapshot, division sharedtypes.Division) map[string]int {
	classes := snap.ClassesFor(division)
	out := make(map[string]int, len(classes))
	for _, wc := range classes {
		out[wc.Name] = 0
	}
	for _, team := range snap.CompetitionTeams {
		if team.Division != division {
			continue
		}
		for _, wc := range classes {
			if _, filled := team.Roster.Occupant(wc.Name); !filled {
				out[wc.Name]++
			}
		}
	}
	return out
}

// FarmOutPoolByClass counts FarmOutAvailable wrestlers of the division
// grouped by calculated weight class.
func FarmOutPoolByClass(snap Snapshot, division sharedtypes.Division) map[string]int {
	out := make(map[string]int)
	for _, w := range snap.Wrestlers {
		if w.Status == sharedtypes.WrestlerFarmOutAvailable && w.FarmOutDivision == division {
			out[w.CalculatedWeightClass]++
		}
	}
	return out
}

// Percent is completed/total as a percentage, 0 when total is 0.
func Percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Report is the aggregate snapshot summary consumed by dashboards and
// report exports.
type Report struct {
	TotalWrestlers     int
	HomeTeamCount      int
	CompTeamCountDivI  int
	CompTeamCountDivII int
	FemaleCount        int
	MiddleSchoolCount  int

	WeighInPercent         float64
	TeamWeighInPercent     float64
	TeamRosterPercent      float64
	TeamsPendingWeighIn    []string
	TeamsPendingRoster     []string
	ForfeitsByClassDivI    map[string]int
	ForfeitsByClassDivII   map[string]int
	ForfeitsByTeamDivI     []TeamForfeits
	ForfeitsByTeamDivII    []TeamForfeits
	FarmOutsByClassDivI    map[string]int
	FarmOutsByClassDivII   map[string]int
}

// ComputeReport derives the full aggregate report from a snapshot.
func ComputeReport(snap Snapshot) Report {
	r := Report{
		TotalWrestlers:       len(snap.Wrestlers),
		HomeTeamCount:        len(snap.HomeTeams),
		ForfeitsByClassDivI:  DivisionForfeitsByClass(snap, sharedtypes.DivisionI),
		ForfeitsByClassDivII: DivisionForfeitsByClass(snap, sharedtypes.DivisionII),
		ForfeitsByTeamDivI:   ForfeitsByTeam(snap, sharedtypes.DivisionI),
		ForfeitsByTeamDivII:  ForfeitsByTeam(snap, sharedtypes.DivisionII),
		FarmOutsByClassDivI:  FarmOutPoolByClass(snap, sharedtypes.DivisionI),
		FarmOutsByClassDivII: FarmOutPoolByClass(snap, sharedtypes.DivisionII),
	}

	weighedIn := 0
	for _, w := range snap.Wrestlers {
		if w.WeighedIn() {
			weighedIn++
		}
		if w.IsFemale {
			r.FemaleCount++
		}
		if w.IsMiddleSchool {
			r.MiddleSchoolCount++
		}
	}
	r.WeighInPercent = Percent(weighedIn, len(snap.Wrestlers))

	for _, t := range snap.CompetitionTeams {
		switch t.Division {
		case sharedtypes.DivisionI:
			r.CompTeamCountDivI++
		case sharedtypes.DivisionII:
			r.CompTeamCountDivII++
		}
	}

	weighInDone, rosterDone := 0, 0
	for _, t := range snap.HomeTeams {
		if t.WeighInComplete {
			weighInDone++
		} else {
			r.TeamsPendingWeighIn = append(r.TeamsPendingWeighIn, t.Name)
		}
		if t.RosterComplete {
			rosterDone++
		} else {
			r.TeamsPendingRoster = append(r.TeamsPendingRoster, t.Name)
		}
	}
	sort.Strings(r.TeamsPendingWeighIn)
	sort.Strings(r.TeamsPendingRoster)
	r.TeamWeighInPercent = Percent(weighInDone, len(snap.HomeTeams))
	r.TeamRosterPercent = Percent(rosterDone, len(snap.HomeTeams))
	return r
}
