package reportsservice

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

const forfeitLabel = "FORFEIT"

// BuildRosterWorkbook renders one sheet per competition team of the
// division: a row per weight class slot showing the starter (or a forfeit),
// farm-out annotations for borrowed wrestlers, and the reserves grouped by
// calculated class underneath.
func BuildRosterWorkbook(snap rosterdomain.Snapshot, division sharedtypes.Division) (*excelize.File, error) {
	f := excelize.NewFile()
	classes := snap.ClassesFor(division)

	teams := make([]rosterdomain.CompetitionTeam, 0, len(snap.CompetitionTeams))
	for _, team := range snap.CompetitionTeams {
		if team.Division == division {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	for i, team := range teams {
		sheet := sheetName(team.Name)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
			}
		}

		if err := f.SetSheetRow(sheet, "A1", &[]any{"Weight Class", "Wrestler", "Notes"}); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}

		row := 2
		forfeits := 0
		for _, class := range classes {
			name := forfeitLabel
			note := ""
			if id, ok := team.Roster[class.Name]; ok && id != "" {
				if w, found := snap.Wrestler(id); found {
					name = w.Name
					if w.HomeTeamID != team.AssociatedHomeTeamID {
						note = "farm-out from " + w.HomeTeamName
					}
				}
			} else {
				forfeits++
			}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(sheet, cell, &[]any{class.Name, name, note}); err != nil {
				return nil, fmt.Errorf("failed to write roster row: %w", err)
			}
			row++
		}

		row++
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &[]any{"Forfeits", forfeits}); err != nil {
			return nil, fmt.Errorf("failed to write forfeit total: %w", err)
		}
		row += 2

		reserves := reservesByClass(snap, team)
		if len(reserves) > 0 {
			cell = fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(sheet, cell, &[]any{"Reserves"}); err != nil {
				return nil, fmt.Errorf("failed to write reserves header: %w", err)
			}
			row++
			for _, group := range reserves {
				for _, name := range group.Names {
					cell = fmt.Sprintf("A%d", row)
					if err := f.SetSheetRow(sheet, cell, &[]any{group.Class, name}); err != nil {
						return nil, fmt.Errorf("failed to write reserve row: %w", err)
					}
					row++
				}
			}
		}
	}

	return f, nil
}

// BuildPlacementWorkbook renders one sheet per home team listing every
// wrestler with their weigh-in state and where they ended up.
func BuildPlacementWorkbook(snap rosterdomain.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	teams := make([]rosterdomain.HomeTeam, 0, len(snap.HomeTeams))
	for _, team := range snap.HomeTeams {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	for i, team := range teams {
		sheet := sheetName(team.Name)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
			}
		}

		if err := f.SetSheetRow(sheet, "A1", &[]any{"Wrestler", "Weight", "Class", "Status", "Placement"}); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}

		wrestlers := make([]rosterdomain.Wrestler, 0)
		for _, w := range snap.Wrestlers {
			if w.HomeTeamID == team.ID {
				wrestlers = append(wrestlers, w)
			}
		}
		sort.Slice(wrestlers, func(i, j int) bool { return wrestlers[i].Name < wrestlers[j].Name })

		for row, w := range wrestlers {
			weight := ""
			if w.WeighedIn() {
				weight = fmt.Sprintf("%.1f", w.ActualWeight)
			}
			cell := fmt.Sprintf("A%d", row+2)
			if err := f.SetSheetRow(sheet, cell, &[]any{
				w.Name, weight, w.CalculatedWeightClass, string(w.Status), placementLabel(w),
			}); err != nil {
				return nil, fmt.Errorf("failed to write wrestler row: %w", err)
			}
		}
	}

	return f, nil
}

func placementLabel(w rosterdomain.Wrestler) string {
	switch w.Status {
	case sharedtypes.WrestlerStarter:
		return fmt.Sprintf("%s @ %s", w.CompetitionTeamName, w.AssignedWeightClassSlot)
	case sharedtypes.WrestlerReserve:
		return w.CompetitionTeamName + " (reserve)"
	case sharedtypes.WrestlerFarmOutAvailable:
		return "farm-out pool, Division " + string(w.FarmOutDivision)
	default:
		return ""
	}
}

type reserveGroup struct {
	Class string
	Names []string
}

// reservesByClass groups a team's reserves by calculated weight class,
// ordered by the division's class table.
func reservesByClass(snap rosterdomain.Snapshot, team rosterdomain.CompetitionTeam) []reserveGroup {
	byClass := map[string][]string{}
	for _, id := range team.Reserves {
		w, ok := snap.Wrestler(id)
		if !ok {
			continue
		}
		byClass[w.CalculatedWeightClass] = append(byClass[w.CalculatedWeightClass], w.Name)
	}
	if len(byClass) == 0 {
		return nil
	}

	groups := make([]reserveGroup, 0, len(byClass))
	for _, class := range snap.ClassesFor(team.Division) {
		names, ok := byClass[class.Name]
		if !ok {
			continue
		}
		sort.Strings(names)
		groups = append(groups, reserveGroup{Class: class.Name, Names: names})
		delete(byClass, class.Name)
	}
	// Anything left (unweighed reserves) trails the table.
	leftover := make([]string, 0, len(byClass))
	for class := range byClass {
		leftover = append(leftover, class)
	}
	sort.Strings(leftover)
	for _, class := range leftover {
		names := byClass[class]
		sort.Strings(names)
		groups = append(groups, reserveGroup{Class: class, Names: names})
	}
	return groups
}

// sheetName trims a team name to excelize's 31-character sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
