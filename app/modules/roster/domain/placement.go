package rosterdomain

import (
	"sort"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// PlacementOption is a competition team with an open slot a farm-out
// wrestler could fill.
type PlacementOption struct {
	TeamID   sharedtypes.CompetitionTeamID
	TeamName string
	Slot     string
	Forfeits int
}

// ListFarmOutPlacements ranks the open starter slots a FarmOutAvailable
// wrestler could take, across the teams of their farm-out division.
// Teams with more forfeits come first, so the neediest teams surface at
// the top. Slots are limited to the wrestler's class and the class one
// step above it; the wrestler's own home team is excluded.
func ListFarmOutPlacements(snap Snapshot, wrestlerID sharedtypes.WrestlerID) ([]PlacementOption, error) {
	w, ok := snap.Wrestler(wrestlerID)
	if !ok {
		return nil, &ValidationError{Field: "wrestlerId", Reason: "wrestler not found"}
	}
	if w.Status != sharedtypes.WrestlerFarmOutAvailable {
		return nil, &IneligibleAssignmentError{WrestlerID: string(wrestlerID), Reason: "wrestler is not in the farm-out pool"}
	}
	if !w.FarmOutDivision.Valid() {
		return nil, &ConsistencyViolation{Reason: "farm-out wrestler has no division"}
	}
	if !w.WeighedIn() {
		return nil, nil
	}

	classes := snap.ClassesFor(w.FarmOutDivision)
	base := ClassIndex(w.ActualWeight, classes)
	if base < 0 {
		// Catch-all wrestlers exceed every named slot.
		return nil, nil
	}

	var out []PlacementOption
	for _, team := range snap.CompetitionTeams {
		if team.Division != w.FarmOutDivision || team.AssociatedHomeTeamID == w.HomeTeamID {
			continue
		}
		forfeits := ForfeitCount(team, classes)
		for _, idx := range []int{base, base + 1} {
			if idx >= len(classes) {
				continue
			}
			slot := classes[idx].Name
			if _, filled := team.Roster.Occupant(slot); filled {
				continue
			}
			out = append(out, PlacementOption{
				TeamID:   team.ID,
				TeamName: team.Name,
				Slot:     slot,
				Forfeits: forfeits,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Forfeits != out[j].Forfeits {
			return out[i].Forfeits > out[j].Forfeits
		}
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return SlotIndex(out[i].Slot, classes) < SlotIndex(out[j].Slot, classes)
	})
	return out, nil
}
