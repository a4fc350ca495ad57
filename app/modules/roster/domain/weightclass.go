package rosterdomain

import (
	"math"
	"sort"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// UnweighedClass is the class label for a wrestler with no recorded weight.
const UnweighedClass = "N/A"

// StandardWeightClasses is the NFHS high-school weight table. Session custom
// classes are merged on top of it per division.
var StandardWeightClasses = []WeightClass{
	{Name: "106", MaxWeight: 106.0},
	{Name: "113", MaxWeight: 113.0},
	{Name: "120", MaxWeight: 120.0},
	{Name: "126", MaxWeight: 126.0},
	{Name: "132", MaxWeight: 132.0},
	{Name: "138", MaxWeight: 138.0},
	{Name: "144", MaxWeight: 144.0},
	{Name: "150", MaxWeight: 150.0},
	{Name: "157", MaxWeight: 157.0},
	{Name: "165", MaxWeight: 165.0},
	{Name: "175", MaxWeight: 175.0},
	{Name: "190", MaxWeight: 190.0},
	{Name: "215", MaxWeight: 215.0},
	{Name: "285", MaxWeight: 285.0},
}

// ClassesFor returns the ordered weight-class catalog for a division: the
// standard table plus the session's custom classes, ascending by max weight.
func ClassesFor(division sharedtypes.Division, session Session) []WeightClass {
	custom := session.CustomWeights(division)
	classes := make([]WeightClass, 0, len(StandardWeightClasses)+len(custom))
	classes = append(classes, StandardWeightClasses...)
	classes = append(classes, custom...)
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].MaxWeight < classes[j].MaxWeight
	})
	return classes
}

// CatchAllClass is the open-ended label for any weight exceeding the
// heaviest class's max.
func CatchAllClass(classes []WeightClass) string {
	if len(classes) == 0 {
		return UnweighedClass
	}
	return classes[len(classes)-1].Name + "+"
}

// Classify maps a body weight onto the ordered class list. Weights at or
// below zero classify as UnweighedClass; weights beyond the heaviest class
// classify as the catch-all label. The fractional part of the weight is
// dropped before comparison, matching how weigh-ins are scored.
func Classify(weight float64, classes []WeightClass) string {
	if weight <= 0 {
		return UnweighedClass
	}
	if i := ClassIndex(weight, classes); i >= 0 {
		return classes[i].Name
	}
	return CatchAllClass(classes)
}

// ClassIndex returns the index of the first class whose max weight is at
// least floor(weight), or -1 when the weight exceeds every class.
func ClassIndex(weight float64, classes []WeightClass) int {
	floored := math.Floor(weight)
	for i, wc := range classes {
		if wc.MaxWeight >= floored {
			return i
		}
	}
	return -1
}

// SlotIndex returns the position of the named slot in the ordered class
// list, or -1 when the slot is not part of the catalog.
func SlotIndex(slot string, classes []WeightClass) int {
	for i, wc := range classes {
		if wc.Name == slot {
			return i
		}
	}
	return -1
}
