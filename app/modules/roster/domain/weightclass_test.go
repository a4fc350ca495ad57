package rosterdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   string
	}{
		{name: "zero weight is unweighed", weight: 0, want: UnweighedClass},
		{name: "negative weight is unweighed", weight: -5, want: UnweighedClass},
		{name: "lightest class floor", weight: 0.5, want: "106"},
		{name: "exact boundary stays in class", weight: 106.0, want: "106"},
		{name: "fraction above boundary floors back down", weight: 106.9, want: "106"},
		{name: "just past boundary moves up", weight: 107.0, want: "113"},
		{name: "middle of table", weight: 150.0, want: "150"},
		{name: "heaviest named class", weight: 285.0, want: "285"},
		{name: "fraction above heaviest floors back down", weight: 285.4, want: "285"},
		{name: "beyond heaviest is catch-all", weight: 286.0, want: "285+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.weight, StandardWeightClasses))
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	// Heavier wrestlers never classify into a lighter class.
	prev := -1
	for weight := 1.0; weight <= 300.0; weight++ {
		idx := ClassIndex(weight, StandardWeightClasses)
		if idx < 0 {
			idx = len(StandardWeightClasses)
		}
		require.GreaterOrEqual(t, idx, prev, "weight %v classified below weight %v", weight, weight-1)
		prev = idx
	}
}

func TestClassesForMergesCustomClasses(t *testing.T) {
	session := Session{
		CustomWeightsDivI: []WeightClass{
			{Name: "98", MaxWeight: 98.0},
			{Name: "250", MaxWeight: 250.0},
		},
	}

	classes := ClassesFor(sharedtypes.DivisionI, session)
	require.Len(t, classes, len(StandardWeightClasses)+2)
	assert.Equal(t, "98", classes[0].Name)
	assert.Equal(t, "285", classes[len(classes)-1].Name)

	// Catalog is ascending by max weight.
	for i := 1; i < len(classes); i++ {
		assert.LessOrEqual(t, classes[i-1].MaxWeight, classes[i].MaxWeight)
	}

	// The other division is untouched by Division I customs.
	assert.Len(t, ClassesFor(sharedtypes.DivisionII, session), len(StandardWeightClasses))
}

func TestClassifyWithCustomCatalog(t *testing.T) {
	classes := []WeightClass{
		{Name: "106", MaxWeight: 106.0},
		{Name: "113", MaxWeight: 113.0},
		{Name: "120", MaxWeight: 120.0},
	}

	assert.Equal(t, "113", Classify(108.0, classes))
	assert.Equal(t, "120+", Classify(121.0, classes))
	assert.Equal(t, 1, ClassIndex(108.0, classes))
	assert.Equal(t, -1, ClassIndex(121.0, classes))
}

func TestSlotIndex(t *testing.T) {
	assert.Equal(t, 0, SlotIndex("106", StandardWeightClasses))
	assert.Equal(t, 13, SlotIndex("285", StandardWeightClasses))
	assert.Equal(t, -1, SlotIndex("285+", StandardWeightClasses))
	assert.Equal(t, -1, SlotIndex("", StandardWeightClasses))
}

func TestCatchAllClass(t *testing.T) {
	assert.Equal(t, "285+", CatchAllClass(StandardWeightClasses))
	assert.Equal(t, UnweighedClass, CatchAllClass(nil))
}
