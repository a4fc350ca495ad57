package reportsservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// RenderForfeitChart produces a PNG bar chart of a division's forfeits per
// weight class, with the farm-out pool depth overlaid in the bar labels so
// an organizer can see which holes are actually fillable.
func RenderForfeitChart(snap rosterdomain.Snapshot, division sharedtypes.Division) ([]byte, error) {
	classes := snap.ClassesFor(division)
	forfeits := rosterdomain.DivisionForfeitsByClass(snap, division)
	pool := rosterdomain.FarmOutPoolByClass(snap, division)

	bars := make([]chart.Value, 0, len(classes))
	for _, class := range classes {
		label := class.Name
		if n := pool[class.Name]; n > 0 {
			label = fmt.Sprintf("%s (+%d)", class.Name, n)
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(forfeits[class.Name]),
		})
	}

	graph := chart.BarChart{
		Title:    "Division " + string(division) + " forfeits by weight class",
		Width:    1024,
		Height:   420,
		BarWidth: 40,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
	}

	var buffer bytes.Buffer
	if err := graph.Render(chart.PNG, &buffer); err != nil {
		return nil, fmt.Errorf("failed to render forfeit chart: %w", err)
	}
	return buffer.Bytes(), nil
}
