// Package zone bins pitches into the 3×3 strike-zone grid and derives
// swing, contact, and batting-average rates per cell.
package zone

import (
	"github.com/pable/go-mlb-splits/internal/config"
	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/normalize"
)

// atBatEvents are the terminal tags that count as official at-bats for
// the per-cell batting average.
var atBatEvents = map[string]bool{
	"single":                    true,
	"double":                    true,
	"triple":                    true,
	"home_run":                  true,
	"field_out":                 true,
	"force_out":                 true,
	"grounded_into_double_play": true,
	"strikeout":                 true,
	"strikeout_double_play":     true,
	"fielders_choice_out":       true,
	"double_play":               true,
	"triple_play":               true,
	"field_error":               true,
	"fielders_choice":           true,
}

var hitEvents = map[string]bool{
	"single": true, "double": true, "triple": true, "home_run": true,
}

var (
	rowLabels = [3]string{"High", "Mid", "Low"}
	colLabels = [3]string{"Left", "Middle", "Right"} // catcher's view
)

// Build bins every located pitch into one of the nine cells or the
// outside bucket. Pitches with no recorded location are tallied apart and
// excluded from every zone denominator.
func Build(events []model.PitchEvent, grid config.ZoneGrid) *model.ZoneReport {
	r := &model.ZoneReport{}
	for i := range r.Cells {
		for j := range r.Cells[i] {
			r.Cells[i][j].Label = rowLabels[i] + "-" + colLabels[j]
		}
	}
	r.Outside.Label = "Outside"
	if len(events) > 0 {
		r.Batter = events[0].Batter
	}

	for i := range events {
		e := &events[i]
		if !e.HasLocation {
			r.Unlocated++
			continue
		}
		cell := locate(r, e, grid)
		cell.Pitches++
		if normalize.Swung(e.Description) {
			cell.Swings++
			if normalize.Contact(e.Description) {
				cell.Contact++
			}
		}
		if atBatEvents[e.Event] {
			cell.ABs++
			if hitEvents[e.Event] {
				cell.Hits++
			}
		}
	}
	return r
}

// locate picks the cell for a located pitch. Grid rows display top-down
// while the z bins run bottom-up, hence the flip.
func locate(r *model.ZoneReport, e *model.PitchEvent, grid config.ZoneGrid) *model.ZoneCell {
	col := bin(e.PlateX, grid.XEdges)
	zbin := bin(e.PlateZ, grid.ZEdges)
	if col < 0 || zbin < 0 {
		return &r.Outside
	}
	return &r.Cells[2-zbin][col]
}

// bin returns 0..2 for a value inside [edges[0], edges[3]], -1 outside.
func bin(v float64, edges [4]float64) int {
	if v < edges[0] || v > edges[3] {
		return -1
	}
	switch {
	case v <= edges[1]:
		return 0
	case v <= edges[2]:
		return 1
	default:
		return 2
	}
}
