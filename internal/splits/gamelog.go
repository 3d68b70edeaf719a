package splits

import "github.com/pable/go-mlb-splits/internal/model"

// GameLog folds the PA sequence into one stat line per game, preserving
// chronological order. Unclassified PAs are skipped the same way the
// bucket aggregation skips them.
func GameLog(an *model.Analysis) []model.GameLine {
	if an == nil {
		return nil
	}

	var (
		lines []model.GameLine
		acc   *accum
	)
	for i := range an.PAs {
		pa := &an.PAs[i]
		if pa.Unclassified {
			continue
		}
		if len(lines) == 0 || lines[len(lines)-1].GamePK != pa.GamePK {
			lines = append(lines, model.GameLine{
				GamePK:   pa.GamePK,
				GameDate: pa.GameDate,
				Venue:    pa.Venue,
				Home:     pa.Home,
				Opponent: pa.Opponent,
			})
			acc = newAccum()
		}
		acc.add(pa)
		lines[len(lines)-1].Stats = acc.stats
	}
	return lines
}
