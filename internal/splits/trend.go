package splits

import "github.com/pable/go-mlb-splits/internal/model"

// Trend computes the rolling expected-wOBA series over the qualifying PA
// stream. A PA qualifies when its wOBA denominator is 1; it contributes
// the Statcast expected value when present, otherwise the realized one.
// Points appear once minPAs values have accumulated; the mean covers the
// most recent window values.
func Trend(an *model.Analysis, window, minPAs int) []model.TrendPoint {
	if an == nil || window < 1 || minPAs < 1 {
		return nil
	}

	var (
		vals []float64
		sum  float64
		pts  []model.TrendPoint
	)
	for i := range an.PAs {
		pa := &an.PAs[i]
		if pa.WOBADenom != 1 {
			continue
		}
		v := pa.WOBAValue
		if pa.HasXWOBA {
			v = pa.XWOBA
		}
		vals = append(vals, v)
		sum += v
		if len(vals) > window {
			sum -= vals[len(vals)-window-1]
		}
		if len(vals) < minPAs {
			continue
		}
		span := len(vals)
		if span > window {
			span = window
		}
		pts = append(pts, model.TrendPoint{
			Index:    len(vals),
			GameDate: pa.GameDate,
			Value:    v,
			Rolling:  sum / float64(span),
		})
	}
	return pts
}
