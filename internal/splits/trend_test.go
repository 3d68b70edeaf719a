package splits

import (
	"math"
	"testing"

	"github.com/pable/go-mlb-splits/internal/model"
)

func qualifying(atBat int, value float64) model.PlateAppearance {
	p := pa(game1, atBat, model.OutcomeSingle)
	p.WOBADenom = 1
	p.WOBAValue = value
	return p
}

func TestTrend_WindowedMean(t *testing.T) {
	an := analysis(
		qualifying(1, 0.1),
		qualifying(2, 0.2),
		qualifying(3, 0.3),
		qualifying(4, 0.4),
		qualifying(5, 0.5),
	)
	pts := Trend(an, 3, 2)
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4 (min 2 of 5 qualifying)", len(pts))
	}
	want := []float64{
		(0.1 + 0.2) / 2,
		(0.1 + 0.2 + 0.3) / 3,
		(0.2 + 0.3 + 0.4) / 3,
		(0.3 + 0.4 + 0.5) / 3,
	}
	for i, w := range want {
		if math.Abs(pts[i].Rolling-w) > 1e-9 {
			t.Errorf("point %d rolling = %.6f, want %.6f", i, pts[i].Rolling, w)
		}
	}
	if pts[0].Index != 2 || pts[3].Index != 5 {
		t.Errorf("indexes = %d..%d, want 2..5", pts[0].Index, pts[3].Index)
	}
}

func TestTrend_PrefersExpectedValue(t *testing.T) {
	p := qualifying(1, 0.9)
	p.HasXWOBA = true
	p.XWOBA = 0.3
	pts := Trend(analysis(p), 100, 1)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	if math.Abs(pts[0].Value-0.3) > 1e-9 {
		t.Errorf("value = %.3f, want the expected wOBA 0.300", pts[0].Value)
	}
}

func TestTrend_SkipsNonQualifying(t *testing.T) {
	noDenom := pa(game1, 2, model.OutcomeSacBunt) // woba_denom 0
	an := analysis(qualifying(1, 0.4), noDenom, qualifying(3, 0.6))
	pts := Trend(an, 100, 2)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	if math.Abs(pts[0].Rolling-0.5) > 1e-9 {
		t.Errorf("rolling = %.3f, want .500", pts[0].Rolling)
	}
}

func TestTrend_BelowMinimum(t *testing.T) {
	if pts := Trend(analysis(qualifying(1, 0.4)), 100, 20); pts != nil {
		t.Errorf("got %d points below the minimum, want none", len(pts))
	}
}
