// Package splits classifies plate appearances into situational buckets and
// folds them into per-bucket stat lines.
package splits

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/pable/go-mlb-splits/internal/model"
)

// Dimension identifiers, as used by the CLI and the report layer.
const (
	DimClutch     = "clutch"
	DimCount      = "count"
	DimCountGroup = "count-group"
	DimPlatoon    = "platoon"
	DimBallpark   = "ballpark"
	DimHomeAway   = "home-away"
	DimInning     = "inning"
	DimMonth      = "month"
	DimFirstPitch = "first-pitch"
)

// Clutch bucket labels. One bucket per PA, first matching predicate wins.
const (
	Clutch2OutRISP    = "2-out-RISP"
	ClutchLateClose   = "late-close"
	ClutchAheadSmall  = "margin:+1..+4"
	ClutchBehindSmall = "margin:-1..-4"
	ClutchTie         = "margin:tie"
	ClutchOther       = "other"
)

// Dimensions lists every split dimension in display order.
func Dimensions() []string {
	return []string{
		DimClutch, DimCount, DimCountGroup, DimPlatoon, DimBallpark,
		DimHomeAway, DimInning, DimMonth, DimFirstPitch,
	}
}

var clutchOrder = []string{
	Clutch2OutRISP, ClutchLateClose, ClutchAheadSmall,
	ClutchBehindSmall, ClutchTie, ClutchOther,
}

var countGroupOrder = []string{"ahead", "even", "behind", "2-strike", "full-count"}

// ClutchBucket assigns the clutch bucket, checked in priority order: a PA
// can satisfy both 2-out-RISP and late-close but belongs to the first.
func ClutchBucket(pa *model.PlateAppearance) string {
	switch {
	case pa.Outs == 2 && pa.RISP():
		return Clutch2OutRISP
	case pa.LateAndClose:
		return ClutchLateClose
	case pa.ScoreDiff >= 1 && pa.ScoreDiff <= 4:
		return ClutchAheadSmall
	case pa.ScoreDiff <= -1 && pa.ScoreDiff >= -4:
		return ClutchBehindSmall
	case pa.ScoreDiff == 0:
		return ClutchTie
	default:
		return ClutchOther
	}
}

// CountBucket is the exact final count, "0-0" through "3-2".
func CountBucket(pa *model.PlateAppearance) string {
	return fmt.Sprintf("%d-%d", pa.FinalBalls, pa.FinalStrikes)
}

// CountGroupTags returns the aggregate count tags. The leading tag is the
// ahead/behind/even trichotomy; full-count and 2-strike overlap it, so a
// 3-2 PA carries three tags at once.
func CountGroupTags(pa *model.PlateAppearance) []string {
	var tags []string
	switch {
	case pa.FinalBalls > pa.FinalStrikes:
		tags = append(tags, "ahead")
	case pa.FinalStrikes > pa.FinalBalls:
		tags = append(tags, "behind")
	default:
		tags = append(tags, "even")
	}
	if pa.FinalStrikes == 2 {
		tags = append(tags, "2-strike")
		if pa.FinalBalls == 3 {
			tags = append(tags, "full-count")
		}
	}
	return tags
}

// PlatoonBucket keys on the opposing pitcher's hand.
func PlatoonBucket(pa *model.PlateAppearance) string {
	switch pa.PThrows {
	case "L":
		return "vs-LHP"
	case "R":
		return "vs-RHP"
	default:
		return "unknown-hand"
	}
}

// BallparkBucket keys on the venue code.
func BallparkBucket(pa *model.PlateAppearance) string {
	if pa.Venue == "" {
		return "unknown"
	}
	return pa.Venue
}

// HomeAwayBucket: batting in the bottom half means home.
func HomeAwayBucket(pa *model.PlateAppearance) string {
	if pa.Home {
		return "home"
	}
	return "away"
}

// InningBucket is "1" through "9", with extra innings pooled.
func InningBucket(pa *model.PlateAppearance) string {
	if pa.Inning >= 1 && pa.Inning <= 9 {
		return strconv.Itoa(pa.Inning)
	}
	return "extras"
}

// MonthBucket is the calendar month name of the game date.
func MonthBucket(pa *model.PlateAppearance) string {
	if len(pa.GameDate) < 7 {
		return "unknown"
	}
	m, err := strconv.Atoi(pa.GameDate[5:7])
	if err != nil || m < 1 || m > 12 {
		return "unknown"
	}
	return time.Month(m).String()
}

// FirstPitchBucket: did the batter offer at the first pitch.
func FirstPitchBucket(pa *model.PlateAppearance) string {
	if pa.FirstPitchSwung {
		return "swung"
	}
	return "took"
}

type membership struct{ dim, bucket string }

func memberships(pa *model.PlateAppearance) []membership {
	ms := []membership{
		{DimClutch, ClutchBucket(pa)},
		{DimCount, CountBucket(pa)},
		{DimPlatoon, PlatoonBucket(pa)},
		{DimBallpark, BallparkBucket(pa)},
		{DimHomeAway, HomeAwayBucket(pa)},
		{DimInning, InningBucket(pa)},
		{DimMonth, MonthBucket(pa)},
		{DimFirstPitch, FirstPitchBucket(pa)},
	}
	for _, tag := range CountGroupTags(pa) {
		ms = append(ms, membership{DimCountGroup, tag})
	}
	return ms
}

// accum is one bucket being accumulated: counting stats plus the game set.
type accum struct {
	stats model.BucketStats
	games map[int64]struct{}
}

func newAccum() *accum {
	return &accum{games: make(map[int64]struct{})}
}

func (a *accum) add(pa *model.PlateAppearance) {
	s := &a.stats
	s.PA++
	switch pa.Outcome {
	case model.OutcomeSingle:
		s.Singles++
	case model.OutcomeDouble:
		s.Doubles++
	case model.OutcomeTriple:
		s.Triples++
	case model.OutcomeHomeRun:
		s.HomeRuns++
	case model.OutcomeWalk:
		s.BB++
	case model.OutcomeIntentWalk:
		s.IBB++
	case model.OutcomeHitByPitch:
		s.HBP++
	case model.OutcomeStrikeout:
		s.SO++
	case model.OutcomeSacFly:
		s.SF++
	case model.OutcomeSacBunt:
		s.SH++
	}
	if pa.GIDP {
		s.GIDP++
	}
	s.Runs += pa.Runs
	s.RBI += pa.RBI
	if pa.ScoreIncomplete {
		s.ScoreIncomplete++
	}
	if pa.WOBADenom == 1 {
		v := pa.WOBAValue
		if pa.HasXWOBA {
			v = pa.XWOBA
		}
		s.XWOBASum += v
		s.XWOBACount++
	}
	a.games[pa.GamePK] = struct{}{}
	s.Games = len(a.games)
}

// Aggregate folds every classified PA into the buckets of every dimension
// it belongs to and returns the finalized SplitSet. Unclassified PAs count
// toward the raw total only.
func Aggregate(an *model.Analysis) (*model.SplitSet, error) {
	if an == nil {
		return nil, errors.New("nil analysis")
	}

	// ---- Pass 1: fold PAs into their buckets ----

	total := newAccum()
	dims := make(map[string]map[string]*accum, len(Dimensions()))
	for _, d := range Dimensions() {
		dims[d] = make(map[string]*accum)
	}
	unclassified := 0
	for i := range an.PAs {
		pa := &an.PAs[i]
		if pa.Unclassified {
			unclassified++
			continue
		}
		total.add(pa)
		for _, m := range memberships(pa) {
			a := dims[m.dim][m.bucket]
			if a == nil {
				a = newAccum()
				dims[m.dim][m.bucket] = a
			}
			a.add(pa)
		}
	}

	// ---- Pass 2: order buckets within each dimension ----

	set := &model.SplitSet{
		Batter:       an.Batter,
		Total:        total.stats,
		Dims:         make(map[string][]model.BucketLine, len(dims)),
		Unclassified: unclassified,
	}
	for dim, buckets := range dims {
		set.Dims[dim] = orderedLines(dim, buckets)
	}
	return set, nil
}

// orderedLines lays out a dimension's buckets for display: the nominal
// labels first (zero rows included so empty buckets stay reportable), then
// any fallback labels actually observed.
func orderedLines(dim string, buckets map[string]*accum) []model.BucketLine {
	nominal := nominalOrder(dim)
	seen := make(map[string]bool, len(nominal))
	for _, l := range nominal {
		seen[l] = true
	}

	var extra []string
	for l := range buckets {
		if !seen[l] {
			extra = append(extra, l)
		}
	}
	sortExtra(dim, extra)

	lines := make([]model.BucketLine, 0, len(nominal)+len(extra))
	for _, l := range append(nominal, extra...) {
		bl := model.BucketLine{Bucket: l}
		if a := buckets[l]; a != nil {
			bl.Stats = a.stats
		}
		lines = append(lines, bl)
	}
	return lines
}

// nominalOrder returns the fixed label set for closed dimensions; open
// dimensions (ballpark, month) have none and list observed buckets only.
func nominalOrder(dim string) []string {
	switch dim {
	case DimClutch:
		return clutchOrder
	case DimCount:
		counts := make([]string, 0, 12)
		for b := 0; b <= 3; b++ {
			for s := 0; s <= 2; s++ {
				counts = append(counts, fmt.Sprintf("%d-%d", b, s))
			}
		}
		return counts
	case DimCountGroup:
		return countGroupOrder
	case DimPlatoon:
		return []string{"vs-LHP", "vs-RHP"}
	case DimHomeAway:
		return []string{"home", "away"}
	case DimInning:
		in := make([]string, 0, 9)
		for i := 1; i <= 9; i++ {
			in = append(in, strconv.Itoa(i))
		}
		return in
	case DimFirstPitch:
		return []string{"swung", "took"}
	default:
		return nil
	}
}

func sortExtra(dim string, labels []string) {
	switch dim {
	case DimMonth:
		sort.Slice(labels, func(i, j int) bool {
			return monthIndex(labels[i]) < monthIndex(labels[j])
		})
	default:
		sort.Strings(labels)
	}
}

func monthIndex(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 13 // "unknown" sorts last
}
