package splits

import (
	"math"
	"testing"

	"github.com/pable/go-mlb-splits/internal/model"
)

const (
	game1 int64 = 717465
	game2 int64 = 717502

	batterID int64 = 660271
	pitcherR int64 = 657277
	pitcherL int64 = 477132
)

// pa builds a classified plate appearance with neutral context; tests
// mutate what matters.
func pa(game int64, atBat int, outcome model.Outcome) model.PlateAppearance {
	return model.PlateAppearance{
		GamePK:       game,
		GameDate:     "2025-06-01",
		AtBat:        atBat,
		Inning:       1,
		HalfInning:   "Top",
		Outcome:      outcome,
		RawEvent:     string(outcome),
		FinalBalls:   1,
		FinalStrikes: 1,
		Pitcher:      pitcherR,
		PitcherName:  "Webb, Logan",
		PThrows:      "R",
		Venue:        "SF",
		Opponent:     "SF",
	}
}

func analysis(pas ...model.PlateAppearance) *model.Analysis {
	return &model.Analysis{Batter: batterID, PAs: pas}
}

func TestClutchBucket_PriorityOrder(t *testing.T) {
	both := pa(game1, 1, model.OutcomeSingle)
	both.Outs = 2
	both.On2B = true
	both.LateAndClose = true
	if got := ClutchBucket(&both); got != Clutch2OutRISP {
		t.Errorf("2-out-RISP and late-close: got %q, want %q", got, Clutch2OutRISP)
	}

	cases := []struct {
		name string
		mut  func(*model.PlateAppearance)
		want string
	}{
		{"late-close", func(p *model.PlateAppearance) { p.LateAndClose = true }, ClutchLateClose},
		{"ahead small", func(p *model.PlateAppearance) { p.ScoreDiff = 3 }, ClutchAheadSmall},
		{"behind small", func(p *model.PlateAppearance) { p.ScoreDiff = -4 }, ClutchBehindSmall},
		{"tie", func(p *model.PlateAppearance) {}, ClutchTie},
		{"blowout ahead", func(p *model.PlateAppearance) { p.ScoreDiff = 7 }, ClutchOther},
		{"blowout behind", func(p *model.PlateAppearance) { p.ScoreDiff = -5 }, ClutchOther},
	}
	for _, c := range cases {
		p := pa(game1, 1, model.OutcomeSingle)
		c.mut(&p)
		if got := ClutchBucket(&p); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCountGroupTags_Overlap(t *testing.T) {
	full := pa(game1, 1, model.OutcomeStrikeout)
	full.FinalBalls, full.FinalStrikes = 3, 2
	got := CountGroupTags(&full)
	want := []string{"ahead", "2-strike", "full-count"}
	if len(got) != len(want) {
		t.Fatalf("3-2 tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("3-2 tags = %v, want %v", got, want)
		}
	}

	oh2 := pa(game1, 1, model.OutcomeStrikeout)
	oh2.FinalBalls, oh2.FinalStrikes = 0, 2
	got = CountGroupTags(&oh2)
	if len(got) != 2 || got[0] != "behind" || got[1] != "2-strike" {
		t.Errorf("0-2 tags = %v, want [behind 2-strike]", got)
	}

	even := pa(game1, 1, model.OutcomeSingle)
	if got := CountGroupTags(&even); len(got) != 1 || got[0] != "even" {
		t.Errorf("1-1 tags = %v, want [even]", got)
	}
}

func TestAggregate_StatLine(t *testing.T) {
	gdp := pa(game1, 11, model.OutcomeInPlayOut)
	gdp.GIDP = true
	pas := []model.PlateAppearance{
		pa(game1, 1, model.OutcomeSingle),
		pa(game1, 2, model.OutcomeDouble),
		pa(game1, 3, model.OutcomeTriple),
		pa(game1, 4, model.OutcomeHomeRun),
		pa(game1, 5, model.OutcomeWalk),
		pa(game1, 6, model.OutcomeIntentWalk),
		pa(game1, 7, model.OutcomeHitByPitch),
		pa(game1, 8, model.OutcomeStrikeout),
		pa(game1, 9, model.OutcomeSacFly),
		pa(game1, 10, model.OutcomeSacBunt),
		gdp,
		pa(game1, 12, model.OutcomeFieldError),
		pa(game1, 13, model.OutcomeInPlayOut),
	}
	set, err := Aggregate(analysis(pas...))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	tot := set.Total

	if tot.PA != 13 {
		t.Errorf("PA = %d, want 13", tot.PA)
	}
	if got := tot.AB(); got != 8 {
		t.Errorf("AB = %d, want 8", got)
	}
	if got := tot.Hits(); got != 4 {
		t.Errorf("H = %d, want 4", got)
	}
	if got := tot.TotalBases(); got != 10 {
		t.Errorf("TB = %d, want 10", got)
	}
	if tot.GIDP != 1 {
		t.Errorf("GIDP = %d, want 1", tot.GIDP)
	}

	if avg := tot.AVG(); !avg.Valid || math.Abs(avg.Value-0.5) > 1e-9 {
		t.Errorf("AVG = %+v, want .500", avg)
	}
	obp := tot.OBP()
	if !obp.Valid || math.Abs(obp.Value-7.0/12.0) > 1e-9 {
		t.Errorf("OBP = %+v, want 7/12", obp)
	}
	slg := tot.SLG()
	if !slg.Valid || math.Abs(slg.Value-1.25) > 1e-9 {
		t.Errorf("SLG = %+v, want 1.250", slg)
	}
	ops := tot.OPS()
	if !ops.Valid || math.Abs(ops.Value-(obp.Value+slg.Value)) > 1e-9 {
		t.Errorf("OPS = %+v, want OBP+SLG", ops)
	}
	babip := tot.BABIP()
	if !babip.Valid || math.Abs(babip.Value-3.0/7.0) > 1e-9 {
		t.Errorf("BABIP = %+v, want 3/7", babip)
	}
}

func TestAggregate_PartitionsReconcile(t *testing.T) {
	late := pa(game1, 2, model.OutcomeWalk)
	late.LateAndClose = true
	late.Inning = 8
	lefty := pa(game1, 3, model.OutcomeStrikeout)
	lefty.Pitcher = pitcherL
	lefty.PThrows = "L"
	road := pa(game2, 1, model.OutcomeDouble)
	road.GameDate = "2025-07-04"
	road.Venue = "SEA"
	road.Opponent = "SEA"
	skip := pa(game2, 2, model.OutcomeUnclassified)
	skip.Unclassified = true
	home := pa(game2, 3, model.OutcomeHomeRun)
	home.HalfInning = "Bot"
	home.Home = true
	home.FinalBalls, home.FinalStrikes = 3, 2

	set, err := Aggregate(analysis(pa(game1, 1, model.OutcomeSingle), late, lefty, road, skip, home))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if set.Total.PA != 5 {
		t.Fatalf("total PA = %d, want 5 classified", set.Total.PA)
	}
	if set.Unclassified != 1 {
		t.Errorf("unclassified = %d, want 1", set.Unclassified)
	}

	partitions := []string{
		DimClutch, DimCount, DimPlatoon, DimBallpark,
		DimHomeAway, DimInning, DimMonth, DimFirstPitch,
	}
	for _, dim := range partitions {
		sum := 0
		for _, line := range set.Dims[dim] {
			sum += line.Stats.PA
		}
		if sum != set.Total.PA {
			t.Errorf("%s buckets sum to %d PAs, want %d", dim, sum, set.Total.PA)
		}
	}

	// The ahead/even/behind trichotomy partitions on its own.
	tri := map[string]bool{"ahead": true, "even": true, "behind": true}
	sum := 0
	for _, line := range set.Dims[DimCountGroup] {
		if tri[line.Bucket] {
			sum += line.Stats.PA
		}
	}
	if sum != set.Total.PA {
		t.Errorf("count trichotomy sums to %d PAs, want %d", sum, set.Total.PA)
	}
}

func TestAggregate_EmptyBucketReportable(t *testing.T) {
	set, err := Aggregate(analysis(pa(game1, 1, model.OutcomeSingle)))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	var lhp *model.BucketLine
	for i := range set.Dims[DimPlatoon] {
		if set.Dims[DimPlatoon][i].Bucket == "vs-LHP" {
			lhp = &set.Dims[DimPlatoon][i]
		}
	}
	if lhp == nil {
		t.Fatal("vs-LHP bucket missing from an all-RHP sample")
	}
	if lhp.Stats.PA != 0 {
		t.Errorf("vs-LHP PA = %d, want 0", lhp.Stats.PA)
	}
	if lhp.Stats.AVG().Valid {
		t.Error("empty bucket AVG should be invalid, not .000")
	}
}

func TestAggregate_GamesCountUnique(t *testing.T) {
	g2 := pa(game2, 1, model.OutcomeSingle)
	g2.GameDate = "2025-06-02"
	set, err := Aggregate(analysis(
		pa(game1, 1, model.OutcomeSingle),
		pa(game1, 2, model.OutcomeWalk),
		g2,
	))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if set.Total.Games != 2 {
		t.Errorf("games = %d, want 2", set.Total.Games)
	}
}

func TestAggregate_XWOBAMean(t *testing.T) {
	withX := pa(game1, 1, model.OutcomeHomeRun)
	withX.WOBADenom = 1
	withX.HasXWOBA = true
	withX.XWOBA = 0.5
	withX.WOBAValue = 2.0
	fallback := pa(game1, 2, model.OutcomeWalk)
	fallback.WOBADenom = 1
	fallback.WOBAValue = 0.7
	noDenom := pa(game1, 3, model.OutcomeSacBunt)

	set, err := Aggregate(analysis(withX, fallback, noDenom))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	x := set.Total.XWOBA()
	if !x.Valid || math.Abs(x.Value-0.6) > 1e-9 {
		t.Errorf("xwOBA = %+v, want .600 over two qualifying PAs", x)
	}
}

func TestAggregate_BucketDisplayOrder(t *testing.T) {
	sep := pa(game1, 1, model.OutcomeSingle)
	sep.GameDate = "2025-09-12"
	apr := pa(game2, 1, model.OutcomeDouble)
	apr.GameDate = "2025-04-03"
	set, err := Aggregate(analysis(sep, apr))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	clutch := set.Dims[DimClutch]
	if len(clutch) != 6 || clutch[0].Bucket != Clutch2OutRISP || clutch[5].Bucket != ClutchOther {
		t.Errorf("clutch order wrong: %+v", bucketNames(clutch))
	}
	if counts := set.Dims[DimCount]; len(counts) != 12 || counts[0].Bucket != "0-0" || counts[11].Bucket != "3-2" {
		t.Errorf("count order wrong: %v", bucketNames(counts))
	}
	months := bucketNames(set.Dims[DimMonth])
	if len(months) != 2 || months[0] != "April" || months[1] != "September" {
		t.Errorf("month order = %v, want [April September]", months)
	}
}

func bucketNames(lines []model.BucketLine) []string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Bucket
	}
	return names
}

func TestAggregate_NilAnalysis(t *testing.T) {
	if _, err := Aggregate(nil); err == nil {
		t.Error("nil analysis should error")
	}
}
