package model

// ---- Raw pitch events decoded from Statcast search CSV ----

// PitchEvent is one pitch as Statcast reports it. Balls/Strikes and the
// score fields are snapshots taken BEFORE the pitch; Event is set only on
// the final pitch of a plate appearance.
type PitchEvent struct {
	GamePK   int64
	GameDate string // YYYY-MM-DD
	AtBat    int    // at_bat_number, unique within a game
	PitchNum int    // pitch_number, 1-based within an at-bat

	Batter      int64
	Pitcher     int64
	PitcherName string // player_name column is the pitcher in batter searches
	Stand       string // batter side: "L" or "R"
	PThrows     string // pitcher hand: "L" or "R"

	Inning     int
	HalfInning string // "Top" or "Bot"
	Outs       int
	Balls      int
	Strikes    int

	BatScore     int
	FldScore     int
	PostBatScore int // -1 when the column is missing

	On1B, On2B, On3B bool

	Description string // per-pitch tag: ball, called_strike, swinging_strike, foul, hit_into_play, ...
	Event       string // terminal outcome tag: single, walk, strikeout, field_out, ...
	Des         string // play narration, e.g. "... scores on a wild pitch."

	PitchType    string  // FF, SL, CH, ...
	PitchName    string  // 4-Seam Fastball, Slider, ...
	ReleaseSpeed float64 // mph, 0 when missing

	PlateX, PlateZ float64 // feet from center of plate / above ground
	HasLocation    bool

	HomeTeam string // Statcast identifies the park by home team code
	AwayTeam string

	XWOBA     float64 // estimated_woba_using_speedangle
	HasXWOBA  bool
	WOBAValue float64
	WOBADenom int
}

// Venue returns the park code for the game this pitch was thrown in.
func (e *PitchEvent) Venue() string { return e.HomeTeam }

// ---- Reconstructed plate appearances ----

// Outcome classifies how a plate appearance ended.
type Outcome string

const (
	OutcomeSingle       Outcome = "single"
	OutcomeDouble       Outcome = "double"
	OutcomeTriple       Outcome = "triple"
	OutcomeHomeRun      Outcome = "home_run"
	OutcomeWalk         Outcome = "walk"
	OutcomeIntentWalk   Outcome = "intent_walk"
	OutcomeHitByPitch   Outcome = "hit_by_pitch"
	OutcomeStrikeout    Outcome = "strikeout"
	OutcomeSacFly       Outcome = "sac_fly"
	OutcomeSacBunt      Outcome = "sac_bunt"
	OutcomeFieldError   Outcome = "field_error"
	OutcomeInPlayOut    Outcome = "in_play_out"
	OutcomeUnclassified Outcome = "unclassified"
)

// IsHit reports whether the outcome counts as a base hit.
func (o Outcome) IsHit() bool {
	switch o {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun:
		return true
	}
	return false
}

// PlateAppearance is one completed at-bat reconstructed from a contiguous
// run of PitchEvents sharing the same (GamePK, AtBat) key.
type PlateAppearance struct {
	GamePK     int64
	GameDate   string
	AtBat      int
	Inning     int
	HalfInning string

	Outcome  Outcome
	RawEvent string // the Statcast events tag that produced Outcome
	GIDP     bool   // grounded/lined into a non-sacrifice double play

	// Count on the final pitch: the count the outcome arrived in.
	FinalBalls   int
	FinalStrikes int

	// Situation at the start of the PA.
	Outs             int
	ScoreDiff        int // BatScore − FldScore before the first pitch
	On1B, On2B, On3B bool
	LateAndClose     bool // Inning ≥ threshold and |ScoreDiff| ≤ margin

	Pitcher     int64
	PitcherName string
	PThrows     string
	Venue       string
	Home        bool   // batting in the bottom half
	Opponent    string // the fielding team's code

	FirstPitchSwung bool
	Pitches         int

	// Estimated from score snapshots; see the run estimator.
	Runs            int
	RBI             int
	ScoreIncomplete bool

	XWOBA     float64
	HasXWOBA  bool
	WOBAValue float64
	WOBADenom int

	Unclassified bool // terminal event tag empty or unknown
}

// RISP reports whether a runner was in scoring position when the PA began.
func (pa *PlateAppearance) RISP() bool { return pa.On2B || pa.On3B }

// Analysis bundles the reconstructed plate appearances for one batter and
// date range together with the pitch stream they were built from.
type Analysis struct {
	Batter    int64
	PAs       []PlateAppearance
	Events    []PitchEvent
	Malformed int // events dropped during reconstruction
}

// ---- Aggregated splits ----

// Rate is a derived rate stat. Valid is false when the denominator was
// zero, which the report layer renders as "—" instead of .000.
type Rate struct {
	Value float64
	Valid bool
}

// BucketStats holds the counting totals for one situational bucket.
// Accumulated in one pass, then read through the rate methods; Runs and
// RBI are estimates derived from score snapshots.
type BucketStats struct {
	PA    int
	Games int

	Singles  int
	Doubles  int
	Triples  int
	HomeRuns int

	BB   int
	IBB  int
	SO   int
	HBP  int
	SF   int
	SH   int
	GIDP int

	Runs int
	RBI  int

	XWOBASum   float64
	XWOBACount int

	ScoreIncomplete int // PAs whose run estimate was clamped
}

// Hits returns total base hits.
func (b *BucketStats) Hits() int {
	return b.Singles + b.Doubles + b.Triples + b.HomeRuns
}

// TotalBases returns 1B + 2·2B + 3·3B + 4·HR.
func (b *BucketStats) TotalBases() int {
	return b.Singles + 2*b.Doubles + 3*b.Triples + 4*b.HomeRuns
}

// AB returns official at-bats: PA minus walks, HBP, and sacrifices.
func (b *BucketStats) AB() int {
	return b.PA - b.BB - b.IBB - b.HBP - b.SF - b.SH
}

func (b *BucketStats) AVG() Rate {
	ab := b.AB()
	if ab == 0 {
		return Rate{}
	}
	return Rate{Value: float64(b.Hits()) / float64(ab), Valid: true}
}

func (b *BucketStats) OBP() Rate {
	den := b.AB() + b.BB + b.IBB + b.HBP + b.SF
	if den == 0 {
		return Rate{}
	}
	num := b.Hits() + b.BB + b.IBB + b.HBP
	return Rate{Value: float64(num) / float64(den), Valid: true}
}

func (b *BucketStats) SLG() Rate {
	ab := b.AB()
	if ab == 0 {
		return Rate{}
	}
	return Rate{Value: float64(b.TotalBases()) / float64(ab), Valid: true}
}

func (b *BucketStats) OPS() Rate {
	obp, slg := b.OBP(), b.SLG()
	if !obp.Valid || !slg.Valid {
		return Rate{}
	}
	return Rate{Value: obp.Value + slg.Value, Valid: true}
}

// BABIP is (H − HR) / (AB − SO − HR + SF).
func (b *BucketStats) BABIP() Rate {
	den := b.AB() - b.SO - b.HomeRuns + b.SF
	if den == 0 {
		return Rate{}
	}
	return Rate{Value: float64(b.Hits()-b.HomeRuns) / float64(den), Valid: true}
}

// XWOBA is the mean expected wOBA over PAs that carried a valid value.
func (b *BucketStats) XWOBA() Rate {
	if b.XWOBACount == 0 {
		return Rate{}
	}
	return Rate{Value: b.XWOBASum / float64(b.XWOBACount), Valid: true}
}

// BucketLine pairs a bucket label with its finalized stats, in the display
// order the classifier defines for the dimension.
type BucketLine struct {
	Bucket string
	Stats  BucketStats
}

// SplitSet is the full aggregation result: one ordered bucket table per
// split dimension plus the overall line.
type SplitSet struct {
	Batter       int64
	Total        BucketStats
	Dims         map[string][]BucketLine
	Unclassified int // PAs excluded from every dimension
}

// ---- Zone grid ----

// ZoneCell is one spatial bucket of the strike-zone grid.
type ZoneCell struct {
	Label   string // "High-Left", "Mid-Middle", ..., or "Outside"
	Pitches int
	Swings  int
	Contact int
	Hits    int
	ABs     int // terminal at-bat events located in this cell
}

func (c *ZoneCell) SwingRate() Rate {
	if c.Pitches == 0 {
		return Rate{}
	}
	return Rate{Value: float64(c.Swings) / float64(c.Pitches), Valid: true}
}

func (c *ZoneCell) ContactRate() Rate {
	if c.Swings == 0 {
		return Rate{}
	}
	return Rate{Value: float64(c.Contact) / float64(c.Swings), Valid: true}
}

func (c *ZoneCell) AVG() Rate {
	if c.ABs == 0 {
		return Rate{}
	}
	return Rate{Value: float64(c.Hits) / float64(c.ABs), Valid: true}
}

// ZoneReport is the 3×3 strike-zone grid plus the outside bucket.
// Cells[0] is the High row; within a row column 0 is Left from the
// catcher's view.
type ZoneReport struct {
	Batter    int64
	Cells     [3][3]ZoneCell
	Outside   ZoneCell
	Unlocated int // pitches with no plate_x/plate_z, excluded everywhere
}

// ChaseRate is the swing rate on pitches outside the zone.
func (r *ZoneReport) ChaseRate() Rate { return r.Outside.SwingRate() }

// ZoneSwingRate is the swing rate over the nine in-zone cells combined.
func (r *ZoneReport) ZoneSwingRate() Rate {
	var pitches, swings int
	for i := range r.Cells {
		for j := range r.Cells[i] {
			pitches += r.Cells[i][j].Pitches
			swings += r.Cells[i][j].Swings
		}
	}
	if pitches == 0 {
		return Rate{}
	}
	return Rate{Value: float64(swings) / float64(pitches), Valid: true}
}

// ---- Trend ----

// TrendPoint is one step of the rolling expected-wOBA series.
type TrendPoint struct {
	Index    int // ordinal among qualifying PAs, 1-based
	GameDate string
	Value    float64 // this PA's contribution
	Rolling  float64 // windowed mean up to and including this PA
}

// ---- Matchups ----

// MatchupLine summarizes one batter-versus-pitcher history.
type MatchupLine struct {
	Pitcher     int64
	PitcherName string
	PThrows     string
	Pitches     int
	PA          int
	AB          int
	H           int
	HR          int
	SO          int
	BB          int
}

func (m *MatchupLine) AVG() Rate {
	if m.AB == 0 {
		return Rate{}
	}
	return Rate{Value: float64(m.H) / float64(m.AB), Valid: true}
}

// MatchupPitch is one pitch of a matchup at-bat, in pitch order.
type MatchupPitch struct {
	PitchNum     int
	PitchName    string
	Balls        int
	Strikes      int
	Description  string
	ReleaseSpeed float64
	Event        string // set on the final pitch
}

// MatchupAtBat is the pitch-by-pitch record of one PA against the
// selected pitcher.
type MatchupAtBat struct {
	GamePK   int64
	GameDate string
	Inning   int
	AtBat    int
	Pitches  []MatchupPitch
}

// ---- Game log ----

// GameLine is one game's totals for the gamelog view.
type GameLine struct {
	GamePK   int64
	GameDate string
	Venue    string
	Home     bool
	Opponent string
	Stats    BucketStats
}

// ---- Players and fetch batches ----

// Player is the bio record served by the MLB Stats API.
type Player struct {
	ID        int64
	FullName  string
	Age       int
	Height    string // e.g. `6' 2"`
	Weight    int
	BatSide   string
	PitchHand string
	Position  string
	Team      string
	Number    string
}

// PlayerRef is a search hit: enough to pick an id for fetch.
type PlayerRef struct {
	ID       int64
	FullName string
	Position string
	Team     string
	Active   bool
}

// FetchBatch records one cached download: who, what range, how much.
type FetchBatch struct {
	ID         string // uuid
	Batter     int64
	PlayerName string
	StartDate  string
	EndDate    string
	Pitches    int
	FetchedAt  string
}
