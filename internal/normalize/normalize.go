// Package normalize reconstructs plate appearances from raw Statcast pitch
// events: grouping, outcome classification, and the run/RBI estimate.
package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-mlb-splits/internal/config"
	"github.com/pable/go-mlb-splits/internal/model"
)

// ErrNoEvents is returned when the input carries no usable pitch events.
var ErrNoEvents = errors.New("no pitch events")

// swungDescriptions are the per-pitch tags that mean the batter offered.
// Every other tag is a take.
var swungDescriptions = map[string]bool{
	"swinging_strike":         true,
	"foul":                    true,
	"foul_tip":                true,
	"hit_into_play":           true,
	"swinging_strike_blocked": true,
	"foul_bunt":               true,
	"missed_bunt":             true,
	"bunt_foul_tip":           true,
	"foul_pitchout":           true,
}

// Swung reports whether a per-pitch description tag counts as a swing.
func Swung(description string) bool { return swungDescriptions[description] }

// Contact reports whether a swing put the bat on the ball (fouls included).
func Contact(description string) bool {
	switch description {
	case "swinging_strike", "swinging_strike_blocked", "missed_bunt":
		return false
	}
	return swungDescriptions[description]
}

// paScore carries the score snapshots the estimator needs per PA. post is
// -1 when the terminal pitch had no post_bat_score column.
type paScore struct {
	start int
	post  int
	des   string
}

// Normalize turns the pitch stream for one batter and date range into the
// ordered plate-appearance sequence. Events sharing a (GamePK, AtBat) key
// form one PA; the final pitch's event tag decides the outcome. Malformed
// events are dropped with a warning. The only fatal condition is an input
// with nothing usable in it.
func Normalize(events []model.PitchEvent, cfg config.Engine) (*model.Analysis, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	// ---- Pass 1: drop events that cannot be grouped ----

	clean := make([]model.PitchEvent, 0, len(events))
	malformed := 0
	for i := range events {
		e := &events[i]
		if e.GamePK <= 0 || e.AtBat <= 0 || e.Description == "" {
			malformed++
			log.Warn().
				Int64("game_pk", e.GamePK).
				Int("at_bat", e.AtBat).
				Int("pitch", e.PitchNum).
				Msg("dropping malformed pitch event")
			continue
		}
		clean = append(clean, *e)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("all %d events malformed: %w", malformed, ErrNoEvents)
	}

	// ---- Pass 2: restore chronological order if the input lost it ----

	less := func(i, j int) bool { return eventLess(&clean[i], &clean[j]) }
	if !sort.SliceIsSorted(clean, less) {
		log.Debug().Msg("pitch events out of order, sorting")
		sort.SliceStable(clean, less)
	}

	// ---- Pass 3: group contiguous events into plate appearances ----

	var (
		pas    []model.PlateAppearance
		scores []paScore
		start  = 0
	)
	flush := func(end int) {
		group := clean[start:end]
		if len(group) == 0 {
			return
		}
		pa, sc := buildPA(group, cfg)
		pas = append(pas, pa)
		scores = append(scores, sc)
		start = end
	}
	for i := 1; i < len(clean); i++ {
		prev, cur := &clean[i-1], &clean[i]
		if cur.GamePK != prev.GamePK || cur.AtBat != prev.AtBat {
			flush(i)
			continue
		}
		// Same key but the count reset after a terminal event: a new PA
		// that reused the at-bat number. Seen in suspended games.
		if prev.Event != "" && cur.Balls == 0 && cur.Strikes == 0 {
			flush(i)
		}
	}
	flush(len(clean))

	// ---- Pass 4: estimate runs and RBI from the score snapshots ----

	for i := range pas {
		var after int
		switch {
		case i+1 < len(pas) && pas[i+1].GamePK == pas[i].GamePK:
			after = scores[i+1].start
		case scores[i].post >= 0:
			after = scores[i].post
		default:
			pas[i].ScoreIncomplete = true
			continue
		}
		runs := after - scores[i].start
		if runs < 0 {
			pas[i].ScoreIncomplete = true
			runs = 0
		}
		pas[i].Runs = runs
		pas[i].RBI = estimateRBI(&pas[i], runs, scores[i].des)
	}

	return &model.Analysis{
		Batter:    clean[0].Batter,
		PAs:       pas,
		Events:    clean,
		Malformed: malformed,
	}, nil
}

func eventLess(a, b *model.PitchEvent) bool {
	if a.GameDate != b.GameDate {
		return a.GameDate < b.GameDate
	}
	if a.GamePK != b.GamePK {
		return a.GamePK < b.GamePK
	}
	if a.AtBat != b.AtBat {
		return a.AtBat < b.AtBat
	}
	return a.PitchNum < b.PitchNum
}

// buildPA derives one plate appearance from its contiguous pitch group.
// Situation fields come from the first pitch, outcome and count from the
// last.
func buildPA(group []model.PitchEvent, cfg config.Engine) (model.PlateAppearance, paScore) {
	first := &group[0]
	last := &group[len(group)-1]

	pa := model.PlateAppearance{
		GamePK:     first.GamePK,
		GameDate:   first.GameDate,
		AtBat:      first.AtBat,
		Inning:     first.Inning,
		HalfInning: first.HalfInning,

		Outs:      first.Outs,
		ScoreDiff: first.BatScore - first.FldScore,
		On1B:      first.On1B,
		On2B:      first.On2B,
		On3B:      first.On3B,

		Pitcher:     last.Pitcher,
		PitcherName: last.PitcherName,
		PThrows:     last.PThrows,
		Venue:       first.Venue(),
		Home:        first.HalfInning == "Bot",
		Opponent:    opponentOf(first),

		FirstPitchSwung: Swung(first.Description),
		Pitches:         len(group),

		FinalBalls:   last.Balls,
		FinalStrikes: last.Strikes,
		RawEvent:     last.Event,

		XWOBA:     last.XWOBA,
		HasXWOBA:  last.HasXWOBA,
		WOBAValue: last.WOBAValue,
		WOBADenom: last.WOBADenom,
	}
	pa.LateAndClose = pa.Inning >= cfg.LeverageInning && abs(pa.ScoreDiff) <= cfg.LateMargin
	pa.Outcome = ClassifyEvent(last.Event)
	pa.Unclassified = pa.Outcome == model.OutcomeUnclassified
	pa.GIDP = strings.Contains(last.Event, "double_play") && !strings.HasPrefix(last.Event, "sac_")

	return pa, paScore{start: first.BatScore, post: last.PostBatScore, des: last.Des}
}

// ClassifyEvent maps a Statcast terminal event tag to a PA outcome.
func ClassifyEvent(ev string) model.Outcome {
	switch ev {
	case "single":
		return model.OutcomeSingle
	case "double":
		return model.OutcomeDouble
	case "triple":
		return model.OutcomeTriple
	case "home_run":
		return model.OutcomeHomeRun
	case "walk":
		return model.OutcomeWalk
	case "intent_walk":
		return model.OutcomeIntentWalk
	case "hit_by_pitch":
		return model.OutcomeHitByPitch
	case "strikeout", "strikeout_double_play":
		return model.OutcomeStrikeout
	case "sac_bunt", "sac_bunt_double_play":
		return model.OutcomeSacBunt
	case "sac_fly", "sac_fly_double_play":
		return model.OutcomeSacFly
	case "field_error":
		return model.OutcomeFieldError
	case "field_out", "force_out", "fielders_choice", "fielders_choice_out",
		"grounded_into_double_play", "double_play", "triple_play":
		return model.OutcomeInPlayOut
	default:
		return model.OutcomeUnclassified
	}
}

// estimateRBI credits runs to the batter, discounting one run when the
// play narration shows a free advancement the batter did not drive in.
// Reaching on an error credits nothing.
func estimateRBI(pa *model.PlateAppearance, runs int, des string) int {
	if pa.Outcome == model.OutcomeFieldError {
		return 0
	}
	rbi := runs
	if hasFreeAdvance(des) {
		rbi--
	}
	if rbi < 0 {
		rbi = 0
	}
	return rbi
}

func opponentOf(e *model.PitchEvent) string {
	if e.HalfInning == "Bot" {
		return e.AwayTeam
	}
	return e.HomeTeam
}

func hasFreeAdvance(des string) bool {
	des = strings.ToLower(des)
	return strings.Contains(des, "wild pitch") ||
		strings.Contains(des, "passed ball") ||
		strings.Contains(des, "defensive indifference")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
