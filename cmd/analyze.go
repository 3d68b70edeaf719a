package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/model"
	"github.com/pable/go-mlb-splits/internal/splits"
	"github.com/pable/go-mlb-splits/internal/storage"
)

const analyzeSystemPrompt = `You are a baseball performance analyst. You are given structured data
from a Statcast splits tool and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable — focus on what actually shows up in the data.
- Avoid generic baseball commentary unless it directly explains a pattern in the data.

Metrics glossary:
- AVG: hits ÷ at-bats. League average sits around .245.
- OBP: times on base ÷ PA. Good: >.360.
- SLG: total bases ÷ at-bats. OPS = OBP + SLG; >.800 is strong.
- BABIP: batting average on balls in play. Typical ~.300; large gaps from AVG suggest luck.
- xwOBA: expected wOBA from Statcast contact quality. League ~.320.
- runs_est / rbi_est: estimated from score snapshots around each PA; lower
  bounds when score_incomplete > 0.
- clutch buckets: 2-out-RISP is two outs with a runner in scoring position;
  late-close is the 7th inning or later with a tight margin.
- count buckets (ahead/even/behind) are from the batter's perspective.
- chase rate: swings at pitches outside the strike zone ÷ outside pitches.
- first-pitch: PAs resolved on the first pitch versus all others.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeStart  string
	analyzeEnd    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <player> <question>",
	Short: "Analyze a batter's splits with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzePlayer,
}

var analyzeMatchupCmd = &cobra.Command{
	Use:   "matchup <player> <question>",
	Short: "Analyze a batter's pitcher matchups with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeMatchup,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY or ~/.mlbsplits/anthropic_key)")
	analyzeCmd.PersistentFlags().StringVar(&analyzeStart, "start", "", "first game date (YYYY-MM-DD)")
	analyzeCmd.PersistentFlags().StringVar(&analyzeEnd, "end", "", "last game date (YYYY-MM-DD)")

	analyzeCmd.AddCommand(analyzePlayerCmd)
	analyzeCmd.AddCommand(analyzeMatchupCmd)
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	if err := checkSpan(analyzeStart, analyzeEnd); err != nil {
		return err
	}
	question := args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := resolveCachedPlayer(db, args[0])
	if err != nil {
		return err
	}
	an, err := loadAnalysis(db, p.ID, analyzeStart, analyzeEnd)
	if err != nil {
		return err
	}
	set, err := splits.Aggregate(an)
	if err != nil {
		return err
	}
	points := splits.Trend(an, cfg.TrendWindow, cfg.TrendMin)

	contextJSON, err := buildPlayerContext(p, set, points)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

func runAnalyzeMatchup(cmd *cobra.Command, args []string) error {
	if err := checkSpan(analyzeStart, analyzeEnd); err != nil {
		return err
	}
	question := args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := resolveCachedPlayer(db, args[0])
	if err != nil {
		return err
	}
	an, err := loadAnalysis(db, p.ID, analyzeStart, analyzeEnd)
	if err != nil {
		return err
	}
	lines := splits.Matchups(an)
	if len(lines) == 0 {
		return fmt.Errorf("no matchups in the cached span")
	}

	contextJSON, err := buildMatchupContext(p, lines)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// bucketEntry is the compact JSON form of one split bucket.
type bucketEntry struct {
	Bucket  string  `json:"bucket"`
	PA      int     `json:"pa"`
	AB      int     `json:"ab"`
	H       int     `json:"h"`
	HR      int     `json:"hr"`
	BB      int     `json:"bb"`
	SO      int     `json:"so"`
	RunsEst int     `json:"runs_est"`
	RBIEst  int     `json:"rbi_est"`
	AVG     float64 `json:"avg"`
	OBP     float64 `json:"obp"`
	SLG     float64 `json:"slg"`
	XWOBA   float64 `json:"xwoba"`
}

func toBucketEntry(bucket string, s model.BucketStats) bucketEntry {
	return bucketEntry{
		Bucket:  bucket,
		PA:      s.PA,
		AB:      s.AB(),
		H:       s.Hits(),
		HR:      s.HomeRuns,
		BB:      s.BB + s.IBB,
		SO:      s.SO,
		RunsEst: s.Runs,
		RBIEst:  s.RBI,
		AVG:     rate3(s.AVG()),
		OBP:     rate3(s.OBP()),
		SLG:     rate3(s.SLG()),
		XWOBA:   rate3(s.XWOBA()),
	}
}

// buildPlayerContext serialises a batter's splits into compact JSON.
func buildPlayerContext(p *model.Player, set *model.SplitSet, points []model.TrendPoint) (string, error) {
	dims := make(map[string][]bucketEntry, len(set.Dims))
	for _, dim := range splits.Dimensions() {
		lines := set.Dims[dim]
		if len(lines) == 0 {
			continue
		}
		entries := make([]bucketEntry, 0, len(lines))
		for _, l := range lines {
			entries = append(entries, toBucketEntry(l.Bucket, l.Stats))
		}
		dims[dim] = entries
	}

	type trendEntry struct {
		Date    string  `json:"date"`
		Rolling float64 `json:"rolling_xwoba"`
	}
	const trendTailLen = 10
	tail := points
	if len(tail) > trendTailLen {
		tail = tail[len(tail)-trendTailLen:]
	}
	trend := make([]trendEntry, 0, len(tail))
	for _, pt := range tail {
		trend = append(trend, trendEntry{Date: pt.GameDate, Rolling: round3(pt.Rolling)})
	}

	doc := map[string]interface{}{
		"subject":  "batter",
		"player":   p.FullName,
		"mlbam_id": p.ID,
		"bat_side": p.BatSide,
		"filters": map[string]interface{}{
			"start": analyzeStart,
			"end":   analyzeEnd,
		},
		"overview":         toBucketEntry("total", set.Total),
		"games":            set.Total.Games,
		"score_incomplete": set.Total.ScoreIncomplete,
		"splits":           dims,
		"trend":            trend,
		"league_xwoba":     cfg.LeagueXWOBA,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// buildMatchupContext serialises a batter's pitcher history into compact JSON.
func buildMatchupContext(p *model.Player, lines []model.MatchupLine) (string, error) {
	type matchupEntry struct {
		Pitcher string  `json:"pitcher"`
		ID      int64   `json:"id"`
		Throws  string  `json:"throws"`
		Pitches int     `json:"pitches"`
		PA      int     `json:"pa"`
		AB      int     `json:"ab"`
		H       int     `json:"h"`
		HR      int     `json:"hr"`
		BB      int     `json:"bb"`
		SO      int     `json:"so"`
		AVG     float64 `json:"avg"`
	}

	pitchers := make([]matchupEntry, 0, len(lines))
	for i := range lines {
		m := &lines[i]
		pitchers = append(pitchers, matchupEntry{
			Pitcher: m.PitcherName,
			ID:      m.Pitcher,
			Throws:  m.PThrows,
			Pitches: m.Pitches,
			PA:      m.PA,
			AB:      m.AB,
			H:       m.H,
			HR:      m.HR,
			BB:      m.BB,
			SO:      m.SO,
			AVG:     rate3(m.AVG()),
		})
	}

	doc := map[string]interface{}{
		"subject":  "matchups",
		"player":   p.FullName,
		"mlbam_id": p.ID,
		"bat_side": p.BatSide,
		"filters": map[string]interface{}{
			"start": analyzeStart,
			"end":   analyzeEnd,
		},
		"pitchers": pitchers,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// rate3 rounds a rate to 3 decimal places, 0 when undefined.
func rate3(r model.Rate) float64 {
	if !r.Valid {
		return 0
	}
	return round3(r.Value)
}

// round3 rounds a float64 to 3 decimal places.
func round3(v float64) float64 {
	// Use integer arithmetic to avoid floating-point drift.
	return float64(int(v*1000+0.5)) / 1000
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = loadAnthropicKey()
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY, create ~/.mlbsplits/anthropic_key, or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		// Provide a cleaner error message for common API errors.
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}

// loadAnthropicKey returns the Anthropic API key from the ANTHROPIC_API_KEY
// environment variable or ~/.mlbsplits/anthropic_key.
func loadAnthropicKey() string {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, ".mlbsplits", "anthropic_key"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
