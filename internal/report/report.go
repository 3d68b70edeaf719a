package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mlb-splits/internal/model"
)

// PrintSplitHeader prints a one-line summary header for a split report.
func PrintSplitHeader(w io.Writer, name string, batter int64, total model.BucketStats, start, end string) {
	span := "full cache"
	if start != "" || end != "" {
		if start == "" {
			start = "…"
		}
		if end == "" {
			end = "…"
		}
		span = fmt.Sprintf("%s – %s", start, end)
	}
	fmt.Fprintf(w, "\nBatter: %s (%d)  |  Span: %s  |  PA: %d  |  Games: %d\n\n",
		name, batter, span, total.PA, total.Games)
}

// PrintSplitTable prints one dimension's bucket lines to stdout.
func PrintSplitTable(lines []model.BucketLine) {
	PrintSplitTableTo(os.Stdout, lines)
}

// PrintSplitTableTo writes the bucket table to the provided writer.
func PrintSplitTableTo(w io.Writer, lines []model.BucketLine) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("BUCKET", "PA", "AB", "H", "2B", "3B", "HR", "TB", "BB", "SO", "R*", "RBI*", "AVG", "OBP", "SLG", "OPS")

	for _, l := range lines {
		s := l.Stats
		table.Append(
			l.Bucket,
			strconv.Itoa(s.PA),
			strconv.Itoa(s.AB()),
			strconv.Itoa(s.Hits()),
			strconv.Itoa(s.Doubles),
			strconv.Itoa(s.Triples),
			strconv.Itoa(s.HomeRuns),
			strconv.Itoa(s.TotalBases()),
			strconv.Itoa(s.BB+s.IBB),
			strconv.Itoa(s.SO),
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.RBI),
			rateStr(s.AVG()),
			rateStr(s.OBP()),
			rateStr(s.SLG()),
			rateStr(s.OPS()),
		)
	}
	table.Render()
}

// PrintBucketDetail prints the full stat line for a single bucket.
func PrintBucketDetail(w io.Writer, dim, bucket string, s model.BucketStats) {
	if dim == "ballpark" {
		fmt.Fprintf(w, "\n%s\n", ParkLabel(bucket))
	} else {
		fmt.Fprintf(w, "\n%s: %s\n", dim, bucket)
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("PA", "AB", "H", "2B", "3B", "HR", "TB", "BB", "IBB", "HBP", "SO", "SF", "SH", "GDP",
		"R*", "RBI*", "AVG", "OBP", "SLG", "OPS", "BABIP", "xwOBA")

	table.Append(
		strconv.Itoa(s.PA),
		strconv.Itoa(s.AB()),
		strconv.Itoa(s.Hits()),
		strconv.Itoa(s.Doubles),
		strconv.Itoa(s.Triples),
		strconv.Itoa(s.HomeRuns),
		strconv.Itoa(s.TotalBases()),
		strconv.Itoa(s.BB),
		strconv.Itoa(s.IBB),
		strconv.Itoa(s.HBP),
		strconv.Itoa(s.SO),
		strconv.Itoa(s.SF),
		strconv.Itoa(s.SH),
		strconv.Itoa(s.GIDP),
		strconv.Itoa(s.Runs),
		strconv.Itoa(s.RBI),
		rateStr(s.AVG()),
		rateStr(s.OBP()),
		rateStr(s.SLG()),
		rateStr(s.OPS()),
		rateStr(s.BABIP()),
		rateStr(s.XWOBA()),
	)
	table.Render()
}

// PrintEstimateNote explains the starred run and RBI columns.
func PrintEstimateNote(w io.Writer, incomplete int) {
	fmt.Fprintln(w, "\n* Runs and RBI are estimated from Statcast score snapshots.")
	if incomplete > 0 {
		fmt.Fprintf(w, "  %d plate appearances lacked a usable final score; their totals are lower bounds.\n", incomplete)
	}
}

// PrintPlayerBio prints one player's bio table.
func PrintPlayerBio(w io.Writer, p *model.Player) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("ID", "NAME", "AGE", "HT", "WT", "BATS", "THROWS", "POS", "TEAM", "NO")
	table.Append(
		strconv.FormatInt(p.ID, 10),
		p.FullName,
		strconv.Itoa(p.Age),
		orDash(p.Height),
		strconv.Itoa(p.Weight),
		orDash(p.BatSide),
		orDash(p.PitchHand),
		orDash(p.Position),
		orDash(p.Team),
		orDash(p.Number),
	)
	table.Render()
}

// PrintSearchResults prints player search hits.
func PrintSearchResults(w io.Writer, refs []model.PlayerRef) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("ID", "NAME", "POS", "TEAM", "ACTIVE")
	for _, r := range refs {
		active := "no"
		if r.Active {
			active = "yes"
		}
		table.Append(
			strconv.FormatInt(r.ID, 10),
			r.FullName,
			orDash(r.Position),
			orDash(r.Team),
			active,
		)
	}
	table.Render()
}

// rateStr renders a batting rate the scoreboard way: .312, 1.050, or "—"
// when the denominator was zero.
func rateStr(r model.Rate) string {
	if !r.Valid {
		return "—"
	}
	return strings.TrimPrefix(fmt.Sprintf("%.3f", r.Value), "0")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
