package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/report"
	"github.com/pable/go-mlb-splits/internal/splits"
	"github.com/pable/go-mlb-splits/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the pitch cache. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("mlbsplits shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("mlbsplits")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "dims":
			shellDims()
		case "list":
			shellList(db)
		case "summary":
			shellSummary(db)
		case "bio":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: bio <id|name>")
				continue
			}
			shellBio(db, strings.Join(args, " "))
		case "splits":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: splits <id|name> [dim]")
				continue
			}
			shellSplits(db, args)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list cached fetch batches"},
		{"summary", "cache overview by batter"},
		{"bio <id|name>", "player bio"},
		{"splits <id|name> [dim]", "situational splits, all dimensions or one"},
		{"dims", "list the split dimensions"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-26s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellDims() {
	for _, d := range splits.Dimensions() {
		fmt.Printf("  %s\n", d)
	}
}

func shellList(db *storage.DB) {
	batches, err := db.ListBatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(batches) == 0 {
		cMuted.Println("No batches cached yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-10s  %-22s  %-10s  %-10s  %7s\n",
		"BATCH", "PLAYER", "START", "END", "PITCHES")
	cMuted.Fprintf(os.Stdout, "%-10s  %-22s  %-10s  %-10s  %7s\n",
		"──────────", "──────────────────────", "──────────", "──────────", "───────")
	for _, b := range batches {
		fmt.Fprintf(os.Stdout, "%-10s  %-22s  %-10s  %-10s  %7d\n",
			b.ID[:8], b.PlayerName, b.StartDate, b.EndDate, b.Pitches)
	}
}

func shellSummary(db *storage.DB) {
	cov, err := db.CoverageByPlayer()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(cov) == 0 {
		cMuted.Println("No batches cached yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-22s  %-8s  %7s  %7s  %5s  %-10s  %s\n",
		"BATTER", "ID", "BATCHES", "PITCHES", "GAMES", "FIRST", "LAST")
	for _, c := range cov {
		fmt.Fprintf(os.Stdout, "%-22s  %-8d  %7d  %7d  %5d  %-10s  %s\n",
			c.PlayerName, c.Batter, c.Batches, c.Pitches, c.Games, c.FirstDate, c.LastDate)
	}
}

func shellBio(db *storage.DB, query string) {
	p, err := resolvePlayer(context.Background(), db, query)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintPlayerBio(os.Stdout, p)
}

func shellSplits(db *storage.DB, args []string) {
	var dim string
	player := args[0]
	if n := len(args); n > 1 {
		if validDim(args[n-1]) {
			dim = args[n-1]
			player = strings.Join(args[:n-1], " ")
		} else {
			player = strings.Join(args, " ")
		}
	}

	p, err := resolveCachedPlayer(db, player)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	an, err := loadAnalysis(db, p.ID, "", "")
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	set, err := splits.Aggregate(an)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	report.PrintSplitHeader(os.Stdout, p.FullName, p.ID, set.Total, "", "")
	dims := splits.Dimensions()
	if dim != "" {
		dims = []string{dim}
	}
	for _, d := range dims {
		lines := set.Dims[d]
		if len(lines) == 0 {
			continue
		}
		cHeader.Printf("--- %s ---\n", d)
		report.PrintSplitTable(lines)
		fmt.Println()
	}
	report.PrintEstimateNote(os.Stdout, set.Total.ScoreIncomplete)
}
