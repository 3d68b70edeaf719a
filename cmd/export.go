package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/storage"
)

// export command flags.
var (
	exportBatch  string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a cached batch as CSV or JSON",
	Long: `Writes one cached fetch batch to a file or stdout. Format "csv" emits
the raw Savant payload exactly as downloaded; "json" emits the decoded
pitch events.

Example:
  mlbsplits export --batch deadbeef --format csv --out judge-june.csv`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportBatch, "batch", "", "batch id prefix (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	_ = exportCmd.MarkFlagRequired("batch")
}

func runExport(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	b, err := db.GetBatchByPrefix(exportBatch)
	if err != nil {
		return fmt.Errorf("find batch: %w", err)
	}
	if b == nil {
		return fmt.Errorf("no batch matches prefix %q", exportBatch)
	}

	var data []byte
	switch exportFormat {
	case "csv":
		if data, err = db.GetBatchPayload(b.ID); err != nil {
			return fmt.Errorf("load payload: %w", err)
		}
	case "json":
		events, err := db.LoadBatchEvents(b.ID)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		data, err = json.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q: want csv or json", exportFormat)
	}

	if exportOut == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	return nil
}
