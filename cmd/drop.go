package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mlb-splits/internal/storage"
)

// drop command flags.
var (
	dropAll   bool
	dropForce bool
)

// dropCmd deletes one cached batch, or the whole database with --all.
var dropCmd = &cobra.Command{
	Use:   "drop [batch-prefix]",
	Short: "Delete a cached batch, or the whole database",
	Long: `Deletes one cached fetch batch (and its pitches) by id prefix, or with
--all the entire SQLite database file. Refetch afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "delete the whole database file")
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropAll {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with a batch prefix")
		}
		return dropDatabase()
	}
	if len(args) == 0 {
		return fmt.Errorf("pass a batch id prefix, or --all for the whole database")
	}
	return dropBatch(args[0])
}

func dropBatch(prefix string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	b, err := db.GetBatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("find batch: %w", err)
	}
	if b == nil {
		return fmt.Errorf("no batch matches prefix %q", prefix)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete batch %s (%s, %s – %s, %d pitches).\n",
			b.ID, b.PlayerName, b.StartDate, b.EndDate, b.Pitches)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := db.DeleteBatch(b.ID); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted batch: %s\n", b.ID)
	return nil
}

func dropDatabase() error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
