package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/storage"
)

var dropForce bool

// dropCmd deletes a stored chart, or the whole database with no argument.
var dropCmd = &cobra.Command{
	Use:   "drop [key-prefix]",
	Short: "Delete a stored chart, or the whole database",
	Long: `With a key prefix, deletes the matching chart and its shots.
Without arguments, permanently deletes the SQLite database file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropChart(args[0])
	}

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

func dropChart(prefix string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	chart, err := db.GetChartByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query chart: %w", err)
	}
	if chart == nil {
		fmt.Fprintf(os.Stderr, "No chart found with key prefix %q\n", prefix)
		return nil
	}
	if err := db.DeleteChart(chart.Key); err != nil {
		return fmt.Errorf("delete chart: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted chart: %s\n", chart.Key)
	return nil
}
