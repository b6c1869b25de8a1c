package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <key-prefix>",
	Short: "Show a stored chart's zone breakdown by key prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

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

	return showByKey(db, chart.Key)
}
