package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/hexbin"
	"github.com/hooplab/shotchart/internal/report"
	"github.com/hooplab/shotchart/internal/storage"
)

var trendCmd = &cobra.Command{
	Use:   "trend <key-prefix>",
	Short: "Chronological per-game shooting trend for a stored chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	chart, err := db.GetChartByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query chart: %w", err)
	}
	if chart == nil {
		fmt.Fprintf(os.Stderr, "No chart found with key prefix %q\n", args[0])
		return nil
	}

	shots, err := db.GetShots(chart.Key)
	if err != nil {
		return fmt.Errorf("get shots: %w", err)
	}
	if len(shots) == 0 {
		fmt.Println("no shots found")
		return nil
	}

	report.PrintChartSummary(os.Stdout, *chart)
	report.PrintGameTrendTable(os.Stdout, hexbin.GameStats(shots))
	return nil
}
