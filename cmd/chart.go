package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/chartcfg"
	"github.com/hooplab/shotchart/internal/hexbin"
	"github.com/hooplab/shotchart/internal/model"
	"github.com/hooplab/shotchart/internal/report"
	"github.com/hooplab/shotchart/internal/storage"
)

// chart command flags.
var (
	// chartConfig is an optional YAML file overriding binning defaults.
	chartConfig string
	// chartTop limits the printed table to the N busiest cells.
	chartTop int
)

var chartCmd = &cobra.Command{
	Use:   "chart <key-prefix>",
	Short: "Aggregate a stored chart into hexagonal cells",
	Long: `Bins a stored chart's shots into a hexagonal lattice, joins each cell's
dominant zone against the league averages, and prints the resulting cells.

Examples:
  shotchart chart 201939-2023-24
  shotchart chart 201939-2023-24 --config chart.yaml --top 40`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartConfig, "config", "", "YAML config file (defaults applied when omitted)")
	chartCmd.Flags().IntVar(&chartTop, "top", 25, "number of cells to print (0 = all)")
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := chartcfg.Load(chartConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	chart, shots, leagueZones, err := loadChartData(db, args[0])
	if err != nil {
		return err
	}
	if chart == nil {
		fmt.Fprintf(os.Stderr, "No chart found with key prefix %q\n", args[0])
		return nil
	}

	bins, err := hexbin.Aggregate(shots, leagueZones, cfg.Hexbin())
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	report.PrintChartSummary(os.Stdout, *chart)
	fmt.Fprintf(os.Stdout, "%d occupied cells with league coverage\n\n", len(bins))
	report.PrintHexBinTable(os.Stdout, bins, chartTop)
	return nil
}

// loadChartData resolves a key prefix and loads the chart rows needed for
// aggregation. A nil chart with nil error means no match.
func loadChartData(db *storage.DB, prefix string) (*model.ChartSummary, []model.ShotEvent, []model.LeagueZone, error) {
	chart, err := db.GetChartByPrefix(prefix)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query chart: %w", err)
	}
	if chart == nil {
		return nil, nil, nil, nil
	}
	shots, err := db.GetShots(chart.Key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get shots: %w", err)
	}
	leagueZones, err := db.GetLeagueZones(chart.Season, chart.SeasonType)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get league zones: %w", err)
	}
	return chart, shots, leagueZones, nil
}
