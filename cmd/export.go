package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/chartcfg"
	"github.com/hooplab/shotchart/internal/hexbin"
	"github.com/hooplab/shotchart/internal/model"
	"github.com/hooplab/shotchart/internal/storage"
)

// export command flags.
var (
	exportConfig string
	exportFormat string
	exportOut    string
)

// chartExport is the top-level JSON schema written by the export command.
// Renderers consume cells as-is; the fill metrics are already clamped to the
// configured bounds and the adjusted polygon is already scaled.
type chartExport struct {
	Key        string       `json:"key"`
	PlayerID   int          `json:"player_id"`
	PlayerName string       `json:"player_name"`
	Season     string       `json:"season"`
	SeasonType string       `json:"season_type"`
	ShotCount  int          `json:"shot_count"`
	Cells      []exportCell `json:"cells"`
}

// exportCell is the per-cell block within the chart JSON.
type exportCell struct {
	CellID            int          `json:"cell_id"`
	Centroid          [2]float64   `json:"centroid"`
	Polygon           [][2]float64 `json:"polygon"`
	AdjustedPolygon   [][2]float64 `json:"adjusted_polygon"`
	Attempts          int          `json:"attempts"`
	CellSuccessRate   float64      `json:"cell_success_rate"`
	CellPointsPerShot float64      `json:"cell_points_per_shot"`
	Zone              string       `json:"zone"`
	ZoneSuccessRate   float64      `json:"zone_success_rate"`
	ZonePointsPerShot float64      `json:"zone_points_per_shot"`
	LeagueSuccessRate float64      `json:"league_success_rate"`
	RateDifferential  float64      `json:"rate_differential"`
	BoundedRate       float64      `json:"bounded_rate"`
	BoundedPPS        float64      `json:"bounded_pps"`
	RadiusFactor      float64      `json:"radius_factor"`
}

var exportCmd = &cobra.Command{
	Use:   "export <key-prefix>",
	Short: "Export aggregated hex cells as JSON or CSV",
	Long: `Aggregates a stored chart into hexagonal cells and writes the cell
records for downstream renderers.

Examples:
  shotchart export 201939-2023-24 --out curry.json
  shotchart export 201939-2023-24 --format csv --out curry.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportConfig, "config", "", "YAML config file (defaults applied when omitted)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "csv" {
		return fmt.Errorf("unknown format %q: use json or csv", exportFormat)
	}

	cfg, err := chartcfg.Load(exportConfig)
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
		return fmt.Errorf("no chart found with key prefix %q", args[0])
	}

	bins, err := hexbin.Aggregate(shots, leagueZones, cfg.Hexbin())
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	if exportFormat == "csv" {
		err = writeCellsCSV(out, bins)
	} else {
		err = writeChartJSON(out, *chart, bins)
	}
	if err != nil {
		return err
	}

	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d cells to %s\n", len(bins), exportOut)
	}
	return nil
}

func writeChartJSON(w io.Writer, chart model.ChartSummary, bins []model.HexBin) error {
	cells := make([]exportCell, 0, len(bins))
	for _, b := range bins {
		cells = append(cells, exportCell{
			CellID:            b.CellID,
			Centroid:          [2]float64{b.Centroid.X, b.Centroid.Y},
			Polygon:           pointPairs(b.Polygon),
			AdjustedPolygon:   pointPairs(b.AdjustedPolygon),
			Attempts:          b.CellStats.Attempts,
			CellSuccessRate:   b.CellStats.SuccessRate,
			CellPointsPerShot: b.CellStats.PointsPerShot,
			Zone:              b.Zone.String(),
			ZoneSuccessRate:   b.ZoneSuccessRate,
			ZonePointsPerShot: b.ZonePointsPerShot,
			LeagueSuccessRate: b.LeagueSuccessRate,
			RateDifferential:  b.RateDifferential,
			BoundedRate:       b.BoundedRate,
			BoundedPPS:        b.BoundedPPS,
			RadiusFactor:      b.RadiusFactor,
		})
	}

	export := chartExport{
		Key:        chart.Key,
		PlayerID:   chart.PlayerID,
		PlayerName: chart.PlayerName,
		Season:     chart.Season,
		SeasonType: chart.SeasonType,
		ShotCount:  chart.ShotCount,
		Cells:      cells,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeCellsCSV(w io.Writer, bins []model.HexBin) error {
	cw := csv.NewWriter(w)
	header := []string{
		"cell_id", "centroid_x", "centroid_y", "attempts",
		"cell_success_rate", "cell_points_per_shot", "zone",
		"zone_success_rate", "zone_points_per_shot", "league_success_rate",
		"rate_differential", "bounded_rate", "bounded_pps", "radius_factor",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range bins {
		row := []string{
			strconv.Itoa(b.CellID),
			formatFloat(b.Centroid.X),
			formatFloat(b.Centroid.Y),
			strconv.Itoa(b.CellStats.Attempts),
			formatFloat(b.CellStats.SuccessRate),
			formatFloat(b.CellStats.PointsPerShot),
			b.Zone.String(),
			formatFloat(b.ZoneSuccessRate),
			formatFloat(b.ZonePointsPerShot),
			formatFloat(b.LeagueSuccessRate),
			formatFloat(b.RateDifferential),
			formatFloat(b.BoundedRate),
			formatFloat(b.BoundedPPS),
			formatFloat(b.RadiusFactor),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func pointPairs(points []r2.Point) [][2]float64 {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = [2]float64{p.X, p.Y}
	}
	return pairs
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
