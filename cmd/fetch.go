package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/hexbin"
	"github.com/hooplab/shotchart/internal/model"
	"github.com/hooplab/shotchart/internal/nba"
	"github.com/hooplab/shotchart/internal/report"
	"github.com/hooplab/shotchart/internal/storage"
)

// fetch command flags.
var (
	// fetchPlayerID is the NBA person id of the target player.
	fetchPlayerID int
	// fetchPlayerName searches the league index instead of requiring an id.
	fetchPlayerName string
	// fetchSeason is the season label, e.g. "2023-24".
	fetchSeason string
	// fetchSeasonType is "Regular Season" or "Playoffs".
	fetchSeasonType string
	// fetchForce re-downloads a chart that is already stored.
	fetchForce bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a player's shots and league averages from the stats API",
	Long: `Fetches every field-goal attempt for a player in a season, together with
the league-wide zone averages, and stores both in the local database.

Examples:
  shotchart fetch --player-id 201939 --season 2023-24
  shotchart fetch --player "curry" --season 2023-24 --season-type "Playoffs"`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchPlayerID, "player-id", 0, "NBA person id")
	fetchCmd.Flags().StringVar(&fetchPlayerName, "player", "", "player name (resolved via the league index)")
	fetchCmd.Flags().StringVar(&fetchSeason, "season", "", "season label, e.g. 2023-24 (required)")
	fetchCmd.Flags().StringVar(&fetchSeasonType, "season-type", nba.SeasonTypeRegular, "Regular Season or Playoffs")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "re-download even if the chart is already stored")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchSeason == "" {
		return fmt.Errorf("no season specified: use --season")
	}

	client := nba.NewClient()

	playerID := fetchPlayerID
	playerName := fetchPlayerName
	if playerID == 0 {
		if playerName == "" {
			return fmt.Errorf("no player specified: use --player-id or --player")
		}
		matches, err := client.SearchPlayers(playerName, fetchSeason)
		if err != nil {
			return fmt.Errorf("search players: %w", err)
		}
		switch len(matches) {
		case 0:
			return fmt.Errorf("no player matches %q", playerName)
		case 1:
			playerID, playerName = matches[0].ID, matches[0].Name
		default:
			fmt.Fprintf(os.Stderr, "%q is ambiguous; pick an id with --player-id:\n", playerName)
			report.PrintPlayerTable(os.Stderr, matches)
			return fmt.Errorf("%d players match %q", len(matches), playerName)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	key := model.ChartKey(playerID, fetchSeason, fetchSeasonType)
	exists, err := db.ChartExists(key)
	if err != nil {
		return fmt.Errorf("check chart: %w", err)
	}
	if exists && !fetchForce {
		fmt.Fprintf(os.Stdout, "Chart %s already stored — showing cached results.\n", key)
		return showByKey(db, key)
	}

	fmt.Fprintf(os.Stdout, "Fetching shots for player %d, %s %s...\n", playerID, fetchSeason, fetchSeasonType)
	shots, leagueZones, err := client.ShotChart(playerID, fetchSeason, fetchSeasonType)
	if err != nil {
		return fmt.Errorf("fetch shot chart: %w", err)
	}
	if len(shots) == 0 {
		return fmt.Errorf("no shots returned for player %d in %s %s", playerID, fetchSeason, fetchSeasonType)
	}

	summary := model.ChartSummary{
		Key:        key,
		PlayerID:   playerID,
		PlayerName: playerName,
		Season:     fetchSeason,
		SeasonType: fetchSeasonType,
		ShotCount:  len(shots),
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if err := db.InsertChart(summary); err != nil {
		return fmt.Errorf("insert chart: %w", err)
	}
	if err := db.InsertShots(key, shots); err != nil {
		return fmt.Errorf("insert shots: %w", err)
	}
	if err := db.InsertLeagueZones(fetchSeason, fetchSeasonType, leagueZones); err != nil {
		return fmt.Errorf("insert league zones: %w", err)
	}

	report.PrintChartSummary(os.Stdout, summary)
	report.PrintZoneTable(os.Stdout, hexbin.SubjectZoneStats(shots), hexbin.BaselineZoneRates(leagueZones))
	return nil
}

// showByKey prints the stored zone breakdown for a chart.
func showByKey(db *storage.DB, key string) error {
	chart, err := db.GetChartByPrefix(key)
	if err != nil || chart == nil {
		return fmt.Errorf("chart not found: %s", key)
	}
	shots, err := db.GetShots(chart.Key)
	if err != nil {
		return fmt.Errorf("get shots: %w", err)
	}
	leagueZones, err := db.GetLeagueZones(chart.Season, chart.SeasonType)
	if err != nil {
		return fmt.Errorf("get league zones: %w", err)
	}

	report.PrintChartSummary(os.Stdout, *chart)
	report.PrintZoneTable(os.Stdout, hexbin.SubjectZoneStats(shots), hexbin.BaselineZoneRates(leagueZones))
	return nil
}
