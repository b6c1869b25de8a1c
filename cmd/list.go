package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored shot charts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	charts, err := db.ListCharts()
	if err != nil {
		return fmt.Errorf("list charts: %w", err)
	}
	if len(charts) == 0 {
		fmt.Fprintln(os.Stdout, "No charts stored yet. Run 'shotchart fetch' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-34s  %-24s  %-8s  %-14s  %6s  %s\n",
		"KEY", "PLAYER", "SEASON", "TYPE", "SHOTS", "FETCHED")
	fmt.Fprintf(os.Stdout, "%-34s  %-24s  %-8s  %-14s  %6s  %s\n",
		"──────────────────────────────────", "────────────────────────", "────────", "──────────────", "──────", "───────")
	for _, c := range charts {
		fmt.Fprintf(os.Stdout, "%-34s  %-24s  %-8s  %-14s  %6d  %s\n",
			c.Key, c.PlayerName, c.Season, c.SeasonType, c.ShotCount, c.FetchedAt)
	}
	return nil
}
