package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/nba"
	"github.com/hooplab/shotchart/internal/report"
)

// players command flags.
var (
	// playersSeason limits the index to players active in a season.
	playersSeason string
)

var playersCmd = &cobra.Command{
	Use:   "players <name>",
	Short: "Search the league player index by name",
	Long: `Searches the league-wide player index for names containing the given
substring and prints the matching ids.

Example:
  shotchart players curry --season 2023-24`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayers,
}

func init() {
	playersCmd.Flags().StringVar(&playersSeason, "season", "", "season label, e.g. 2023-24 (required)")
}

func runPlayers(cmd *cobra.Command, args []string) error {
	if playersSeason == "" {
		return fmt.Errorf("no season specified: use --season")
	}

	client := nba.NewClient()
	matches, err := client.SearchPlayers(args[0], playersSeason)
	if err != nil {
		return fmt.Errorf("search players: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintf(os.Stdout, "No players match %q.\n", args[0])
		return nil
	}

	report.PrintPlayerTable(os.Stdout, matches)
	return nil
}
