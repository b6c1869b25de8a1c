package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hooplab/shotchart/internal/chartcfg"
	"github.com/hooplab/shotchart/internal/hexbin"
	"github.com/hooplab/shotchart/internal/report"
	"github.com/hooplab/shotchart/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the chart database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("shotchart shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("shotchart")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <key-prefix>")
				continue
			}
			shellShow(db, args[0])
		case "chart":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: chart <key-prefix> [--top <n>]")
				continue
			}
			top := 25
			for i := 1; i+1 < len(args); i++ {
				if args[i] == "--top" {
					top, _ = strconv.Atoi(args[i+1])
				}
			}
			shellChart(db, args[0], top)
		case "trend":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: trend <key-prefix>")
				continue
			}
			shellTrend(db, args[0])
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored charts"},
		{"show <key-prefix>", "show a chart's zone breakdown"},
		{"chart <key-prefix> [--top <n>]", "aggregate a chart into hexagonal cells"},
		{"trend <key-prefix>", "chronological per-game shooting trend"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-34s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	charts, err := db.ListCharts()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(charts) == 0 {
		cMuted.Println("No charts stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-34s  %-24s  %-8s  %-14s  %6s  %s\n",
		"KEY", "PLAYER", "SEASON", "TYPE", "SHOTS", "FETCHED")
	for _, c := range charts {
		fmt.Fprintf(os.Stdout, "%-34s  %-24s  %-8s  %-14s  %6d  %s\n",
			c.Key, c.PlayerName, c.Season, c.SeasonType, c.ShotCount, c.FetchedAt)
	}
}

func shellShow(db *storage.DB, prefix string) {
	chart, err := db.GetChartByPrefix(prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if chart == nil {
		cWarn.Fprintf(os.Stderr, "no chart found with prefix %q\n", prefix)
		return
	}
	if err := showByKey(db, chart.Key); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func shellChart(db *storage.DB, prefix string, top int) {
	chart, shots, leagueZones, err := loadChartData(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if chart == nil {
		cWarn.Fprintf(os.Stderr, "no chart found with prefix %q\n", prefix)
		return
	}

	bins, err := hexbin.Aggregate(shots, leagueZones, chartcfg.Default().Hexbin())
	if err != nil {
		cError.Fprintf(os.Stderr, "aggregate: %v\n", err)
		return
	}

	report.PrintChartSummary(os.Stdout, *chart)
	fmt.Fprintf(os.Stdout, "%d occupied cells with league coverage\n\n", len(bins))
	report.PrintHexBinTable(os.Stdout, bins, top)
}

func shellTrend(db *storage.DB, prefix string) {
	chart, err := db.GetChartByPrefix(prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if chart == nil {
		cWarn.Fprintf(os.Stderr, "no chart found with prefix %q\n", prefix)
		return
	}
	shots, err := db.GetShots(chart.Key)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintChartSummary(os.Stdout, *chart)
	report.PrintGameTrendTable(os.Stdout, hexbin.GameStats(shots))
}
