package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hooplab/shotchart/internal/model"
)

// PrintChartSummary prints a one-line summary header for a stored chart.
func PrintChartSummary(w io.Writer, s model.ChartSummary) {
	fmt.Fprintf(w, "\nPlayer: %s (%d)  |  Season: %s  |  Type: %s  |  Shots: %d  |  Key: %s\n\n",
		s.PlayerName, s.PlayerID, s.Season, s.SeasonType, s.ShotCount, s.Key)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintZoneTable prints per-zone subject stats next to the league baseline,
// ordered by attempts descending. Zones with no baseline coverage show a dash
// instead of a differential.
func PrintZoneTable(w io.Writer, zones map[model.ZoneKey]model.ShotStats, league map[model.ZoneKey]float64) {
	keys := make([]model.ZoneKey, 0, len(zones))
	for k := range zones {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := zones[keys[i]], zones[keys[j]]
		if a.Attempts != b.Attempts {
			return a.Attempts > b.Attempts
		}
		return keys[i].Less(keys[j])
	})

	table := newTable(w)
	table.Header("ZONE", "FGA", "FG%", "PTS", "PPS", "LEAGUE_FG%", "DIFF")

	for _, k := range keys {
		s := zones[k]
		leagueStr, diffStr := "—", "—"
		if rate, ok := league[k]; ok {
			leagueStr = fmt.Sprintf("%.1f%%", rate*100)
			diffStr = fmt.Sprintf("%+.1f%%", (s.SuccessRate-rate)*100)
		}
		table.Append(
			k.String(),
			strconv.Itoa(s.Attempts),
			fmt.Sprintf("%.1f%%", s.SuccessRate*100),
			fmt.Sprintf("%.0f", s.PointsScored),
			fmt.Sprintf("%.2f", s.PointsPerShot),
			leagueStr,
			diffStr,
		)
	}
	table.Render()
}

// PrintHexBinTable prints the busiest hexagonal cells of a computed chart.
// top limits the row count; top <= 0 prints everything.
func PrintHexBinTable(w io.Writer, bins []model.HexBin, top int) {
	sorted := make([]model.HexBin, len(bins))
	copy(sorted, bins)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CellStats.Attempts != sorted[j].CellStats.Attempts {
			return sorted[i].CellStats.Attempts > sorted[j].CellStats.Attempts
		}
		return sorted[i].CellID < sorted[j].CellID
	})
	if top > 0 && len(sorted) > top {
		sorted = sorted[:top]
	}

	table := newTable(w)
	table.Header("CELL", "X", "Y", "FGA", "FG%", "PPS", "ZONE", "ZONE_FG%", "LEAGUE_FG%", "DIFF", "RADIUS")

	for _, b := range sorted {
		table.Append(
			strconv.Itoa(b.CellID),
			fmt.Sprintf("%.0f", b.Centroid.X),
			fmt.Sprintf("%.0f", b.Centroid.Y),
			strconv.Itoa(b.CellStats.Attempts),
			fmt.Sprintf("%.1f%%", b.CellStats.SuccessRate*100),
			fmt.Sprintf("%.2f", b.CellStats.PointsPerShot),
			b.Zone.String(),
			fmt.Sprintf("%.1f%%", b.ZoneSuccessRate*100),
			fmt.Sprintf("%.1f%%", b.LeagueSuccessRate*100),
			fmt.Sprintf("%+.1f%%", b.RateDifferential*100),
			fmt.Sprintf("%.2f", b.RadiusFactor),
		)
	}
	table.Render()
}

// PrintGameTrendTable prints chronological per-game shooting lines.
func PrintGameTrendTable(w io.Writer, games map[string]model.ShotStats) {
	dates := make([]string, 0, len(games))
	for d := range games {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	table := newTable(w)
	table.Header("DATE", "FGA", "FG%", "PTS", "PPS")

	for _, d := range dates {
		s := games[d]
		table.Append(
			d,
			strconv.Itoa(s.Attempts),
			fmt.Sprintf("%.1f%%", s.SuccessRate*100),
			fmt.Sprintf("%.0f", s.PointsScored),
			fmt.Sprintf("%.2f", s.PointsPerShot),
		)
	}
	table.Render()
}

// PrintPlayerTable prints league-index search results.
func PrintPlayerTable(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("ID", "NAME", "ACTIVE", "CAREER")

	for _, p := range players {
		active := " "
		if p.IsActive {
			active = "yes"
		}
		table.Append(
			strconv.Itoa(p.ID),
			p.Name,
			active,
			fmt.Sprintf("%s–%s", p.FromYear, p.ToYear),
		)
	}
	table.Render()
}
