// Package nba provides a minimal client for the stats.nba.com API.
package nba

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hooplab/shotchart/internal/model"
)

// baseURL is the root endpoint for the NBA stats API.
const baseURL = "https://stats.nba.com/stats"

// Season type labels accepted by the API.
const (
	SeasonTypeRegular  = "Regular Season"
	SeasonTypePlayoffs = "Playoffs"
)

// Client is a minimal stats.nba.com client. The API needs no key but rejects
// requests without browser-like headers.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a stats API client with a 30s request timeout.
func NewClient() *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ShotChart fetches every field-goal attempt for a player in a season along
// with the league-wide zone averages returned by the same endpoint.
func (c *Client) ShotChart(playerID int, season, seasonType string) ([]model.ShotEvent, []model.LeagueZone, error) {
	params := url.Values{
		"ContextMeasure":  {"FGA"},
		"LeagueID":        {"00"},
		"PlayerID":        {fmt.Sprint(playerID)},
		"Season":          {season},
		"SeasonType":      {seasonType},
		"TeamID":          {"0"},
		"Period":          {"0"},
		"LastNGames":      {"0"},
		"Month":           {"0"},
		"OpponentTeamID":  {"0"},
		"DateFrom":        {""},
		"DateTo":          {""},
		"GameID":          {""},
		"GameSegment":     {""},
		"Location":        {""},
		"Outcome":         {""},
		"PlayerPosition":  {""},
		"RookieYear":      {""},
		"SeasonSegment":   {""},
		"VsConference":    {""},
		"VsDivision":      {""},
	}

	sets, err := c.get("/shotchartdetail", params)
	if err != nil {
		return nil, nil, err
	}

	shots, err := sets.find("Shot_Chart_Detail")
	if err != nil {
		return nil, nil, err
	}
	events, err := decodeShots(shots)
	if err != nil {
		return nil, nil, err
	}

	averages, err := sets.find("LeagueAverages")
	if err != nil {
		return nil, nil, err
	}
	zones, err := decodeLeagueZones(averages)
	if err != nil {
		return nil, nil, err
	}
	return events, zones, nil
}

// SearchPlayers looks up players in the league index whose names contain the
// given string (case-insensitive). The index endpoint has no server-side
// search, so filtering happens here.
func (c *Client) SearchPlayers(name, season string) ([]model.Player, error) {
	params := url.Values{
		"IsOnlyCurrentSeason": {"0"},
		"LeagueID":            {"00"},
		"Season":              {season},
	}
	sets, err := c.get("/commonallplayers", params)
	if err != nil {
		return nil, err
	}
	index, err := sets.find("CommonAllPlayers")
	if err != nil {
		return nil, err
	}

	players, err := decodePlayers(index)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	var out []model.Player
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// get performs a GET request against the stats API and decodes the tabular
// resultSets payload.
func (c *Client) get(path string, params url.Values) (resultSets, error) {
	req, err := http.NewRequest("GET", c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}

	var body struct {
		ResultSets resultSets `json:"resultSets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return body.ResultSets, nil
}

// decodeShots maps Shot_Chart_Detail rows to ShotEvents.
func decodeShots(t *table) ([]model.ShotEvent, error) {
	cols, err := t.columns("LOC_X", "LOC_Y", "SHOT_MADE_FLAG", "SHOT_TYPE",
		"SHOT_ZONE_RANGE", "SHOT_ZONE_AREA", "SHOT_DISTANCE", "GAME_DATE")
	if err != nil {
		return nil, err
	}

	events := make([]model.ShotEvent, 0, len(t.RowSet))
	for i := range t.RowSet {
		row := t.row(i)
		points := 2
		if strings.HasPrefix(row.str(cols[3]), "3PT") {
			points = 3
		}
		events = append(events, model.ShotEvent{
			LocX:      row.f64(cols[0]),
			LocY:      row.f64(cols[1]),
			Made:      row.i64(cols[2]) != 0,
			Points:    points,
			ZoneRange: row.str(cols[4]),
			ZoneArea:  row.str(cols[5]),
			Distance:  int(row.i64(cols[6])),
			GameDate:  row.str(cols[7]),
		})
	}
	return events, nil
}

// decodeLeagueZones maps LeagueAverages rows to baseline records.
func decodeLeagueZones(t *table) ([]model.LeagueZone, error) {
	cols, err := t.columns("SHOT_ZONE_RANGE", "SHOT_ZONE_AREA", "FGM", "FGA")
	if err != nil {
		return nil, err
	}

	zones := make([]model.LeagueZone, 0, len(t.RowSet))
	for i := range t.RowSet {
		row := t.row(i)
		zones = append(zones, model.LeagueZone{
			ZoneRange: row.str(cols[0]),
			ZoneArea:  row.str(cols[1]),
			Made:      int(row.i64(cols[2])),
			Attempts:  int(row.i64(cols[3])),
		})
	}
	return zones, nil
}

// decodePlayers maps CommonAllPlayers rows to the league index.
func decodePlayers(t *table) ([]model.Player, error) {
	cols, err := t.columns("PERSON_ID", "DISPLAY_FIRST_LAST", "ROSTERSTATUS", "FROM_YEAR", "TO_YEAR")
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(t.RowSet))
	for i := range t.RowSet {
		row := t.row(i)
		players = append(players, model.Player{
			ID:       int(row.i64(cols[0])),
			Name:     row.str(cols[1]),
			IsActive: row.i64(cols[2]) != 0,
			FromYear: row.str(cols[3]),
			ToYear:   row.str(cols[4]),
		})
	}
	return players, nil
}
