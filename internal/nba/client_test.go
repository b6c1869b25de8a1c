package nba

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const shotChartBody = `{
	"resource": "shotchartdetail",
	"resultSets": [
		{
			"name": "Shot_Chart_Detail",
			"headers": ["GRID_TYPE", "PLAYER_ID", "SHOT_TYPE", "SHOT_ZONE_BASIC",
				"SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "SHOT_DISTANCE",
				"LOC_X", "LOC_Y", "SHOT_MADE_FLAG", "GAME_DATE"],
			"rowSet": [
				["Shot Chart Detail", 201939, "3PT Field Goal", "Above the Break 3",
					"Center(C)", "24+ ft.", 26, -15, 259, 1, "20231027"],
				["Shot Chart Detail", 201939, "2PT Field Goal", "Mid-Range",
					"Left Side(L)", "8-16 ft.", 12, -110, 60, 0, "20231027"]
			]
		},
		{
			"name": "LeagueAverages",
			"headers": ["GRID_TYPE", "SHOT_ZONE_BASIC", "SHOT_ZONE_AREA",
				"SHOT_ZONE_RANGE", "FGA", "FGM", "FG_PCT"],
			"rowSet": [
				["League Averages", "Above the Break 3", "Center(C)", "24+ ft.", 1000, 350, 0.35],
				["League Averages", "Mid-Range", "Left Side(L)", "8-16 ft.", 500, 200, 0.4]
			]
		}
	]
}`

const playersBody = `{
	"resource": "commonallplayers",
	"resultSets": [
		{
			"name": "CommonAllPlayers",
			"headers": ["PERSON_ID", "DISPLAY_LAST_COMMA_FIRST", "DISPLAY_FIRST_LAST",
				"ROSTERSTATUS", "FROM_YEAR", "TO_YEAR"],
			"rowSet": [
				[201939, "Curry, Stephen", "Stephen Curry", 1, "2009", "2023"],
				[2544, "James, LeBron", "LeBron James", 1, "2003", "2023"],
				[893, "Jordan, Michael", "Michael Jordan", 0, "1984", "2002"]
			]
		}
	]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient()
	c.baseURL = srv.URL
	return c
}

func TestShotChart(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shotchartdetail" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("PlayerID"); got != "201939" {
			t.Errorf("PlayerID param: want 201939, got %s", got)
		}
		if got := r.URL.Query().Get("ContextMeasure"); got != "FGA" {
			t.Errorf("ContextMeasure param: want FGA, got %s", got)
		}
		w.Write([]byte(shotChartBody))
	})

	events, zones, err := c.ShotChart(201939, "2023-24", SeasonTypeRegular)
	if err != nil {
		t.Fatalf("ShotChart: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	three := events[0]
	if three.LocX != -15 || three.LocY != 259 {
		t.Errorf("location: want (-15, 259), got (%f, %f)", three.LocX, three.LocY)
	}
	if !three.Made || three.Points != 3 {
		t.Errorf("want made 3PT, got made=%v points=%d", three.Made, three.Points)
	}
	if three.ZoneRange != "24+ ft." || three.ZoneArea != "Center(C)" {
		t.Errorf("zone: got (%q, %q)", three.ZoneRange, three.ZoneArea)
	}
	mid := events[1]
	if mid.Made || mid.Points != 2 || mid.Distance != 12 {
		t.Errorf("want missed 2PT from 12 ft, got %+v", mid)
	}

	if len(zones) != 2 {
		t.Fatalf("want 2 baseline zones, got %d", len(zones))
	}
	if zones[0].Made != 350 || zones[0].Attempts != 1000 {
		t.Errorf("baseline counts: want 350/1000, got %d/%d", zones[0].Made, zones[0].Attempts)
	}
}

func TestShotChart_HTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})
	if _, _, err := c.ShotChart(1, "2023-24", SeasonTypeRegular); err == nil {
		t.Error("want error on HTTP 400")
	}
}

func TestShotChart_MissingColumn(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets": [
			{"name": "Shot_Chart_Detail", "headers": ["LOC_X"], "rowSet": []},
			{"name": "LeagueAverages", "headers": [], "rowSet": []}
		]}`))
	})
	if _, _, err := c.ShotChart(1, "2023-24", SeasonTypeRegular); err == nil {
		t.Error("want error when a required column is missing")
	}
}

func TestSearchPlayers(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commonallplayers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(playersBody))
	})

	players, err := c.SearchPlayers("curry", "2023-24")
	if err != nil {
		t.Fatalf("SearchPlayers: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("want 1 match for %q, got %d", "curry", len(players))
	}
	p := players[0]
	if p.ID != 201939 || p.Name != "Stephen Curry" || !p.IsActive {
		t.Errorf("unexpected player record: %+v", p)
	}
	if p.FromYear != "2009" || p.ToYear != "2023" {
		t.Errorf("career span: got %s-%s", p.FromYear, p.ToYear)
	}
}
