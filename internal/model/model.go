package model

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
)

// ---- Raw records supplied by the NBA stats client ----

// ShotEvent is one field-goal attempt at a court location. Coordinates are in
// the stats API's court units (tenths of feet, origin at the basket).
type ShotEvent struct {
	LocX, LocY float64
	Made       bool
	Points     int // 2 or 3
	ZoneRange  string
	ZoneArea   string

	// Context carried for storage/display; the hexbin core ignores these.
	Distance int
	GameDate string
}

// ZoneKey identifies a coarse pre-labeled court region (range x area),
// independent of the hexagonal lattice.
type ZoneKey struct {
	Range string
	Area  string
}

func (k ZoneKey) String() string {
	return k.Range + " / " + k.Area
}

// Less orders zone keys lexicographically by range then area. This is the
// tie-break order used when a cell's shots split evenly across zones.
func (k ZoneKey) Less(o ZoneKey) bool {
	if k.Range != o.Range {
		return k.Range < o.Range
	}
	return k.Area < o.Area
}

// LeagueZone is one pre-aggregated baseline record: league-wide makes and
// attempts for a single zone. The baseline population is these summaries,
// never raw events.
type LeagueZone struct {
	ZoneRange string
	ZoneArea  string
	Made      int
	Attempts  int
}

func (z LeagueZone) Key() ZoneKey {
	return ZoneKey{Range: z.ZoneRange, Area: z.ZoneArea}
}

// ---- Aggregated statistics ----

// ShotStats is the common aggregate shape shared by cells and zones.
type ShotStats struct {
	Attempts      int
	SuccessRate   float64 // mean(made)
	PointsScored  float64 // sum(made * points)
	PointsPerShot float64 // mean(made * points)
}

// HexBin is one occupied hexagonal cell joined with its zone's subject and
// baseline statistics, ready for a drawing layer. Records are immutable once
// built and carry no reference to how they will be rendered.
type HexBin struct {
	CellID   int
	Centroid r2.Point

	// Polygon is the raw hexagon (6 vertices, unclosed, counterclockwise
	// starting from the lower-right corner). AdjustedPolygon is the same
	// hexagon scaled toward the centroid by RadiusFactor.
	Polygon         []r2.Point
	AdjustedPolygon []r2.Point

	// CellStats covers only the shots assigned to this cell; the Zone*
	// metrics below cover the cell's whole representative zone.
	CellStats ShotStats
	Zone      ZoneKey

	ZoneSuccessRate   float64 // subject FG% over the whole zone
	ZonePointsPerShot float64 // subject PPS over the whole zone
	LeagueSuccessRate float64 // baseline FG% for the zone

	// Display metrics, clamped into the configured bounds.
	RateDifferential float64 // zone FG% - league FG%
	BoundedRate      float64
	BoundedPPS       float64

	RadiusFactor float64
}

// ---- Stored chart metadata ----

// ChartSummary is a lightweight record for list/show commands: one fetched
// (player, season, season type) shot population.
type ChartSummary struct {
	Key        string
	PlayerID   int
	PlayerName string
	Season     string
	SeasonType string
	ShotCount  int
	FetchedAt  string
}

// ChartKey builds the storage key for a fetched chart,
// e.g. "201939-2023-24-regular-season".
func ChartKey(playerID int, season, seasonType string) string {
	slug := strings.ToLower(strings.ReplaceAll(seasonType, " ", "-"))
	return fmt.Sprintf("%d-%s-%s", playerID, season, slug)
}

// Player is a minimal league-index entry used by name lookups.
type Player struct {
	ID       int
	Name     string
	IsActive bool
	FromYear string
	ToYear   string
}
