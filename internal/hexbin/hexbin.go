package hexbin

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/hooplab/shotchart/internal/model"
)

// Bounds is an inclusive display range for a clamped metric.
type Bounds struct {
	Lo, Hi float64
}

// Clamp bounds v into [Lo, Hi].
func (b Bounds) Clamp(v float64) float64 {
	return math.Min(b.Hi, math.Max(b.Lo, v))
}

// Config holds the chart parameters the caller supplies. The core carries no
// defaults; those belong to the CLI layer.
type Config struct {
	BinWidthX, BinWidthY float64

	// MinRadiusFactor is the hexagon shrink floor, so single-attempt cells
	// stay visible.
	MinRadiusFactor float64

	RateDiffBounds Bounds // zone FG% minus league FG%
	RateBounds     Bounds // zone FG%
	PPSBounds      Bounds // zone points per shot
}

// cellAccum collects one cell's shots before stats are derived.
type cellAccum struct {
	attempts     int
	made         int
	pointsScored int
	zoneCounts   map[model.ZoneKey]int
}

// Aggregate runs the whole pipeline over one batch: lattice derivation, cell
// assignment, cell and zone aggregation, the zone/baseline join, geometry,
// and metric normalization. It is a pure single-pass batch computation; each
// call produces a fresh, independent record set.
//
// An empty events batch returns ErrEmptyInput. A non-empty batch where every
// cell is dropped by the baseline join returns an empty slice, not an error.
func Aggregate(events []model.ShotEvent, baseline []model.LeagueZone, cfg Config) ([]model.HexBin, error) {
	if len(events) == 0 {
		return nil, ErrEmptyInput
	}

	points := make([]r2.Point, len(events))
	for i, ev := range events {
		points[i] = r2.Point{X: ev.LocX, Y: ev.LocY}
	}
	lattice, err := NewLattice(points, cfg.BinWidthX, cfg.BinWidthY)
	if err != nil {
		return nil, err
	}

	// ---- Pass 1: assign events to cells and accumulate per-cell counts. ----

	cells := make(map[int]*cellAccum)
	for _, ev := range events {
		id := lattice.CellID(ev.LocX, ev.LocY)
		acc := cells[id]
		if acc == nil {
			acc = &cellAccum{zoneCounts: make(map[model.ZoneKey]int)}
			cells[id] = acc
		}
		acc.attempts++
		if ev.Made {
			acc.made++
			acc.pointsScored += ev.Points
		}
		acc.zoneCounts[model.ZoneKey{Range: ev.ZoneRange, Area: ev.ZoneArea}]++
	}

	// ---- Pass 2: subject zone stats over the whole population. ----

	zoneStats := SubjectZoneStats(events)

	// ---- Pass 3: baseline zone rates. ----

	leagueRates := BaselineZoneRates(baseline)

	// ---- Pass 4: join, geometry, normalization. ----

	// Busiest cell over ALL occupied cells, including ones the join drops,
	// so the size scale does not shift when a zone lacks baseline coverage.
	maxAttempts := 0
	for _, acc := range cells {
		if acc.attempts > maxAttempts {
			maxAttempts = acc.attempts
		}
	}

	ids := make([]int, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]model.HexBin, 0, len(ids))
	for _, id := range ids {
		acc := cells[id]
		zone := representativeZone(acc.zoneCounts)

		// Inner-join semantics: a cell whose zone is missing from either the
		// subject or the baseline aggregates is excluded, not errored.
		zs, ok := zoneStats[zone]
		if !ok {
			continue
		}
		leagueRate, ok := leagueRates[zone]
		if !ok {
			continue
		}

		factor := radiusFactor(cfg.MinRadiusFactor, acc.attempts, maxAttempts)
		centroid := lattice.CellCenter(id)
		polygon := lattice.CellVertices(id)

		out = append(out, model.HexBin{
			CellID:          id,
			Centroid:        centroid,
			Polygon:         polygon,
			AdjustedPolygon: scaleTowardCentroid(polygon, centroid, factor),
			CellStats: model.ShotStats{
				Attempts:      acc.attempts,
				SuccessRate:   float64(acc.made) / float64(acc.attempts),
				PointsScored:  float64(acc.pointsScored),
				PointsPerShot: float64(acc.pointsScored) / float64(acc.attempts),
			},
			Zone:              zone,
			ZoneSuccessRate:   zs.SuccessRate,
			ZonePointsPerShot: zs.PointsPerShot,
			LeagueSuccessRate: leagueRate,
			RateDifferential:  cfg.RateDiffBounds.Clamp(zs.SuccessRate - leagueRate),
			BoundedRate:       cfg.RateBounds.Clamp(zs.SuccessRate),
			BoundedPPS:        cfg.PPSBounds.Clamp(zs.PointsPerShot),
			RadiusFactor:      factor,
		})
	}
	return out, nil
}

// SubjectZoneStats groups the whole event batch by zone key and computes the
// four aggregate statistics per zone, independent of cell boundaries.
func SubjectZoneStats(events []model.ShotEvent) map[model.ZoneKey]model.ShotStats {
	type zoneAccum struct {
		attempts, made, points int
	}
	accums := make(map[model.ZoneKey]*zoneAccum)
	for _, ev := range events {
		key := model.ZoneKey{Range: ev.ZoneRange, Area: ev.ZoneArea}
		acc := accums[key]
		if acc == nil {
			acc = &zoneAccum{}
			accums[key] = acc
		}
		acc.attempts++
		if ev.Made {
			acc.made++
			acc.points += ev.Points
		}
	}

	stats := make(map[model.ZoneKey]model.ShotStats, len(accums))
	for key, acc := range accums {
		stats[key] = model.ShotStats{
			Attempts:      acc.attempts,
			SuccessRate:   float64(acc.made) / float64(acc.attempts),
			PointsScored:  float64(acc.points),
			PointsPerShot: float64(acc.points) / float64(acc.attempts),
		}
	}
	return stats
}

// GameStats groups the event batch by game date and computes per-game
// shooting lines. Events without a date fall under the empty key.
func GameStats(events []model.ShotEvent) map[string]model.ShotStats {
	type gameAccum struct {
		attempts, made, points int
	}
	accums := make(map[string]*gameAccum)
	for _, ev := range events {
		acc := accums[ev.GameDate]
		if acc == nil {
			acc = &gameAccum{}
			accums[ev.GameDate] = acc
		}
		acc.attempts++
		if ev.Made {
			acc.made++
			acc.points += ev.Points
		}
	}

	stats := make(map[string]model.ShotStats, len(accums))
	for date, acc := range accums {
		stats[date] = model.ShotStats{
			Attempts:      acc.attempts,
			SuccessRate:   float64(acc.made) / float64(acc.attempts),
			PointsScored:  float64(acc.points),
			PointsPerShot: float64(acc.points) / float64(acc.attempts),
		}
	}
	return stats
}

// BaselineZoneRates reduces pre-aggregated baseline records to a success rate
// per zone. A zone whose attempts sum to zero has an undefined rate and is
// omitted; HasBaseline is the filtering predicate.
func BaselineZoneRates(baseline []model.LeagueZone) map[model.ZoneKey]float64 {
	type sums struct{ made, attempts int }
	bySums := make(map[model.ZoneKey]*sums)
	for _, z := range baseline {
		key := z.Key()
		s := bySums[key]
		if s == nil {
			s = &sums{}
			bySums[key] = s
		}
		s.made += z.Made
		s.attempts += z.Attempts
	}

	rates := make(map[model.ZoneKey]float64, len(bySums))
	for key, s := range bySums {
		if !HasBaseline(s.attempts) {
			continue
		}
		rates[key] = float64(s.made) / float64(s.attempts)
	}
	return rates
}

// HasBaseline reports whether a zone's baseline rate is defined.
func HasBaseline(attempts int) bool {
	return attempts > 0
}

// representativeZone picks the zone with the most shots in the cell. Equal
// counts are broken by lexicographic (range, area) order, a total order
// independent of arrival order, so results are stable under reordered input.
func representativeZone(counts map[model.ZoneKey]int) model.ZoneKey {
	var best model.ZoneKey
	bestCount := -1
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key.Less(best)) {
			best, bestCount = key, n
		}
	}
	return best
}

// radiusFactor maps a cell's attempt count onto [min, 1] with a log scale
// against the busiest cell, so counts that vary by orders of magnitude still
// produce visually comparable hexagons.
func radiusFactor(min float64, attempts, maxAttempts int) float64 {
	scale := math.Log(float64(attempts)+1) / math.Log(float64(maxAttempts)+1)
	return min + (1-min)*scale
}

// scaleTowardCentroid shrinks every vertex toward the centroid uniformly.
func scaleTowardCentroid(polygon []r2.Point, centroid r2.Point, factor float64) []r2.Point {
	out := make([]r2.Point, len(polygon))
	for i, p := range polygon {
		out[i] = centroid.Add(p.Sub(centroid).Mul(factor))
	}
	return out
}
