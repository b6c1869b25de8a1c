package storage

import (
	"database/sql"
	"fmt"

	"github.com/hooplab/shotchart/internal/model"
)

// ChartExists returns true if a chart with the given key is already stored.
func (db *DB) ChartExists(key string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM charts WHERE key = ?", key).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertChart inserts a chart record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertChart(summary model.ChartSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO charts(key, player_id, player_name, season, season_type, shot_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.Key, summary.PlayerID, summary.PlayerName,
		summary.Season, summary.SeasonType, summary.ShotCount, summary.FetchedAt,
	)
	return err
}

// InsertShots replaces the stored shot population for a chart in a transaction.
func (db *DB) InsertShots(chartKey string, shots []model.ShotEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM shots WHERE chart_key = ?", chartKey); err != nil {
		return fmt.Errorf("clear shots for %s: %w", chartKey, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO shots(chart_key, loc_x, loc_y, made, points, zone_range, zone_area, shot_distance, game_date)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range shots {
		_, err = stmt.Exec(
			chartKey, s.LocX, s.LocY, boolInt(s.Made), s.Points,
			s.ZoneRange, s.ZoneArea, s.Distance, s.GameDate,
		)
		if err != nil {
			return fmt.Errorf("insert shot for %s: %w", chartKey, err)
		}
	}
	return tx.Commit()
}

// InsertLeagueZones upserts the baseline zone records for a season in a transaction.
func (db *DB) InsertLeagueZones(season, seasonType string, zones []model.LeagueZone) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO league_zones(season, season_type, zone_range, zone_area, made, attempts)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, z := range zones {
		if _, err := stmt.Exec(season, seasonType, z.ZoneRange, z.ZoneArea, z.Made, z.Attempts); err != nil {
			return fmt.Errorf("insert league zone %s/%s: %w", z.ZoneRange, z.ZoneArea, err)
		}
	}
	return tx.Commit()
}

// ListCharts returns all stored chart summaries ordered by fetch time desc.
func (db *DB) ListCharts() ([]model.ChartSummary, error) {
	rows, err := db.conn.Query(`
		SELECT key, player_id, player_name, season, season_type, shot_count, fetched_at
		FROM charts ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChartSummary
	for rows.Next() {
		var s model.ChartSummary
		if err := rows.Scan(&s.Key, &s.PlayerID, &s.PlayerName,
			&s.Season, &s.SeasonType, &s.ShotCount, &s.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetChartByPrefix finds the first chart whose key starts with the given prefix.
func (db *DB) GetChartByPrefix(prefix string) (*model.ChartSummary, error) {
	var s model.ChartSummary
	err := db.conn.QueryRow(`
		SELECT key, player_id, player_name, season, season_type, shot_count, fetched_at
		FROM charts WHERE key LIKE ? LIMIT 1`, prefix+"%").
		Scan(&s.Key, &s.PlayerID, &s.PlayerName,
			&s.Season, &s.SeasonType, &s.ShotCount, &s.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetShots returns the stored shot population for a chart.
func (db *DB) GetShots(chartKey string) ([]model.ShotEvent, error) {
	rows, err := db.conn.Query(`
		SELECT loc_x, loc_y, made, points, zone_range, zone_area, shot_distance, game_date
		FROM shots WHERE chart_key = ?`, chartKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ShotEvent
	for rows.Next() {
		var s model.ShotEvent
		var madeInt int
		if err := rows.Scan(&s.LocX, &s.LocY, &madeInt, &s.Points,
			&s.ZoneRange, &s.ZoneArea, &s.Distance, &s.GameDate); err != nil {
			return nil, err
		}
		s.Made = madeInt != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetLeagueZones returns the stored baseline records for a season.
func (db *DB) GetLeagueZones(season, seasonType string) ([]model.LeagueZone, error) {
	rows, err := db.conn.Query(`
		SELECT zone_range, zone_area, made, attempts
		FROM league_zones WHERE season = ? AND season_type = ?`, season, seasonType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LeagueZone
	for rows.Next() {
		var z model.LeagueZone
		if err := rows.Scan(&z.ZoneRange, &z.ZoneArea, &z.Made, &z.Attempts); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

// DeleteChart removes a chart and its shots.
func (db *DB) DeleteChart(key string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM shots WHERE chart_key = ?", key); err != nil {
		return fmt.Errorf("delete shots for %s: %w", key, err)
	}
	if _, err := tx.Exec("DELETE FROM charts WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete chart %s: %w", key, err)
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and rows with
// every value rendered as a string. NULLs come back as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
