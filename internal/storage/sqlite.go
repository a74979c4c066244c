// Package storage provides persistent storage for decoded DTED tiles:
// a local SQLite coverage index, a shared PostgreSQL catalog, and a
// ClickHouse table for bulk elevation analytics.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"dted_parser/internal/tile"
)

// TileRow is a tile summary as stored in the index, with its row id
// and index timestamp.
type TileRow struct {
	ID        int64
	IndexedAt string
	tile.Summary
}

// TileDB wraps a SQLite database holding the local tile index.
type TileDB struct {
	db *sql.DB
}

// OpenSQLite opens or creates a tile index database at the given path.
func OpenSQLite(path string) (*TileDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createTileSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &TileDB{db: db}, nil
}

// Close closes the database connection.
func (d *TileDB) Close() error {
	return d.db.Close()
}

func createTileSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		lat_origin_deg REAL NOT NULL,
		lon_origin_deg REAL NOT NULL,
		lat_interval_sec REAL NOT NULL,
		lon_interval_sec REAL NOT NULL,
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL,
		min_elevation INTEGER NOT NULL,
		max_elevation INTEGER NOT NULL,
		void_samples INTEGER NOT NULL,
		accuracy INTEGER,
		indexed_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_tiles_origin ON tiles(lat_origin_deg, lon_origin_deg);
	`
	_, err := db.Exec(schema)
	return err
}

// InsertTile records a tile summary, replacing any previous entry for
// the same path. Returns the row id.
func (d *TileDB) InsertTile(s tile.Summary) (int64, error) {
	var accuracy sql.NullInt64
	if s.Accuracy != nil {
		accuracy = sql.NullInt64{Int64: int64(*s.Accuracy), Valid: true}
	}

	result, err := d.db.Exec(`
		INSERT INTO tiles (path, lat_origin_deg, lon_origin_deg, lat_interval_sec, lon_interval_sec, rows, cols, min_elevation, max_elevation, void_samples, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			lat_origin_deg=excluded.lat_origin_deg,
			lon_origin_deg=excluded.lon_origin_deg,
			lat_interval_sec=excluded.lat_interval_sec,
			lon_interval_sec=excluded.lon_interval_sec,
			rows=excluded.rows,
			cols=excluded.cols,
			min_elevation=excluded.min_elevation,
			max_elevation=excluded.max_elevation,
			void_samples=excluded.void_samples,
			accuracy=excluded.accuracy,
			indexed_at=datetime('now')
	`, s.Path, s.LatOriginDeg, s.LonOriginDeg, s.LatIntervalSec, s.LonIntervalSec,
		s.Rows, s.Cols, s.MinElevation, s.MaxElevation, s.VoidSamples, accuracy)
	if err != nil {
		return 0, fmt.Errorf("insert tile: %w", err)
	}

	return result.LastInsertId()
}

// TileByPath returns the indexed tile for a path, or nil if absent.
func (d *TileDB) TileByPath(path string) (*TileRow, error) {
	row := d.db.QueryRow(`
		SELECT id, path, lat_origin_deg, lon_origin_deg, lat_interval_sec, lon_interval_sec, rows, cols, min_elevation, max_elevation, void_samples, accuracy, indexed_at
		FROM tiles WHERE path = ?
	`, path)

	t, err := scanTile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query tile: %w", err)
	}
	return t, nil
}

// ListTiles returns all indexed tiles ordered by origin.
func (d *TileDB) ListTiles() ([]TileRow, error) {
	rows, err := d.db.Query(`
		SELECT id, path, lat_origin_deg, lon_origin_deg, lat_interval_sec, lon_interval_sec, rows, cols, min_elevation, max_elevation, void_samples, accuracy, indexed_at
		FROM tiles ORDER BY lat_origin_deg, lon_origin_deg
	`)
	if err != nil {
		return nil, fmt.Errorf("query tiles: %w", err)
	}
	defer rows.Close()

	var out []TileRow
	for rows.Next() {
		t, err := scanTile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tile: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTile(s scanner) (*TileRow, error) {
	var t TileRow
	var accuracy sql.NullInt64
	err := s.Scan(&t.ID, &t.Path, &t.LatOriginDeg, &t.LonOriginDeg,
		&t.LatIntervalSec, &t.LonIntervalSec, &t.Rows, &t.Cols,
		&t.MinElevation, &t.MaxElevation, &t.VoidSamples, &accuracy, &t.IndexedAt)
	if err != nil {
		return nil, err
	}
	if accuracy.Valid {
		a := uint32(accuracy.Int64)
		t.Accuracy = &a
	}
	return &t, nil
}
