package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dted_parser/internal/tile"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool for the shared tile
// catalog.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Test the connection.
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the catalog tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tiles (
		path                TEXT PRIMARY KEY,
		lat_origin_deg      DOUBLE PRECISION NOT NULL,
		lon_origin_deg      DOUBLE PRECISION NOT NULL,
		lat_interval_sec    DOUBLE PRECISION NOT NULL,
		lon_interval_sec    DOUBLE PRECISION NOT NULL,
		rows                INTEGER NOT NULL,
		cols                INTEGER NOT NULL,
		min_elevation       SMALLINT NOT NULL,
		max_elevation       SMALLINT NOT NULL,
		void_samples        INTEGER NOT NULL,
		accuracy            INTEGER,
		first_indexed       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_indexed        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_tiles_origin ON tiles(lat_origin_deg, lon_origin_deg);
	`
	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertTile inserts or refreshes a catalog entry for a tile.
func (d *PostgresDB) UpsertTile(ctx context.Context, s tile.Summary) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO tiles (path, lat_origin_deg, lon_origin_deg, lat_interval_sec, lon_interval_sec, rows, cols, min_elevation, max_elevation, void_samples, accuracy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (path) DO UPDATE SET
			lat_origin_deg = EXCLUDED.lat_origin_deg,
			lon_origin_deg = EXCLUDED.lon_origin_deg,
			lat_interval_sec = EXCLUDED.lat_interval_sec,
			lon_interval_sec = EXCLUDED.lon_interval_sec,
			rows = EXCLUDED.rows,
			cols = EXCLUDED.cols,
			min_elevation = EXCLUDED.min_elevation,
			max_elevation = EXCLUDED.max_elevation,
			void_samples = EXCLUDED.void_samples,
			accuracy = EXCLUDED.accuracy,
			last_indexed = NOW()
	`, s.Path, s.LatOriginDeg, s.LonOriginDeg, s.LatIntervalSec, s.LonIntervalSec,
		s.Rows, s.Cols, s.MinElevation, s.MaxElevation, s.VoidSamples, s.Accuracy)
	if err != nil {
		return fmt.Errorf("upsert tile: %w", err)
	}
	return nil
}

// TilesInBounds returns catalog entries whose origin lies inside the
// given bounding box (inclusive).
func (d *PostgresDB) TilesInBounds(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]tile.Summary, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT path, lat_origin_deg, lon_origin_deg, lat_interval_sec, lon_interval_sec, rows, cols, min_elevation, max_elevation, void_samples, accuracy
		FROM tiles
		WHERE lat_origin_deg BETWEEN $1 AND $2
		  AND lon_origin_deg BETWEEN $3 AND $4
		ORDER BY lat_origin_deg, lon_origin_deg
	`, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, fmt.Errorf("query tiles: %w", err)
	}
	defer rows.Close()

	var out []tile.Summary
	for rows.Next() {
		var s tile.Summary
		if err := rows.Scan(&s.Path, &s.LatOriginDeg, &s.LonOriginDeg,
			&s.LatIntervalSec, &s.LonIntervalSec, &s.Rows, &s.Cols,
			&s.MinElevation, &s.MaxElevation, &s.VoidSamples, &s.Accuracy); err != nil {
			return nil, fmt.Errorf("scan tile: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
