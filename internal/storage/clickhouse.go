package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"dted_parser/internal/dted"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for bulk elevation
// analytics.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying ClickHouse connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	// Test the connection.
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS elevations (
		tile        LowCardinality(String),
		lon_line    UInt16,
		lat_line    UInt16,
		latitude    Float64,
		longitude   Float64,
		elevation   Int16,
		inserted_at DateTime DEFAULT now()
	)
	ENGINE = MergeTree()
	PARTITION BY tile
	ORDER BY (tile, lon_line, lat_line)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertFile stores the full elevation grid of a decoded file,
// georeferencing each sample from the header's origin and intervals.
// tileName identifies the source tile (typically its file path).
func (d *ClickHouseDB) InsertFile(ctx context.Context, tileName string, f *dted.RawDTEDFile) error {
	if len(f.Records) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO elevations (tile, lon_line, lat_line, latitude, longitude, elevation)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	latOrigin := f.Header.Origin.Lat.Decimal()
	lonOrigin := f.Header.Origin.Lon.Decimal()
	// Intervals are stored in tenths of an arc second; one degree is
	// 36000 of those.
	latStep := float64(f.Header.IntervalSecsX10.Lat) / 36000
	lonStep := float64(f.Header.IntervalSecsX10.Lon) / 36000

	for lon, rec := range f.Records {
		longitude := lonOrigin + float64(lon)*lonStep
		for lat, elev := range rec.Elevations {
			latitude := latOrigin + float64(lat)*latStep
			if err := batch.Append(tileName, uint16(lon), uint16(lat), latitude, longitude, elev); err != nil {
				return fmt.Errorf("append to batch: %w", err)
			}
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}
