package storage

import (
	"path/filepath"
	"testing"

	"dted_parser/internal/tile"
)

func openTestDB(t *testing.T) *TileDB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "tiles.db"))
	if err != nil {
		t.Fatalf("OpenSQLite error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndLookupTile(t *testing.T) {
	db := openTestDB(t)

	acc := uint32(4)
	s := tile.Summary{
		Path:           "dted/w118/n36.dt2",
		LatOriginDeg:   36,
		LonOriginDeg:   -118,
		LatIntervalSec: 1,
		LonIntervalSec: 1,
		Rows:           3601,
		Cols:           3601,
		MinElevation:   -86,
		MaxElevation:   4418,
		VoidSamples:    12,
		Accuracy:       &acc,
	}

	id, err := db.InsertTile(s)
	if err != nil {
		t.Fatalf("InsertTile error = %v", err)
	}
	if id == 0 {
		t.Errorf("row id = 0, want non-zero")
	}

	got, err := db.TileByPath(s.Path)
	if err != nil {
		t.Fatalf("TileByPath error = %v", err)
	}
	if got == nil {
		t.Fatalf("TileByPath returned nil for stored tile")
	}
	if got.Summary.Path != s.Path || got.Rows != s.Rows || got.MinElevation != s.MinElevation {
		t.Errorf("stored tile = %+v, want %+v", got.Summary, s)
	}
	if got.Accuracy == nil || *got.Accuracy != acc {
		t.Errorf("Accuracy = %v, want %d", got.Accuracy, acc)
	}
	if got.IndexedAt == "" {
		t.Errorf("IndexedAt empty, want timestamp")
	}
}

func TestTileByPathMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.TileByPath("nope.dt1")
	if err != nil {
		t.Fatalf("TileByPath error = %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for unknown path", got)
	}
}

func TestInsertTileReplacesByPath(t *testing.T) {
	db := openTestDB(t)

	s := tile.Summary{Path: "n36_w118.dt1", Rows: 1201, Cols: 1201}
	if _, err := db.InsertTile(s); err != nil {
		t.Fatalf("InsertTile error = %v", err)
	}

	// Re-indexing the same path updates in place. Accuracy nil maps to
	// NULL.
	s.MaxElevation = 2500
	if _, err := db.InsertTile(s); err != nil {
		t.Fatalf("InsertTile (update) error = %v", err)
	}

	tiles, err := db.ListTiles()
	if err != nil {
		t.Fatalf("ListTiles error = %v", err)
	}
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	if tiles[0].MaxElevation != 2500 {
		t.Errorf("MaxElevation = %d, want 2500", tiles[0].MaxElevation)
	}
	if tiles[0].Accuracy != nil {
		t.Errorf("Accuracy = %v, want nil", tiles[0].Accuracy)
	}
}

func TestListTilesOrdering(t *testing.T) {
	db := openTestDB(t)

	for _, s := range []tile.Summary{
		{Path: "n46_w118.dt1", LatOriginDeg: 46, LonOriginDeg: -118},
		{Path: "n36_w118.dt1", LatOriginDeg: 36, LonOriginDeg: -118},
		{Path: "n36_w119.dt1", LatOriginDeg: 36, LonOriginDeg: -119},
	} {
		if _, err := db.InsertTile(s); err != nil {
			t.Fatalf("InsertTile(%s) error = %v", s.Path, err)
		}
	}

	tiles, err := db.ListTiles()
	if err != nil {
		t.Fatalf("ListTiles error = %v", err)
	}
	wantOrder := []string{"n36_w119.dt1", "n36_w118.dt1", "n46_w118.dt1"}
	if len(tiles) != len(wantOrder) {
		t.Fatalf("got %d tiles, want %d", len(tiles), len(wantOrder))
	}
	for i, want := range wantOrder {
		if tiles[i].Path != want {
			t.Errorf("tiles[%d].Path = %q, want %q", i, tiles[i].Path, want)
		}
	}
}
