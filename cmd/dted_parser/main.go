// Command-line entry point for the DTED parser.
//
// Commands
// --------
//
//	info    - decode a single DTED file and print its header and tile
//	          summary as JSON.
//	index   - walk a directory of .dt0/.dt1/.dt2 files, decode each one
//	          and record its summary in a local SQLite index; optionally
//	          announce each tile over NATS.
//	export  - decode a single file and push its catalog row to
//	          PostgreSQL and its full elevation grid to ClickHouse.
//
// The decoders themselves never touch the filesystem; all file reading
// happens here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dted_parser/internal/dted"
	"dted_parser/internal/ingest"
	"dted_parser/internal/storage"
	"dted_parser/internal/tile"
)

// InfoOut is the JSON document printed by the info command.
type InfoOut struct {
	Header  dted.RawDTEDHeader `json:"header"`
	Summary tile.Summary       `json:"summary"`
	Records int                `json:"records"`
}

// Stats counts index command outcomes.
type Stats struct {
	Scanned   int
	Indexed   int
	Failed    int
	Published int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "dted_parser - commands:")
	fmt.Fprintln(w, "  info    - decode one DTED file and print JSON")
	fmt.Fprintln(w, "  index   - index a directory of DTED files into SQLite")
	fmt.Fprintln(w, "  export  - export one DTED file to PostgreSQL + ClickHouse")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dted_parser info -input tile.dt2 [-pretty]")
	fmt.Fprintln(w, "  dted_parser index -input ./dted [-db tiles.db] [-nats nats://host:4222] [-stats]")
	fmt.Fprintln(w, "  dted_parser export -input tile.dt2 [-ch-host HOST] [-pg-host HOST] ...")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "info":
		runInfo(os.Args[2:])
	case "index":
		runIndex(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	inPath := fs.String("input", "", "DTED file to decode")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	_ = fs.Parse(args)

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "info: -input is required")
		os.Exit(2)
	}

	f, err := decodePath(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
	}

	out := InfoOut{
		Header:  f.Header,
		Summary: tile.Summarize(*inPath, f),
		Records: len(f.Records),
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = os.Stdout.Write(enc)
	_, _ = os.Stdout.Write([]byte("\n"))
}

func runIndex(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	inDir := fs.String("input", ".", "Directory to scan for DTED files")
	dbPath := fs.String("db", "tiles.db", "SQLite index database path")
	natsURL := fs.String("nats", "", "NATS server URL for tile announcements (optional)")
	natsSubject := fs.String("nats-subject", ingest.DefaultSubject, "NATS subject for tile announcements")
	showStats := fs.Bool("stats", false, "Print counters to stderr")
	_ = fs.Parse(args)

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open index: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var pub *ingest.Publisher
	if *natsURL != "" {
		pub, err = ingest.Connect(*natsURL, *natsSubject)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to NATS: %v\n", err)
			os.Exit(1)
		}
		defer pub.Close()
	}

	st := &Stats{}
	walkErr := filepath.WalkDir(*inDir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDTEDPath(path) {
			return nil
		}
		st.Scanned++

		f, err := decodePath(path)
		if err != nil {
			st.Failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return nil
		}

		s := tile.Summarize(path, f)
		if _, err := db.InsertTile(s); err != nil {
			st.Failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return nil
		}
		st.Indexed++

		if pub != nil {
			if err := pub.PublishTile(s); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			} else {
				st.Published++
			}
		}
		return nil
	})
	if walkErr != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", walkErr)
		os.Exit(1)
	}

	if *showStats {
		fmt.Fprintf(os.Stderr, "stats: scanned=%d indexed=%d failed=%d published=%d\n",
			st.Scanned, st.Indexed, st.Failed, st.Published)
	}
	if st.Failed > 0 {
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	inPath := fs.String("input", "", "DTED file to export")

	def := storage.DefaultConfig()
	chHost := fs.String("ch-host", envOrDefault("CLICKHOUSE_HOST", def.ClickHouse.Host), "ClickHouse host")
	chPort := fs.Int("ch-port", envOrDefaultInt("CLICKHOUSE_PORT", def.ClickHouse.Port), "ClickHouse port")
	chDB := fs.String("ch-database", envOrDefault("CLICKHOUSE_DATABASE", def.ClickHouse.Database), "ClickHouse database")
	chUser := fs.String("ch-user", envOrDefault("CLICKHOUSE_USER", def.ClickHouse.User), "ClickHouse user")
	chPassword := fs.String("ch-password", envOrDefault("CLICKHOUSE_PASSWORD", def.ClickHouse.Password), "ClickHouse password")

	pgHost := fs.String("pg-host", envOrDefault("POSTGRES_HOST", def.Postgres.Host), "PostgreSQL host")
	pgPort := fs.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", def.Postgres.Port), "PostgreSQL port")
	pgDB := fs.String("pg-database", envOrDefault("POSTGRES_DATABASE", def.Postgres.Database), "PostgreSQL database")
	pgUser := fs.String("pg-user", envOrDefault("POSTGRES_USER", def.Postgres.User), "PostgreSQL user")
	pgPassword := fs.String("pg-password", envOrDefault("POSTGRES_PASSWORD", def.Postgres.Password), "PostgreSQL password")
	_ = fs.Parse(args)

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "export: -input is required")
		os.Exit(2)
	}

	f, err := decodePath(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, storage.Config{
		ClickHouse: storage.ClickHouseConfig{
			Host: *chHost, Port: *chPort, Database: *chDB, User: *chUser, Password: *chPassword,
		},
		Postgres: storage.PostgresConfig{
			Host: *pgHost, Port: *pgPort, Database: *pgDB, User: *pgUser, Password: *pgPassword,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open databases: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.CreateSchemas(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create schemas: %v\n", err)
		os.Exit(1)
	}

	if err := db.PG.UpsertTile(ctx, tile.Summarize(*inPath, f)); err != nil {
		fmt.Fprintf(os.Stderr, "Catalog upsert failed: %v\n", err)
		os.Exit(1)
	}
	if err := db.CH.InsertFile(ctx, *inPath, f); err != nil {
		fmt.Fprintf(os.Stderr, "Elevation export failed: %v\n", err)
		os.Exit(1)
	}

	samples := 0
	for _, rec := range f.Records {
		samples += len(rec.Elevations)
	}
	fmt.Fprintf(os.Stderr, "exported %s: %d records, %d samples\n", *inPath, len(f.Records), samples)
}

func decodePath(path string) (*dted.RawDTEDFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dted.DecodeFile(buf)
}

func isDTEDPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dt0", ".dt1", ".dt2":
		return true
	}
	return false
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
