package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/arachnida/internal/model"
)

// HistoryDB stores completed crawl runs in a SQLite database.
//
// Design decision: We use a single database file for all runs rather than
// one file per run. This keeps the history subcommand a single query and
// simplifies backup/restore operations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "arachnida.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw refuses to create new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY during run inserts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per spider run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		host TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		recursive INTEGER NOT NULL DEFAULT 0,
		max_depth INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_host ON runs(host);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- One row per page fetch attempt within a run
	CREATE TABLE IF NOT EXISTS page_visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		depth INTEGER NOT NULL,
		ok INTEGER NOT NULL,
		error TEXT,
		image_refs INTEGER NOT NULL DEFAULT 0,
		link_refs INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON page_visits(run_id);

	-- One row per image download attempt within a run
	CREATE TABLE IF NOT EXISTS image_downloads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		page_url TEXT NOT NULL,
		filename TEXT NOT NULL,
		ok INTEGER NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_images_run ON image_downloads(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveCrawlResult stores one completed run with all its page and image
// records. The insert is transactional: a partial run never appears in the
// history.
func (hdb *HistoryDB) SaveCrawlResult(ctx context.Context, result *model.CrawlResult) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (seed, host, output_dir, recursive, max_depth, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Seed,
		result.Host,
		result.OutputDir,
		result.Recursive,
		result.MaxDepth,
		formatTimestamp(result.StartedAt),
		formatTimestamp(result.FinishedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, p := range result.Pages {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO page_visits (run_id, url, depth, ok, error, image_refs, link_refs)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, p.URL, p.Depth, p.OK, p.Error, p.ImageRefs, p.LinkRefs,
		); err != nil {
			return 0, fmt.Errorf("failed to insert page visit: %w", err)
		}
	}

	for _, img := range result.Images {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO image_downloads (run_id, url, page_url, filename, ok, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
			runID, img.URL, img.PageURL, img.Filename, img.OK, img.Error,
		); err != nil {
			return 0, fmt.Errorf("failed to insert image download: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RunSummary describes one stored run without its per-URL records.
// This is what the history listing shows.
type RunSummary struct {
	// ID is the run's database identifier.
	ID int64

	// Seed is the URL the run started from.
	Seed string

	// Host is the seed host.
	Host string

	// Recursive reports whether link following was enabled.
	Recursive bool

	// MaxDepth is the depth bound used, zero when recursion was disabled.
	MaxDepth int

	// StartedAt is when the run began.
	StartedAt time.Time

	// PagesFetched and PagesFailed count the run's page fetch attempts.
	PagesFetched int
	PagesFailed  int

	// ImagesDownloaded and ImagesFailed count the run's download attempts.
	ImagesDownloaded int
	ImagesFailed     int
}

// ListRuns returns stored runs, newest first. A limit of zero or less
// returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT r.id, r.seed, r.host, r.recursive, r.max_depth, r.started_at,
		(SELECT COUNT(*) FROM page_visits p WHERE p.run_id = r.id AND p.ok = 1),
		(SELECT COUNT(*) FROM page_visits p WHERE p.run_id = r.id AND p.ok = 0),
		(SELECT COUNT(*) FROM image_downloads i WHERE i.run_id = r.id AND i.ok = 1),
		(SELECT COUNT(*) FROM image_downloads i WHERE i.run_id = r.id AND i.ok = 0)
	FROM runs r
	ORDER BY r.started_at DESC, r.id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var s RunSummary
		var startedAt string
		if err := rows.Scan(
			&s.ID, &s.Seed, &s.Host, &s.Recursive, &s.MaxDepth, &startedAt,
			&s.PagesFetched, &s.PagesFailed, &s.ImagesDownloaded, &s.ImagesFailed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		s.StartedAt = parseTimestamp(startedAt)
		results = append(results, s)
	}

	return results, rows.Err()
}

// GetRun reconstructs one stored run with all its records.
// Returns nil without error when the id is unknown.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.CrawlResult, error) {
	var result model.CrawlResult
	var startedAt, finishedAt string

	err := hdb.db.QueryRowContext(ctx, `
	SELECT seed, host, output_dir, recursive, max_depth, started_at, finished_at
	FROM runs WHERE id = ?`, id).Scan(
		&result.Seed, &result.Host, &result.OutputDir,
		&result.Recursive, &result.MaxDepth, &startedAt, &finishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	result.StartedAt = parseTimestamp(startedAt)
	result.FinishedAt = parseTimestamp(finishedAt)

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT url, depth, ok, error, image_refs, link_refs
	FROM page_visits WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page visits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p model.PageVisit
		var errText sql.NullString
		if err := rows.Scan(&p.URL, &p.Depth, &p.OK, &errText, &p.ImageRefs, &p.LinkRefs); err != nil {
			return nil, fmt.Errorf("failed to scan page visit: %w", err)
		}
		p.Error = errText.String
		result.Pages = append(result.Pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	imgRows, err := hdb.db.QueryContext(ctx, `
	SELECT url, page_url, filename, ok, error
	FROM image_downloads WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get image downloads: %w", err)
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img model.ImageDownload
		var errText sql.NullString
		if err := imgRows.Scan(&img.URL, &img.PageURL, &img.Filename, &img.OK, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan image download: %w", err)
		}
		img.Error = errText.String
		result.Images = append(result.Images, img)
	}
	if err := imgRows.Err(); err != nil {
		return nil, err
	}

	return &result, nil
}

// formatTimestamp serializes a time for storage in UTC.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
