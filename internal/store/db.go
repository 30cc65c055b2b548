package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"cogview/internal/config"
)

// DB wraps the SQLite connection backing the score cache.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens or creates the SQLite database at <root>/.cogview/cogview.db,
// creating the directory and schema as needed.
func Open(projectRoot string, logger *slog.Logger) (*DB, error) {
	dir := filepath.Join(projectRoot, config.ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.ConfigDirName, err)
	}

	dbPath := filepath.Join(dir, "cogview.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
		"PRAGMA temp_store=MEMORY",  // Use memory for temp tables
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug("database opened", "path", dbPath)
	return db, nil
}

// initializeSchema creates the tables the cache needs. Idempotent.
func (db *DB) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS score_cache (
		path         TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		language     TEXT NOT NULL,
		payload      BLOB NOT NULL,
		created_at   TEXT NOT NULL,
		PRIMARY KEY (path, content_hash)
	);

	CREATE INDEX IF NOT EXISTS idx_score_cache_path ON score_cache(path);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the on-disk location of the database file.
func (db *DB) Path() string {
	return db.dbPath
}
