package store

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/klauspost/compress/gzip"

	"cogview/internal/cognitive"
	cogerrors "cogview/internal/errors"
)

// Cache stores per-file score reports keyed by path and content hash.
// A stale entry for a path is simply never hit again once the file's
// content changes; Prune removes the leftovers.
type Cache struct {
	db     *DB
	logger *slog.Logger
}

// NewCache creates a cache backed by the given database.
func NewCache(db *DB, logger *slog.Logger) *Cache {
	return &Cache{db: db, logger: logger}
}

// HashContent returns the cache key component derived from file content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get retrieves the cached report for a path at a specific content hash.
// Returns false when no entry exists. A stored entry that can no longer
// be decoded is deleted and reported as an error.
func (c *Cache) Get(path, contentHash string) (*cognitive.FileOutput, bool, error) {
	var payload []byte

	err := c.db.conn.QueryRow(`
		SELECT payload
		FROM score_cache
		WHERE path = ? AND content_hash = ?
	`, path, contentHash).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("score cache lookup failed: %w", err)
	}

	output, err := decodePayload(payload)
	if err != nil {
		// The entry is unusable; drop it so the next run recomputes.
		c.db.conn.Exec("DELETE FROM score_cache WHERE path = ? AND content_hash = ?", path, contentHash)
		c.logger.Warn("discarding undecodable cache entry", "path", path, "error", err)
		return nil, false, cogerrors.Newf(cogerrors.MalformedInput, "cache entry for %s is corrupt: %v", path, err)
	}

	return output, true, nil
}

// Put stores the report for a path at a specific content hash, replacing
// any previous entry for the same key.
func (c *Cache) Put(path, contentHash, language string, output *cognitive.FileOutput) error {
	payload, err := encodePayload(output)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	_, err = c.db.conn.Exec(`
		INSERT OR REPLACE INTO score_cache (path, content_hash, language, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, path, contentHash, language, payload, time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Prune removes every entry for the given path except the one matching
// keepHash. Returns the number of rows removed.
func (c *Cache) Prune(path, keepHash string) (int64, error) {
	res, err := c.db.conn.Exec(`
		DELETE FROM score_cache WHERE path = ? AND content_hash != ?
	`, path, keepHash)
	if err != nil {
		return 0, fmt.Errorf("cache prune failed: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	if _, err := c.db.conn.Exec("DELETE FROM score_cache"); err != nil {
		return fmt.Errorf("cache clear failed: %w", err)
	}
	return nil
}

// Stats returns the number of cached entries and total payload bytes.
func (c *Cache) Stats() (int64, int64, error) {
	var entries, bytesTotal int64
	err := c.db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(LENGTH(payload)), 0) FROM score_cache
	`).Scan(&entries, &bytesTotal)
	if err != nil {
		return 0, 0, fmt.Errorf("cache stats failed: %w", err)
	}
	return entries, bytesTotal, nil
}

// encodePayload serializes a report as gzip-compressed JSON.
func encodePayload(output *cognitive.FileOutput) ([]byte, error) {
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePayload(payload []byte) (*cognitive.FileOutput, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	var output cognitive.FileOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, err
	}
	return &output, nil
}
