// Package scan walks a project tree and scores every matching source file.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogview/internal/cognitive"
	"cogview/internal/config"
	"cogview/internal/store"
	"cogview/internal/syntax"
)

// maxFilesPerScan bounds a single scan so a stray symlink farm or vendored
// tree cannot run away with the process.
const maxFilesPerScan = 10000

// Result aggregates one scan over a directory tree.
type Result struct {
	Root       string                `json:"root"`
	Files      []cognitive.FileScore `json:"files"`
	TotalScore int                   `json:"totalScore"`
	Scanned    int                   `json:"scanned"`
	Skipped    int                   `json:"skipped"`
	CacheHits  int                   `json:"cacheHits"`
	DurationMS int64                 `json:"durationMs"`
}

// Scanner scores files under a project root according to the analysis
// configuration. Cache is optional; a nil cache recomputes every file.
type Scanner struct {
	analyzer *cognitive.Analyzer
	cache    *store.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a scanner. cache may be nil.
func New(cfg *config.Config, cache *store.Cache, logger *slog.Logger) *Scanner {
	return &Scanner{
		analyzer: cognitive.NewAnalyzer(),
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
	}
}

// ScanDir walks root and scores every file matching the include patterns.
// Files listed in the report keep paths relative to root.
func (s *Scanner) ScanDir(ctx context.Context, root string) (*Result, error) {
	if !cognitive.IsAvailable() {
		return nil, fmt.Errorf("analysis unavailable: %w", cognitive.ErrNoCGO)
	}

	start := time.Now()
	result := &Result{
		Root:  root,
		Files: []cognitive.FileScore{},
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if info.IsDir() {
			if rel != "." && s.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if result.Scanned >= maxFilesPerScan {
			s.logger.Warn("reached max files limit", "max", maxFilesPerScan)
			return filepath.SkipAll
		}

		if s.excluded(rel) || !s.included(rel) {
			return nil
		}
		if max := s.cfg.Analysis.MaxFileSizeBytes; max > 0 && info.Size() > int64(max) {
			s.logger.Debug("skipping oversized file", "path", rel, "size", info.Size())
			result.Skipped++
			return nil
		}

		score, hit, scoreErr := s.scoreFile(ctx, path, rel)
		if scoreErr != nil {
			return scoreErr
		}
		if hit {
			result.CacheHits++
		}

		result.Files = append(result.Files, *score)
		result.Scanned++
		if score.Output != nil {
			result.TotalScore += score.Output.Score
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan of %s failed: %w", root, err)
	}

	result.DurationMS = time.Since(start).Milliseconds()
	s.logger.Info("scan complete",
		"root", root,
		"scanned", result.Scanned,
		"cacheHits", result.CacheHits,
		"totalScore", result.TotalScore,
		"durationMs", result.DurationMS)
	return result, nil
}

// ScanFile scores a single file. rel is the path recorded in the report and
// used as the cache key; pass the path itself when no project root applies.
func (s *Scanner) ScanFile(ctx context.Context, path, rel string) (*cognitive.FileScore, error) {
	if !cognitive.IsAvailable() {
		return nil, fmt.Errorf("analysis unavailable: %w", cognitive.ErrNoCGO)
	}
	score, _, err := s.scoreFile(ctx, path, rel)
	return score, err
}

// scoreFile reads, hashes, and scores one file, consulting the cache when
// enabled. The bool reports a cache hit.
func (s *Scanner) scoreFile(ctx context.Context, path, rel string) (*cognitive.FileScore, bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := syntax.FromExtension(ext)
	if !ok {
		return &cognitive.FileScore{
			Path:  rel,
			Error: "unsupported file extension: " + ext,
		}, false, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return &cognitive.FileScore{
			Path:     rel,
			Language: lang,
			Error:    "failed to read file: " + err.Error(),
		}, false, nil
	}

	var hash string
	if s.cacheEnabled() {
		hash = store.HashContent(source)
		if output, hit, err := s.cache.Get(rel, hash); err == nil && hit {
			return &cognitive.FileScore{
				Path:     rel,
				Language: lang,
				Output:   output,
			}, true, nil
		}
		// Lookup errors mean a corrupt entry was discarded; recompute.
	}

	score, err := s.analyzer.AnalyzeSource(ctx, rel, source, lang)
	if err != nil {
		return nil, false, err
	}

	if s.cacheEnabled() && score.Output != nil {
		if err := s.cache.Put(rel, hash, string(lang), score.Output); err != nil {
			s.logger.Warn("failed to cache score", "path", rel, "error", err)
		} else if _, err := s.cache.Prune(rel, hash); err != nil {
			s.logger.Warn("failed to prune stale cache entries", "path", rel, "error", err)
		}
	}

	return score, false, nil
}

func (s *Scanner) cacheEnabled() bool {
	return s.cache != nil && s.cfg.Cache.Enabled
}

// included reports whether rel matches any include pattern. Patterns use the
// "**/*.ts" form: a leading "**/" matches any directory prefix and the rest
// matches the base name.
func (s *Scanner) included(rel string) bool {
	base := filepath.Base(rel)
	for _, pattern := range s.cfg.Analysis.Include {
		p := strings.TrimPrefix(pattern, "**/")
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}

// excluded reports whether any path segment of rel matches an exclude entry.
func (s *Scanner) excluded(rel string) bool {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, entry := range s.cfg.Analysis.Exclude {
		for _, seg := range segments {
			if seg == entry {
				return true
			}
			if ok, _ := filepath.Match(entry, seg); ok {
				return true
			}
		}
	}
	return false
}
