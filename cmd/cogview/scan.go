package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cogview/internal/cognitive"
	"cogview/internal/config"
	"cogview/internal/scan"
	"cogview/internal/store"
)

var (
	scanFormat  string
	scanNoCache bool
	scanMin     int
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Score every matching file under a directory",
	Long: `Walk a project tree and score every file matching the configured include
patterns. Defaults to the current directory. Results for unchanged files come
from the cache in .cogview/cogview.db.

Examples:
  cogview scan
  cogview scan --format=human src/
  cogview scan --min=10 --format=yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "Output format (json, yaml, human)")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "Bypass the score cache")
	scanCmd.Flags().IntVar(&scanMin, "min", 0, "Only report files scoring at least this much")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if !cognitive.IsAvailable() {
		return fmt.Errorf("this binary was built without CGO: %w", cognitive.ErrNoCGO)
	}

	root, err := projectRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var cache *store.Cache
	if cfg.Cache.Enabled && !scanNoCache {
		db, err := store.Open(root, logger)
		if err != nil {
			logger.Warn("cache unavailable, scanning without it", "error", err)
		} else {
			defer db.Close()
			cache = store.NewCache(db, logger)
		}
	}

	scanner := scan.New(cfg, cache, logger)
	result, err := scanner.ScanDir(context.Background(), root)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanMin > 0 {
		filtered := result.Files[:0]
		for _, f := range result.Files {
			if f.Output != nil && f.Output.Score >= scanMin {
				filtered = append(filtered, f)
			}
		}
		result.Files = filtered
	}

	output, err := FormatResponse(result, OutputFormat(scanFormat))
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}
