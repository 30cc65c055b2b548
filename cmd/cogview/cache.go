package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cogview/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the score cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats [dir]",
	Short: "Show score cache statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [dir]",
	Short: "Remove all cached score reports",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	root, err := projectRoot(args)
	if err != nil {
		return err
	}

	db, err := store.Open(root, logger)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer db.Close()

	entries, size, err := store.NewCache(db, logger).Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Cache: %s\n", db.Path())
	fmt.Printf("Entries: %d\n", entries)
	fmt.Printf("Payload bytes: %d\n", size)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	root, err := projectRoot(args)
	if err != nil {
		return err
	}

	db, err := store.Open(root, logger)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer db.Close()

	if err := store.NewCache(db, logger).Clear(); err != nil {
		return err
	}

	fmt.Println("Cache cleared.")
	return nil
}
