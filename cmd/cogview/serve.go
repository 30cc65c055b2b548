package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cogview/internal/api"
	"cogview/internal/cognitive"
	"cogview/internal/config"
	"cogview/internal/scan"
	"cogview/internal/store"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Start the HTTP API server",
	Long: `Start the cogview HTTP API server for the given project root (default:
current directory). The server exposes REST endpoints for per-file score
reports and whole-tree scans.

Endpoints:
  GET  /healthz
  GET  /status
  GET  /api/scores?path=<relative path>
  POST /api/scan`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	var cache *store.Cache
	if cfg.Cache.Enabled {
		db, err := store.Open(root, logger)
		if err != nil {
			logger.Warn("cache unavailable, serving without it", "error", err)
		} else {
			defer db.Close()
			cache = store.NewCache(db, logger)
		}
	}

	scanner := scan.New(cfg, cache, logger)
	server := api.NewServer(addr, root, cfg, scanner, logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("cogview listening on http://%s\n", addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}
