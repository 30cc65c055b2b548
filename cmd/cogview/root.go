package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cogview/internal/slogutil"
	"cogview/internal/version"
)

var logLevelFlag string

var rootCmd = &cobra.Command{
	Use:   "cogview",
	Short: "cogview - cognitive complexity for JavaScript and TypeScript",
	Long: `cogview scores JavaScript, TypeScript, and TSX sources with the cognitive
complexity metric: control flow, nesting, and recursion cost more the deeper
they occur. Reports are hierarchical, one scored entry per function, class,
and namespace, rolled up per file.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("cogview version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default: warn, or COGVIEW_LOG_LEVEL)")
}

// newLogger builds the CLI logger. Output goes to stderr so reports on
// stdout stay machine-readable. Precedence: flag > env > warn.
func newLogger() *slog.Logger {
	level := logLevelFlag
	if level == "" {
		level = os.Getenv("COGVIEW_LOG_LEVEL")
	}
	if level == "" {
		level = "warn"
	}
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(level))
}

// projectRoot resolves the project root for commands that take an optional
// directory argument.
func projectRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}
