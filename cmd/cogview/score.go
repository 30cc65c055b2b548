package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"cogview/internal/cognitive"
	"cogview/internal/config"
	"cogview/internal/scan"
)

var (
	scoreFormat       string
	scoreSortBy       string
	scoreLimit        int
	scoreNoCache      bool
	scoreIncludeInner bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Score a single source file",
	Long: `Score one JavaScript, TypeScript, or TSX file and print its cognitive
complexity report.

Examples:
  cogview score src/engine.ts
  cogview score --format=human --sort=score src/engine.ts
  cogview score --format=yaml --limit=10 src/app.tsx`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "json", "Output format (json, yaml, human)")
	scoreCmd.Flags().StringVar(&scoreSortBy, "sort", "source", "Sort containers by: source, score, or name")
	scoreCmd.Flags().IntVar(&scoreLimit, "limit", 0, "Limit top-level containers shown (0 for all)")
	scoreCmd.Flags().BoolVar(&scoreNoCache, "no-cache", false, "Bypass the score cache")
	scoreCmd.Flags().BoolVar(&scoreIncludeInner, "include-inner", true, "Include nested containers in the report")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	path := args[0]

	if !cognitive.IsAvailable() {
		return fmt.Errorf("this binary was built without CGO: %w", cognitive.ErrNoCGO)
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}

	scanner := scan.New(config.DefaultConfig(), nil, logger)
	score, err := scanner.ScanFile(context.Background(), path, path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if score.Error != "" {
		return fmt.Errorf("%s: %s", path, score.Error)
	}

	arrangeContainers(score.Output.Inner, scoreSortBy)
	if scoreLimit > 0 && len(score.Output.Inner) > scoreLimit {
		score.Output.Inner = score.Output.Inner[:scoreLimit]
	}
	if !scoreIncludeInner {
		for i := range score.Output.Inner {
			score.Output.Inner[i].Inner = []cognitive.Container{}
		}
	}

	output, err := FormatResponse(score, OutputFormat(scoreFormat))
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}

// arrangeContainers reorders top-level containers in place. Source order is
// the default and needs no work; nested containers always keep source order.
func arrangeContainers(containers []cognitive.Container, sortBy string) {
	switch sortBy {
	case "score":
		sort.SliceStable(containers, func(i, j int) bool {
			return containers[i].Score > containers[j].Score
		})
	case "name":
		sort.SliceStable(containers, func(i, j int) bool {
			return containers[i].Name < containers[j].Name
		})
	}
}
