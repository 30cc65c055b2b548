package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"cogview/internal/cognitive"
	"cogview/internal/scan"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *cognitive.FileScore:
		return formatFileScoreHuman(v), nil
	case *scan.Result:
		return formatScanResultHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatFileScoreHuman(score *cognitive.FileScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", score.Path, score.Language)
	if score.Error != "" {
		fmt.Fprintf(&b, "  error: %s\n", score.Error)
		return strings.TrimRight(b.String(), "\n")
	}

	fmt.Fprintf(&b, "  file score: %d\n", score.Output.Score)
	writeContainers(&b, score.Output.Inner, 1)
	return strings.TrimRight(b.String(), "\n")
}

// writeContainers renders the container tree with two-space indentation
// per nesting level.
func writeContainers(b *strings.Builder, containers []cognitive.Container, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range containers {
		name := c.Name
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Fprintf(b, "%s%s  score=%d  [%d:%d]\n", indent, name, c.Score, c.Line, c.Column)
		writeContainers(b, c.Inner, depth+1)
	}
}

func formatScanResultHuman(result *scan.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scanned %d files under %s in %dms", result.Scanned, result.Root, result.DurationMS)
	if result.CacheHits > 0 {
		fmt.Fprintf(&b, " (%d cached)", result.CacheHits)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total score: %d\n\n", result.TotalScore)

	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Fprintf(&b, "%s  error: %s\n", f.Path, f.Error)
			continue
		}
		fmt.Fprintf(&b, "%s  score=%d\n", f.Path, f.Output.Score)
		writeContainers(&b, f.Output.Inner, 1)
	}
	return strings.TrimRight(b.String(), "\n")
}
