//go:build cgo

package cognitive

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"cogview/internal/syntax"
)

// ScoreFile assembles the report for one file: each direct child of the file
// root is scored at depth 0 with an empty named-ancestor context, their
// scores summed and their discovered containers concatenated in encounter
// order. A parser-contract violation aborts the whole file.
func ScoreFile(root *sitter.Node, source []byte) (*FileOutput, error) {
	w := &walker{src: source}
	out := &FileOutput{Inner: []Container{}}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		res, err := w.visitChild(root.NamedChild(i), frame{
			depth:    0,
			topLevel: true,
		}, "")
		if err != nil {
			return nil, err
		}
		out.Score += res.score
		out.Inner = append(out.Inner, res.inner...)
	}

	return out, nil
}

// Analyzer scores source files.
type Analyzer struct {
	parser *syntax.Parser
}

// NewAnalyzer creates a new cognitive complexity analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		parser: syntax.NewParser(),
	}
}

// AnalyzeFile analyzes a source file and returns its score report.
// Unsupported extensions and unreadable files yield a FileScore with Error
// set; engine contract violations return a hard error and no report.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileScore, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := syntax.FromExtension(ext)
	if !ok {
		return &FileScore{
			Path:  path,
			Error: "unsupported file extension: " + ext,
		}, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return &FileScore{
			Path:     path,
			Language: lang,
			Error:    "failed to read file: " + err.Error(),
		}, nil
	}

	return a.AnalyzeSource(ctx, path, source, lang)
}

// AnalyzeSource analyzes source code and returns its score report.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte, lang syntax.Language) (*FileScore, error) {
	root, err := a.parser.Parse(ctx, source, lang)
	if err != nil {
		return &FileScore{
			Path:     path,
			Language: lang,
			Error:    err.Error(),
		}, nil
	}

	output, err := ScoreFile(root, source)
	if err != nil {
		return nil, err
	}

	return &FileScore{
		Path:     path,
		Language: lang,
		Output:   output,
	}, nil
}

// IsAvailable returns whether cognitive complexity analysis is available.
// Returns true when CGO is enabled.
func IsAvailable() bool {
	return true
}
