//go:build !cgo

package cognitive

import (
	"context"

	"cogview/internal/syntax"
)

// Analyzer scores source files.
// This is a stub implementation for non-CGO builds.
type Analyzer struct{}

// NewAnalyzer creates a new cognitive complexity analyzer.
// Returns nil when CGO is disabled.
func NewAnalyzer() *Analyzer {
	return nil
}

// AnalyzeFile analyzes a single file.
// Stub implementation returns an error.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileScore, error) {
	return nil, ErrNoCGO
}

// AnalyzeSource analyzes source code bytes.
// Stub implementation returns an error.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte, lang syntax.Language) (*FileScore, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns whether cognitive complexity analysis is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
