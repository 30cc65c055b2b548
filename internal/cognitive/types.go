// Package cognitive computes cognitive complexity scores for source files.
//
// Cognitive complexity penalizes control flow, nesting, and recursive
// self-reference more heavily the deeper they occur, as opposed to raw
// statement counting. The engine walks an already-parsed tree-sitter syntax
// tree and produces a hierarchical report: a score per function, class, and
// namespace container, rolled up per file.
package cognitive

import (
	"errors"

	"cogview/internal/syntax"
)

// ErrNoCGO is returned when analysis is unavailable due to missing CGO.
var ErrNoCGO = errors.New("cognitive complexity analysis requires CGO (tree-sitter)")

// Container is a named function, class, or namespace reported as a distinct
// scored unit within a file. Name may be empty for genuinely anonymous,
// unassigned constructs. Inner lists the containers introduced directly
// within this one, in source order.
type Container struct {
	Name   string      `json:"name"`
	Score  int         `json:"score"`
	Line   int         `json:"line"`
	Column int         `json:"column"`
	Inner  []Container `json:"inner"`
}

// FileOutput is the root of one file's analysis. Score is the sum of the
// file's direct top-level contributions, including control flow outside any
// container.
type FileOutput struct {
	Score int         `json:"score"`
	Inner []Container `json:"inner"`
}

// FileScore pairs a file's report with its path and detected language.
// Error is set when the file could not be analyzed for a recoverable reason
// (unsupported extension, unreadable file); the engine's own contract
// violations surface as hard errors instead.
type FileScore struct {
	Path     string          `json:"path"`
	Language syntax.Language `json:"language,omitempty"`
	Output   *FileOutput     `json:"output,omitempty"`
	Error    string          `json:"error,omitempty"`
}
