// Package syntax wraps tree-sitter parsing for the JavaScript language family.
// The scoring engine consumes the resulting trees read-only: node kind,
// ordered children, parent links, and row/column positions.
package syntax

// Language represents a supported source language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// FromExtension returns the Language for a file extension.
func FromExtension(ext string) (Language, bool) {
	switch ext {
	case ".js", ".mjs", ".cjs", ".jsx":
		// JSX uses the JS parser
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	default:
		return "", false
	}
}
