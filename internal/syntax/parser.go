//go:build cgo

package syntax

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	cogerr "cogview/internal/errors"
)

// Parser wraps a tree-sitter parser.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter parser.
func NewParser() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse parses source code and returns the AST root node.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*sitter.Node, error) {
	tsLang, err := grammarFor(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, cogerr.New(cogerr.ParseFailed, "tree-sitter parse failed", err)
	}

	return tree.RootNode(), nil
}

// grammarFor returns the tree-sitter grammar for a language identifier.
func grammarFor(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, cogerr.Newf(cogerr.UnsupportedLanguage, "unsupported language: %s", lang)
	}
}

// IsAvailable returns whether parsing is available.
// Returns true when CGO is enabled.
func IsAvailable() bool {
	return true
}
