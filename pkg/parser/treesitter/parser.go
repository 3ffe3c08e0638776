// Package treesitter provides a C# syntax tree for the outline builder using
// tree-sitter.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/yaklabco/semoutline/pkg/builder"
)

// ErrNoTree is returned when tree-sitter produces no tree.
var ErrNoTree = errors.New("tree-sitter returned no tree")

// Option configures a Parser.
type Option func(*Parser)

// WithLanguage overrides the tree-sitter grammar. The default is C#.
func WithLanguage(lang *sitter.Language) Option {
	return func(p *Parser) {
		p.language = lang
	}
}

// Parser parses source text into syntax trees.
//
// A Parser holds no tree-sitter state between calls; every Parse uses its
// own tree-sitter parser, so a Parser is safe for concurrent use.
type Parser struct {
	language *sitter.Language
}

// New creates a C# parser.
func New(opts ...Option) *Parser {
	p := &Parser{language: csharp.GetLanguage()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses text. The returned tree reports offsets in characters of text
// and does not retain any tree-sitter resources.
//
// Malformed input is not an error: it produces ERROR and MISSING nodes that
// the tree reports as incomplete.
func (p *Parser) Parse(ctx context.Context, text string) (builder.SyntaxTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	if !utf8.ValidString(text) {
		return nil, errors.New("parse: text is not valid UTF-8")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.language)

	src := []byte(text)
	tsTree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if tsTree == nil {
		return nil, ErrNoTree
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	if root == nil || root.IsNull() {
		return nil, ErrNoTree
	}

	return materialize(root, src, text), nil
}
