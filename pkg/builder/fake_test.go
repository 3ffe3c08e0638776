package builder_test

import (
	"github.com/yaklabco/semoutline/pkg/builder"
	"github.com/yaklabco/semoutline/pkg/outline"
)

// fakeNode is a hand-built syntax node.
type fakeNode struct {
	kind       string
	children   []builder.SyntaxNode
	first      builder.Token
	last       builder.Token
	open       *builder.Token
	close      *builder.Token
	ident      string
	text       string
	incomplete bool
	pos        outline.LocationSpan
}

func (n *fakeNode) Kind() string                    { return n.kind }
func (n *fakeNode) Children() []builder.SyntaxNode  { return n.children }
func (n *fakeNode) FirstToken() builder.Token       { return n.first }
func (n *fakeNode) LastToken() builder.Token        { return n.last }
func (n *fakeNode) Identifier() string              { return n.ident }
func (n *fakeNode) Text() string                    { return n.text }
func (n *fakeNode) Incomplete() bool                { return n.incomplete }
func (n *fakeNode) Position() outline.LocationSpan  { return n.pos }
func (n *fakeNode) BodyOpen() (builder.Token, bool) { return tokenOrNot(n.open) }
func (n *fakeNode) BodyClose() (builder.Token, bool) {
	return tokenOrNot(n.close)
}

func tokenOrNot(tok *builder.Token) (builder.Token, bool) {
	if tok == nil {
		return builder.Token{}, false
	}
	return *tok, true
}

type fakeTree struct {
	root builder.SyntaxNode
	eof  builder.Token
}

func (t *fakeTree) Root() builder.SyntaxNode { return t.root }
func (t *fakeTree) EndOfFile() builder.Token { return t.eof }

// tok creates a token with span [start, end) and full range [fullStart, fullEnd).
func tok(kind string, start, end, fullStart, fullEnd int) builder.Token {
	return builder.Token{
		Kind: kind,
		Span: builder.TextRange{Start: start, End: end},
		Full: builder.TextRange{Start: fullStart, End: fullEnd},
	}
}

func ptr(token builder.Token) *builder.Token {
	return &token
}

func testVocabulary() builder.Vocabulary {
	return builder.NewVocabulary(map[string]builder.Classification{
		"class_declaration":    {Category: builder.ContainerNode, Type: outline.TypeClass},
		"field_declaration":    {Category: builder.TerminalNode, Type: outline.TypeField},
		"attribute_list":       {Category: builder.TerminalNode, Type: outline.TypeAttribute},
		"delegate_declaration": {Category: builder.TerminalNode},
	})
}

// classTree models "class A\n{\n  int x;\n}\n" with the tokens
// class[0,5) A[6,7) {[8,9) int[12,15) x[16,17) ;[17,18) }[19,20).
func classTree() *fakeTree {
	field := &fakeNode{
		kind:  "field_declaration",
		first: tok("int", 12, 15, 10, 16),
		last:  tok(";", 17, 18, 17, 19),
		ident: "x",
		children: []builder.SyntaxNode{
			&fakeNode{kind: "variable_declaration", text: "int x"},
		},
	}
	name := &fakeNode{kind: "identifier", text: "A", first: tok("identifier", 6, 7, 6, 8)}
	class := &fakeNode{
		kind:     "class_declaration",
		first:    tok("class", 0, 5, 0, 6),
		last:     tok("}", 19, 20, 19, 21),
		open:     ptr(tok("{", 8, 9, 8, 10)),
		close:    ptr(tok("}", 19, 20, 19, 21)),
		ident:    "A",
		children: []builder.SyntaxNode{name, field},
		pos: outline.LocationSpan{
			Start: outline.LineInfo{Line: 1, Column: 0},
			End:   outline.LineInfo{Line: 4, Column: 1},
		},
	}
	root := &fakeNode{
		kind:     "compilation_unit",
		children: []builder.SyntaxNode{class},
	}
	return &fakeTree{root: root, eof: tok("", 21, 21, 21, 21)}
}
