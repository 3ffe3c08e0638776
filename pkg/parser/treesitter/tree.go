package treesitter

import (
	"github.com/yaklabco/semoutline/pkg/builder"
	"github.com/yaklabco/semoutline/pkg/lineindex"
	"github.com/yaklabco/semoutline/pkg/outline"
)

// Tree is a parsed file, detached from tree-sitter.
type Tree struct {
	text   string
	runes  []rune
	tokens []builder.Token
	root   *Node
	eof    builder.Token

	// lines is built on the first Position call.
	lines *lineindex.Index
}

// Root implements builder.SyntaxTree.
func (t *Tree) Root() builder.SyntaxNode {
	return t.root
}

// EndOfFile implements builder.SyntaxTree.
func (t *Tree) EndOfFile() builder.Token {
	return t.eof
}

// Tokens returns the significant tokens of the file in source order.
func (t *Tree) Tokens() []builder.Token {
	return t.tokens
}

// noToken marks an absent token index.
const noToken = -1

// Node is a syntax node of a Tree.
type Node struct {
	tree     *Tree
	kind     string
	children []*Node

	// first and last index tree.tokens; both are noToken for nodes
	// without tokens, which are then positioned at anchor.
	first  int
	last   int
	anchor int

	open  int
	close int

	ident      string
	incomplete bool
}

// Kind implements builder.SyntaxNode.
func (n *Node) Kind() string {
	return n.kind
}

// Children implements builder.SyntaxNode.
func (n *Node) Children() []builder.SyntaxNode {
	children := make([]builder.SyntaxNode, len(n.children))
	for i, child := range n.children {
		children[i] = child
	}
	return children
}

// FirstToken implements builder.SyntaxNode.
func (n *Node) FirstToken() builder.Token {
	return n.token(n.first)
}

// LastToken implements builder.SyntaxNode.
func (n *Node) LastToken() builder.Token {
	return n.token(n.last)
}

// BodyOpen implements builder.SyntaxNode.
func (n *Node) BodyOpen() (builder.Token, bool) {
	if n.open == noToken {
		return builder.Token{}, false
	}
	return n.tree.tokens[n.open], true
}

// BodyClose implements builder.SyntaxNode.
func (n *Node) BodyClose() (builder.Token, bool) {
	if n.close == noToken {
		return builder.Token{}, false
	}
	return n.tree.tokens[n.close], true
}

// Identifier implements builder.SyntaxNode.
func (n *Node) Identifier() string {
	return n.ident
}

// Text implements builder.SyntaxNode.
func (n *Node) Text() string {
	if n.first == noToken {
		return ""
	}
	start := n.tree.tokens[n.first].Span.Start
	end := n.tree.tokens[n.last].Span.End
	return string(n.tree.runes[start:end])
}

// Incomplete implements builder.SyntaxNode.
func (n *Node) Incomplete() bool {
	return n.incomplete
}

// Position implements builder.SyntaxNode. It covers the node from its first
// token through the trailing trivia of its last one, measured in characters
// on the same line structure as the rest of the outline. tree-sitter points
// are not used: their columns count bytes and only "\n" ends their lines.
func (n *Node) Position() outline.LocationSpan {
	idx, err := n.tree.lineIndex()
	if err != nil {
		return outline.NoLocation
	}

	start, end := n.anchor, n.anchor
	if n.hasTokens() {
		start = n.tree.tokens[n.first].Span.Start
		end = max(n.tree.tokens[n.last].Full.End-1, start)
	}

	location, err := idx.LocationOf(outline.CharacterSpan{Start: start, End: end})
	if err != nil {
		return outline.NoLocation
	}
	return location
}

func (t *Tree) lineIndex() (*lineindex.Index, error) {
	if t.lines == nil {
		idx, err := lineindex.New(t.text)
		if err != nil {
			return nil, err
		}
		t.lines = idx
	}
	return t.lines, nil
}

func (n *Node) token(index int) builder.Token {
	if index == noToken {
		at := builder.TextRange{Start: n.anchor, End: n.anchor}
		return builder.Token{Span: at, Full: at}
	}
	return n.tree.tokens[index]
}

func (n *Node) hasTokens() bool {
	return n.first != noToken
}
