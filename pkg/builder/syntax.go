// Package builder turns a parser's syntax tree into an outline tree.
//
// The parser is an external collaborator; this package only depends on the
// small view of it described by SyntaxTree and SyntaxNode.
package builder

import "github.com/yaklabco/semoutline/pkg/outline"

// TextRange is a half-open range [Start, End) of character offsets.
type TextRange struct {
	Start int
	End   int
}

// Len returns the number of characters in the range.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no characters.
func (r TextRange) IsEmpty() bool {
	return r.Start >= r.End
}

// Token is a significant token of the source text.
type Token struct {
	// Kind is the parser's token kind, e.g. "{" or "identifier".
	Kind string

	// Span covers the token text alone.
	Span TextRange

	// Full covers the token together with its leading and trailing trivia.
	Full TextRange
}

// LeadingTrivia returns the range of trivia owned by the token before it.
func (t Token) LeadingTrivia() TextRange {
	return TextRange{Start: t.Full.Start, End: t.Span.Start}
}

// TrailingTrivia returns the range of trivia owned by the token after it.
func (t Token) TrailingTrivia() TextRange {
	return TextRange{Start: t.Span.End, End: t.Full.End}
}

// SyntaxNode is a node of the parser's syntax tree.
//
// Implementations must report offsets in characters of the decoded text, the
// same units the line index uses.
type SyntaxNode interface {
	// Kind is the parser's node kind.
	Kind() string

	// Children returns the node's significant child nodes in source order.
	// Body lists (the member list between braces) are flattened into the
	// node's own children.
	Children() []SyntaxNode

	// FirstToken returns the node's first token. A node without tokens
	// returns an empty token positioned at the node's start.
	FirstToken() Token

	// LastToken returns the node's last token.
	LastToken() Token

	// BodyOpen returns the token opening the node's body: an opening brace,
	// or the terminator of a single-statement form.
	BodyOpen() (Token, bool)

	// BodyClose returns the token closing the node's body.
	BodyClose() (Token, bool)

	// Identifier returns the declared name, or "" for unnamed constructs.
	Identifier() string

	// Text returns the node's source text without trivia.
	Text() string

	// Incomplete reports whether the parser flagged the node as malformed
	// or missing required tokens.
	Incomplete() bool

	// Position returns the line/column extent computed by the parser.
	Position() outline.LocationSpan
}

// SyntaxTree is a parsed source file.
type SyntaxTree interface {
	// Root returns the compilation unit.
	Root() SyntaxNode

	// EndOfFile returns the empty end-of-file token. Its leading trivia is
	// the text after the last significant token.
	EndOfFile() Token
}
