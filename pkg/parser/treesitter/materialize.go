package treesitter

import (
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/semoutline/pkg/builder"
)

const (
	kindError          = "ERROR"
	kindComment        = "comment"
	kindCompilation    = "compilation_unit"
	kindEndOfFile      = "end_of_file"
	kindOpenBrace      = "{"
	kindCloseBrace     = "}"
	kindSemicolon      = ";"
	kindComma          = ","
	kindFileNamespace  = "file_scoped_namespace_declaration"
	kindVariableDecl   = "variable_declarator"
	kindAttribute      = "attribute"
	kindIdentifier     = "identifier"
	kindNameEquals     = "name_equals"
	kindUsingDirective = "using_directive"
)

// bodyKinds are the member lists whose children are spliced into the
// declaration that owns them.
//
//nolint:gochecknoglobals // Read-only lookup table
var bodyKinds = map[string]bool{
	"declaration_list":             true,
	"enum_member_declaration_list": true,
}

// isTrivia reports whether a node kind is trivia rather than syntax.
func isTrivia(kind string) bool {
	return kind == kindComment || strings.HasPrefix(kind, "preproc")
}

// materializer copies a tree-sitter tree into a Tree, converting byte
// offsets into character offsets as it goes.
type materializer struct {
	src  []byte
	tree *Tree

	// trivia holds comment and preprocessor ranges in source order.
	trivia []builder.TextRange

	bytePos int
	runePos int
}

// direct is a direct child of a node as seen while materializing it.
type direct struct {
	kind  string
	token int
	node  *Node
}

func materialize(root *sitter.Node, src []byte, text string) *Tree {
	tree := &Tree{text: text, runes: []rune(text)}
	m := &materializer{src: src, tree: tree}

	rootNode, _ := m.visit(root)
	if rootNode == nil || rootNode.kind != kindCompilation {
		wrapper := m.newNode(kindCompilation)
		if rootNode != nil {
			wrapper.children = []*Node{rootNode}
			wrapper.first, wrapper.last = rootNode.first, rootNode.last
		}
		rootNode = wrapper
	}

	rootNode.children = coalesceErrors(rootNode.children)
	rootNode.children = adoptFileScopedMembers(rootNode.children)
	tree.root = rootNode

	m.attachTrivia()

	return tree
}

func (m *materializer) newNode(kind string) *Node {
	return &Node{
		tree:  m.tree,
		kind:  kind,
		first: noToken,
		last:  noToken,
		open:  noToken,
		close: noToken,
	}
}

// visit materializes sn. It returns the node for named, non-trivia nodes
// and, for leaves, the index of the token registered for them.
func (m *materializer) visit(sn *sitter.Node) (*Node, int) {
	kind := sn.Type()
	if isTrivia(kind) {
		m.trivia = append(m.trivia, builder.TextRange{
			Start: m.runeOffset(int(sn.StartByte())),
			End:   m.runeOffset(int(sn.EndByte())),
		})
		return nil, noToken
	}

	node := m.newNode(kind)
	node.incomplete = kind == kindError || sn.IsMissing()
	node.anchor = m.runeOffset(int(sn.StartByte()))

	count := int(sn.ChildCount())
	if count == 0 {
		tokenIndex := noToken
		if sn.EndByte() > sn.StartByte() {
			tokenIndex = m.addToken(kind, sn)
			node.first, node.last = tokenIndex, tokenIndex
		}
		if !sn.IsNamed() {
			return nil, tokenIndex
		}
		node.ident = m.identifier(sn, kind)
		return node, tokenIndex
	}

	before := len(m.tree.tokens)
	directs := make([]direct, 0, count)
	for i := range count {
		child := sn.Child(i)
		if child == nil || child.IsNull() {
			continue
		}
		if !child.IsNamed() && child.IsMissing() {
			node.incomplete = true
		}
		childNode, tokenIndex := m.visit(child)
		directs = append(directs, direct{kind: child.Type(), token: tokenIndex, node: childNode})
		if childNode != nil {
			node.children = append(node.children, childNode)
		}
	}
	if after := len(m.tree.tokens); after > before {
		node.first, node.last = before, after-1
	}

	m.shape(node, directs)
	node.ident = m.identifier(sn, kind)

	return node, noToken
}

// shape sets the body delimiters of node and flattens its member list.
func (m *materializer) shape(node *Node, directs []direct) {
	switch {
	case bodyKinds[node.kind]:
		if len(directs) > 0 {
			if head := directs[0]; head.kind == kindOpenBrace && head.token != noToken {
				node.open = head.token
			}
			if tail := directs[len(directs)-1]; tail.kind == kindCloseBrace && tail.token != noToken {
				node.close = tail.token
			}
		}
		attachSeparators(directs)
		return

	case node.kind == kindFileNamespace:
		for _, d := range directs {
			if d.kind == kindSemicolon && d.token != noToken {
				node.open = d.token
				break
			}
		}
	}

	for i, child := range node.children {
		if !bodyKinds[child.kind] {
			continue
		}
		node.open, node.close = child.open, child.close
		node.incomplete = node.incomplete || child.incomplete

		spliced := make([]*Node, 0, len(node.children)-1+len(child.children))
		spliced = append(spliced, node.children[:i]...)
		spliced = append(spliced, child.children...)
		spliced = append(spliced, node.children[i+1:]...)
		node.children = spliced
		return
	}
}

// attachSeparators extends each member of a list over the comma that follows
// it, so "Red," is one member and the list has no uncovered tokens.
func attachSeparators(directs []direct) {
	var prev *Node
	for _, d := range directs {
		switch {
		case d.node != nil:
			prev = d.node
		case d.kind == kindComma && d.token != noToken && prev != nil && prev.hasTokens():
			prev.last = d.token
			prev = nil
		}
	}
}

func (m *materializer) addToken(kind string, sn *sitter.Node) int {
	start := m.runeOffset(int(sn.StartByte()))
	end := m.runeOffset(int(sn.EndByte()))
	m.tree.tokens = append(m.tree.tokens, builder.Token{
		Kind: kind,
		Span: builder.TextRange{Start: start, End: end},
	})
	return len(m.tree.tokens) - 1
}

// runeOffset converts a byte offset into a character offset. Offsets are
// requested in mostly ascending order, so the conversion resumes from the
// previous one.
func (m *materializer) runeOffset(byteOffset int) int {
	byteOffset = min(max(byteOffset, 0), len(m.src))
	if byteOffset < m.bytePos {
		return utf8.RuneCount(m.src[:byteOffset])
	}
	m.runePos += utf8.RuneCount(m.src[m.bytePos:byteOffset])
	m.bytePos = byteOffset
	return m.runePos
}

// attachTrivia assigns every character between tokens to exactly one token.
// A token's trailing trivia runs up to and including the first line
// terminator after it; everything else is leading trivia of the next token.
// Text after the last token's line is owned by the end-of-file token.
func (m *materializer) attachTrivia() {
	tokens := m.tree.tokens
	runes := m.tree.runes
	size := len(runes)
	trivia := m.trivia

	next := 0
	fullStart := 0
	for i := range tokens {
		tokens[i].Full.Start = fullStart

		limit := size
		if i+1 < len(tokens) {
			limit = tokens[i+1].Span.Start
		}

		pos := tokens[i].Span.End
	scan:
		for pos < limit {
			for next < len(trivia) && trivia[next].End <= pos {
				next++
			}
			if next < len(trivia) && trivia[next].Start <= pos {
				pos = trivia[next].End
				continue
			}

			switch runes[pos] {
			case '\n':
				pos++
				break scan
			case '\r':
				pos++
				if pos < limit && runes[pos] == '\n' {
					pos++
				}
				break scan
			}
			pos++
		}

		pos = min(pos, limit)
		tokens[i].Full.End = pos
		fullStart = pos
	}

	m.tree.eof = builder.Token{
		Kind: kindEndOfFile,
		Span: builder.TextRange{Start: size, End: size},
		Full: builder.TextRange{Start: fullStart, End: size},
	}
}

// coalesceErrors merges runs of adjacent ERROR nodes into one, so a
// stretch of unparsable text yields a single incomplete member.
func coalesceErrors(children []*Node) []*Node {
	merged := children[:0:0]
	for _, child := range children {
		if n := len(merged); n > 0 && child.kind == kindError && merged[n-1].kind == kindError {
			prev := merged[n-1]
			prev.children = append(prev.children, child.children...)
			if child.hasTokens() {
				if !prev.hasTokens() {
					prev.first = child.first
				}
				prev.last = child.last
			}
			continue
		}
		merged = append(merged, child)
	}
	return merged
}

// adoptFileScopedMembers moves the declarations following a file-scoped
// namespace into it, for grammars that parse them as siblings.
func adoptFileScopedMembers(children []*Node) []*Node {
	for i, child := range children {
		if child.kind != kindFileNamespace || child.last != child.open || i == len(children)-1 {
			continue
		}

		rest := children[i+1:]
		child.children = append(child.children, rest...)
		for j := len(rest) - 1; j >= 0; j-- {
			if rest[j].hasTokens() {
				child.last = rest[j].last
				break
			}
		}
		return children[:i+1]
	}
	return children
}
