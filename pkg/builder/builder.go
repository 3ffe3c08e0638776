package builder

import (
	"fmt"

	"github.com/yaklabco/semoutline/pkg/outline"
)

// DefaultIncompleteMessage is recorded for every malformed construct.
const DefaultIncompleteMessage = "incomplete or unexpected syntax"

// Option configures a Builder.
type Option func(*Builder)

// WithInterning deduplicates type and name strings within one Build call.
func WithInterning() Option {
	return func(b *Builder) {
		b.intern = true
	}
}

// WithIncompleteMessage overrides the message recorded for malformed
// constructs.
func WithIncompleteMessage(message string) Option {
	return func(b *Builder) {
		b.incompleteMessage = message
	}
}

// Builder converts syntax trees into outline trees.
// A Builder holds no per-build state and is safe for concurrent use.
type Builder struct {
	vocab             Vocabulary
	intern            bool
	incompleteMessage string
}

// New creates a Builder that classifies nodes with vocab.
func New(vocab Vocabulary, opts ...Option) *Builder {
	b := &Builder{
		vocab:             vocab,
		incompleteMessage: DefaultIncompleteMessage,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// pending is a syntax node waiting to be classified and attached to parent.
type pending struct {
	syntax SyntaxNode
	parent func(outline.Node)
}

// build holds the state of one Build call.
type build struct {
	*Builder
	pool map[string]string
}

// Build produces the outline of tree. Location spans are left as the parser
// reported them for containers and undefined for terminals; the reconciler
// derives the final positions from the character spans.
func (b *Builder) Build(name string, tree SyntaxTree) (*outline.File, error) {
	state := &build{Builder: b}
	if b.intern {
		state.pool = make(map[string]string)
	}

	file := outline.NewFile(name)

	eof := tree.EndOfFile()
	footer, err := outline.FromHalfOpen(eof.Full.Start, eof.Span.Start)
	if err != nil {
		return nil, fmt.Errorf("file footer: %w", err)
	}
	file.FooterSpan = footer

	root := tree.Root()
	if root == nil {
		return file, nil
	}

	if err := state.outlineChildren(root, file.AppendChild); err != nil {
		return nil, err
	}
	state.collectErrors(root, file)

	return file, nil
}

// outlineChildren classifies the children of root, and recursively those of
// every container emitted, using an explicit stack.
func (s *build) outlineChildren(root SyntaxNode, attach func(outline.Node)) error {
	var stack []pending
	stack = pushChildren(stack, root.Children(), attach, nil)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		category, typ := s.vocab.Classify(top.syntax.Kind())
		switch category {
		case ContainerNode:
			container, err := s.container(top.syntax, typ)
			if err != nil {
				return err
			}
			top.parent(container)
			stack = pushChildren(stack, top.syntax.Children(), container.AppendChild, &container.HeaderSpan)

		case TerminalNode:
			terminal, err := s.terminal(top.syntax, typ)
			if err != nil {
				return err
			}
			top.parent(terminal)

		case Ignored:
		}
	}

	return nil
}

// pushChildren pushes children in reverse so they pop in source order.
// Children starting inside header belong to the header and are skipped.
func pushChildren(stack []pending, children []SyntaxNode, attach func(outline.Node), header *outline.CharacterSpan) []pending {
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		if header != nil && header.Contains(child.FirstToken().Full.Start) {
			continue
		}
		stack = append(stack, pending{syntax: child, parent: attach})
	}
	return stack
}

func (s *build) container(syntax SyntaxNode, typ string) (*outline.Container, error) {
	container := outline.NewContainer(s.str(typ), s.str(s.name(syntax)))
	container.LocationSpan = syntax.Position()

	first := syntax.FirstToken()
	last := syntax.LastToken()

	headerEnd := last.Full.End
	if open, ok := syntax.BodyOpen(); ok {
		headerEnd = open.Full.End
	}
	header, err := outline.FromHalfOpen(first.Full.Start, headerEnd)
	if err != nil {
		return nil, fmt.Errorf("%s %q header: %w", typ, container.Name, err)
	}
	container.HeaderSpan = header

	if closing, ok := syntax.BodyClose(); ok {
		footer, err := outline.FromHalfOpen(closing.Full.Start, last.Full.End)
		if err != nil {
			return nil, fmt.Errorf("%s %q footer: %w", typ, container.Name, err)
		}
		container.FooterSpan = footer
	}

	return container, nil
}

func (s *build) terminal(syntax SyntaxNode, typ string) (*outline.TerminalNode, error) {
	name := s.name(syntax)
	span, err := outline.FromHalfOpen(syntax.FirstToken().Full.Start, syntax.LastToken().Full.End)
	if err != nil {
		return nil, fmt.Errorf("%s %q span: %w", typ, name, err)
	}
	return outline.NewTerminal(s.str(typ), s.str(name), span), nil
}

func (s *build) name(syntax SyntaxNode) string {
	if id := syntax.Identifier(); id != "" {
		return id
	}
	if children := syntax.Children(); len(children) > 0 {
		return children[0].Text()
	}
	return ""
}

// collectErrors records one parsing error per incomplete node anywhere in
// the tree, in source order.
func (s *build) collectErrors(root SyntaxNode, file *outline.File) {
	stack := []SyntaxNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.Incomplete() {
			file.AddParsingError(node.FirstToken().Span.Start, s.incompleteMessage)
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

func (s *build) str(value string) string {
	if s.pool == nil {
		return value
	}
	if interned, ok := s.pool[value]; ok {
		return interned
	}
	s.pool[value] = value
	return value
}
