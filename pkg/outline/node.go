package outline

// NodeInfo holds the fields shared by every outline node.
type NodeInfo struct {
	// Type is the node's type tag, e.g. "class" or "method".
	Type string

	// Name is the declared identifier, or the text of the first significant
	// child for unnamed constructs.
	Name string

	// LocationSpan is the line/column extent of the node.
	LocationSpan LocationSpan
}

// Node is an outline tree node. The set of implementations is closed:
// *Container and *TerminalNode.
type Node interface {
	// Info returns the shared node fields.
	Info() *NodeInfo

	outlineNode()
}

// Container is a node that owns children, such as a namespace or a type.
type Container struct {
	NodeInfo

	// HeaderSpan runs from the first token through the body-opening token.
	HeaderSpan CharacterSpan

	// FooterSpan covers the closing token, or None when there is none.
	FooterSpan CharacterSpan

	// Children are in source order.
	Children []Node
}

// TerminalNode is a leaf node such as a method or field.
type TerminalNode struct {
	NodeInfo

	// Span covers the whole member including attached trivia.
	Span CharacterSpan
}

// Info implements Node.
func (c *Container) Info() *NodeInfo { return &c.NodeInfo }

// Info implements Node.
func (t *TerminalNode) Info() *NodeInfo { return &t.NodeInfo }

func (*Container) outlineNode()    {}
func (*TerminalNode) outlineNode() {}

// NewContainer creates a container with the given tag and name.
// Location starts undefined and the footer starts as None.
func NewContainer(typ, name string) *Container {
	return &Container{
		NodeInfo:   NodeInfo{Type: typ, Name: name, LocationSpan: NoLocation},
		HeaderSpan: None,
		FooterSpan: None,
	}
}

// NewTerminal creates a terminal node covering span.
func NewTerminal(typ, name string, span CharacterSpan) *TerminalNode {
	return &TerminalNode{
		NodeInfo: NodeInfo{Type: typ, Name: name, LocationSpan: NoLocation},
		Span:     span,
	}
}

// AppendChild adds child to the end of c's children.
func (c *Container) AppendChild(child Node) {
	c.Children = append(c.Children, child)
}

// TotalSpan returns the character extent of a node: a terminal's span, or
// the union of a container's header, children and footer.
func TotalSpan(node Node) CharacterSpan {
	switch n := node.(type) {
	case *TerminalNode:
		return n.Span
	case *Container:
		spans := make([]CharacterSpan, 0, len(n.Children)+2)
		spans = append(spans, n.HeaderSpan)
		for _, child := range n.Children {
			spans = append(spans, TotalSpan(child))
		}
		spans = append(spans, n.FooterSpan)
		return Union(spans...)
	}
	return None
}
