package outline

import "errors"

// ErrStopWalk stops a walk early without being reported as an error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for each node visited by Walk.
// depth is 0 for top-level nodes.
type WalkFunc func(node Node, depth int) error

type frame struct {
	node  Node
	depth int
}

// Walk visits every node of file depth-first, parents before children,
// in source order. It uses an explicit stack so deep trees cannot exhaust
// the goroutine stack. Returning ErrStopWalk ends the walk with a nil error;
// any other error ends it and is returned.
func Walk(file *File, walkFunc WalkFunc) error {
	if file == nil {
		return nil
	}

	stack := make([]frame, 0, len(file.Children))
	for i := len(file.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: file.Children[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := walkFunc(top.node, top.depth); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}

		container, ok := top.node.(*Container)
		if !ok {
			continue
		}
		for i := len(container.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: container.Children[i], depth: top.depth + 1})
		}
	}

	return nil
}

// Descendants returns every node of file in Walk order.
func Descendants(file *File) []Node {
	var nodes []Node
	_ = Walk(file, func(node Node, _ int) error {
		nodes = append(nodes, node)
		return nil
	})
	return nodes
}

// FindAll returns all nodes matching pred, in Walk order.
func FindAll(file *File, pred func(Node) bool) []Node {
	var result []Node
	_ = Walk(file, func(node Node, _ int) error {
		if pred(node) {
			result = append(result, node)
		}
		return nil
	})
	return result
}

// FindFirst returns the first node matching pred, or nil.
func FindFirst(file *File, pred func(Node) bool) Node {
	var found Node
	_ = Walk(file, func(node Node, _ int) error {
		if pred(node) {
			found = node
			return ErrStopWalk
		}
		return nil
	})
	return found
}

// OfType returns a predicate matching nodes with the given type tag.
func OfType(typ string) func(Node) bool {
	return func(node Node) bool {
		return node.Info().Type == typ
	}
}
