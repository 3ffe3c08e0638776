package outline

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every violation reported by Validate.
var ErrInvariant = errors.New("outline invariant violated")

// Validate checks the structural invariants of a finished tree:
//
//   - every span is well formed and every defined location has start <= end;
//   - every defined location lies inside its parent's location;
//   - the parts of each container (header, children, footer), as well as the
//     file's top-level nodes, appear in source order without overlapping;
//   - a container with a footer leaves no character between its parts
//     uncovered.
//
// All violations are returned joined together; nil means the tree is
// consistent.
func Validate(file *File) error {
	if file == nil {
		return nil
	}

	var errs []error
	report := func(node Node, format string, args ...any) {
		where := "file"
		if node != nil {
			info := node.Info()
			where = fmt.Sprintf("%s %q", info.Type, info.Name)
		}
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvariant, where, fmt.Sprintf(format, args...)))
	}

	checkSpan := func(node Node, label string, span CharacterSpan) {
		if span.IsNone() {
			return
		}
		if span.Start < 0 || span.Start > span.End {
			report(node, "%s %s is malformed", label, span)
		}
	}

	checkContained := func(node Node, outer LocationSpan, children []Node) {
		if !outer.IsDefined() {
			return
		}
		for _, child := range children {
			inner := child.Info().LocationSpan
			if !inner.IsDefined() {
				continue
			}
			if inner.Start.Less(outer.Start) || outer.End.Less(inner.End) {
				info := child.Info()
				report(node, "%s %q location %s is outside %s", info.Type, info.Name, inner, outer)
			}
		}
	}

	checkOrder := func(node Node, parts []CharacterSpan) {
		prev := None
		for _, part := range parts {
			if part.IsNone() {
				continue
			}
			if !prev.IsNone() && part.Start <= prev.End {
				report(node, "span %s overlaps or precedes %s", part, prev)
			}
			prev = part
		}
	}

	if !file.LocationSpan.IsValid() {
		report(nil, "location %s ends before it starts", file.LocationSpan)
	}
	checkSpan(nil, "footer", file.FooterSpan)

	top := make([]CharacterSpan, 0, len(file.Children)+1)
	for _, child := range file.Children {
		top = append(top, TotalSpan(child))
	}
	top = append(top, file.FooterSpan)
	checkOrder(nil, top)
	checkContained(nil, file.LocationSpan, file.Children)

	_ = Walk(file, func(node Node, _ int) error {
		if !node.Info().LocationSpan.IsValid() {
			report(node, "location %s ends before it starts", node.Info().LocationSpan)
		}

		switch n := node.(type) {
		case *TerminalNode:
			checkSpan(n, "span", n.Span)
		case *Container:
			checkSpan(n, "header", n.HeaderSpan)
			checkSpan(n, "footer", n.FooterSpan)
			parts := make([]CharacterSpan, 0, len(n.Children)+2)
			parts = append(parts, n.HeaderSpan)
			for _, child := range n.Children {
				parts = append(parts, TotalSpan(child))
			}
			parts = append(parts, n.FooterSpan)
			checkOrder(n, parts)
			checkContained(n, n.LocationSpan, n.Children)
			if !n.FooterSpan.IsNone() {
				for _, gap := range Gaps(n) {
					report(n, "characters %s are not covered by any part", gap)
				}
			}
		}
		return nil
	})

	return errors.Join(errs...)
}

// Gaps returns, for a container, the characters between consecutive
// non-None parts (header, children, footer) that no part covers.
// A contiguous container has no gaps.
func Gaps(container *Container) []CharacterSpan {
	var gaps []CharacterSpan
	prev := None
	visit := func(part CharacterSpan) {
		if part.IsNone() {
			return
		}
		if !prev.IsNone() && part.Start > prev.End+1 {
			gaps = append(gaps, CharacterSpan{Start: prev.End + 1, End: part.Start - 1})
		}
		prev = part
	}

	visit(container.HeaderSpan)
	for _, child := range container.Children {
		visit(TotalSpan(child))
	}
	visit(container.FooterSpan)

	return gaps
}
