// Package reconcile derives every line/column location of an outline tree
// from its character spans, so that all positions come from one line index.
package reconcile

import (
	"fmt"

	"github.com/yaklabco/semoutline/pkg/lineindex"
	"github.com/yaklabco/semoutline/pkg/outline"
)

// Fill rewrites the locations of file in place:
//
//   - terminal nodes get the location of their span;
//   - containers with a footer get the location of their total span;
//   - containers without a footer keep the location the parser reported;
//   - the file spans offsets 0 through idx.Len();
//   - parsing errors get the location of their offset.
//
// Fill is idempotent. Offsets outside the index are reported as errors; they
// indicate spans that were not produced from the same text.
func Fill(file *outline.File, idx *lineindex.Index) error {
	if file == nil {
		return nil
	}

	start, err := idx.LineInfoAt(0)
	if err != nil {
		return fmt.Errorf("file start: %w", err)
	}
	end, err := idx.LineInfoAt(idx.Len())
	if err != nil {
		return fmt.Errorf("file end: %w", err)
	}
	file.LocationSpan = outline.LocationSpan{Start: start, End: end}

	for i := range file.ParsingErrors {
		parsingError := &file.ParsingErrors[i]
		location, err := idx.LineInfoAt(parsingError.Offset)
		if err != nil {
			return fmt.Errorf("parsing error %d: %w", i, err)
		}
		parsingError.Location = location
	}

	return outline.Walk(file, func(node outline.Node, _ int) error {
		return fillNode(node, idx)
	})
}

func fillNode(node outline.Node, idx *lineindex.Index) error {
	var span outline.CharacterSpan

	switch n := node.(type) {
	case *outline.TerminalNode:
		span = n.Span
	case *outline.Container:
		if n.FooterSpan.IsNone() {
			return nil
		}
		span = outline.TotalSpan(n)
	default:
		return nil
	}

	location, err := idx.LocationOf(span)
	if err != nil {
		info := node.Info()
		return fmt.Errorf("%s %q: %w", info.Type, info.Name, err)
	}
	node.Info().LocationSpan = location

	return nil
}
