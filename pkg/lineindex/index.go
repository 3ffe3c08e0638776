// Package lineindex maps absolute character offsets to line/column
// coordinates and back.
//
// An Index is built once per file from the decoded text in a single pass and
// is immutable afterwards, so it can be shared between goroutines.
package lineindex

import (
	"errors"
	"fmt"
	"math"

	"github.com/yaklabco/semoutline/pkg/outline"
)

var (
	// ErrOffsetOutOfRange is returned for offsets outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrLineOutOfRange is returned for lines outside [1, LineCount()].
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrColumnOutOfRange is returned for columns outside [0, LineLength(line)].
	ErrColumnOutOfRange = errors.New("column out of range")

	// ErrTextTooLarge is returned when the text cannot be indexed.
	ErrTextTooLarge = errors.New("text too large to index")
)

// Terminator identifies the line terminator convention found in a text.
type Terminator string

// Terminator conventions.
const (
	TerminatorNone  Terminator = "none"
	TerminatorLF    Terminator = "lf"
	TerminatorCRLF  Terminator = "crlf"
	TerminatorCR    Terminator = "cr"
	TerminatorMixed Terminator = "mixed"
)

// line describes one line of text. Length includes terminator characters;
// content does not.
type line struct {
	offset  int
	length  int
	content int
}

// Index is a bidirectional offset <-> line/column index over decoded text.
type Index struct {
	// lines is 0-based; entry i describes line i+1.
	lines []line

	// lineOf maps every offset in [0, size] to a 0-based line number.
	lineOf []int32

	size       int
	terminator Terminator
}

// New builds an index over text. Offsets and columns count characters
// (Unicode code points), not bytes. "\n", "\r" and "\r\n" each end a line;
// terminator characters belong to the line they end.
func New(text string) (*Index, error) {
	if len(text) >= math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTextTooLarge, len(text))
	}

	idx := &Index{
		lineOf: make([]int32, 0, len(text)+1),
	}

	var lfCount, crlfCount, crCount int
	lineStart := 0
	offset := 0
	pendingCR := false

	closeLine := func(end, terminator int) {
		length := end - lineStart
		idx.lines = append(idx.lines, line{offset: lineStart, length: length, content: length - terminator})
		lineStart = end
	}

	for _, char := range text {
		current := int32(len(idx.lines)) //nolint:gosec // bounded by len(text) < MaxInt32

		if pendingCR {
			pendingCR = false
			if char == '\n' {
				// Second half of CRLF stays on the line the CR started to end.
				idx.lineOf = append(idx.lineOf, current)
				offset++
				closeLine(offset, 2)
				crlfCount++
				continue
			}
			closeLine(offset, 1)
			crCount++
			current++
		}

		idx.lineOf = append(idx.lineOf, current)
		offset++

		switch char {
		case '\r':
			pendingCR = true
		case '\n':
			closeLine(offset, 1)
			lfCount++
		}
	}

	if pendingCR {
		closeLine(offset, 1)
		crCount++
	}

	// The line in progress, possibly empty, owns the end-of-text offset.
	idx.lines = append(idx.lines, line{offset: lineStart, length: offset - lineStart, content: offset - lineStart})
	idx.lineOf = append(idx.lineOf, int32(len(idx.lines)-1)) //nolint:gosec // bounded as above
	idx.size = offset
	idx.terminator = classify(lfCount, crlfCount, crCount)

	return idx, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(text string) *Index {
	idx, err := New(text)
	if err != nil {
		panic(err)
	}
	return idx
}

func classify(lf, crlf, cr int) Terminator {
	kinds := 0
	result := TerminatorNone
	for _, candidate := range []struct {
		count int
		kind  Terminator
	}{
		{lf, TerminatorLF},
		{crlf, TerminatorCRLF},
		{cr, TerminatorCR},
	} {
		if candidate.count > 0 {
			kinds++
			result = candidate.kind
		}
	}
	if kinds > 1 {
		return TerminatorMixed
	}
	return result
}

// Len returns the number of characters in the indexed text.
func (idx *Index) Len() int {
	return idx.size
}

// LineCount returns the number of lines, counting a final line with no
// terminator (which may be empty).
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// Terminator returns the line terminator convention found in the text.
func (idx *Index) Terminator() Terminator {
	return idx.terminator
}

// LineInfoAt returns the line/column of offset. The end-of-text offset
// Len() is valid and lies on the last line.
func (idx *Index) LineInfoAt(offset int) (outline.LineInfo, error) {
	if offset < 0 || offset > idx.size {
		return outline.UndefinedLine, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, offset, idx.size)
	}

	lineNo := int(idx.lineOf[offset])
	return outline.LineInfo{
		Line:   lineNo + 1,
		Column: offset - idx.lines[lineNo].offset,
	}, nil
}

// LocationOf converts a character span into a location span.
// None maps to outline.NoLocation.
//
// A line terminator counts as a single position: a span that starts or ends
// inside one is placed on the terminator's first column. "\n" and "\r\n"
// therefore give identical locations for the same content.
func (idx *Index) LocationOf(span outline.CharacterSpan) (outline.LocationSpan, error) {
	if span.IsNone() {
		return outline.NoLocation, nil
	}

	start, err := idx.visibleLineInfoAt(span.Start)
	if err != nil {
		return outline.NoLocation, fmt.Errorf("span start: %w", err)
	}
	end, err := idx.visibleLineInfoAt(span.End)
	if err != nil {
		return outline.NoLocation, fmt.Errorf("span end: %w", err)
	}

	return outline.LocationSpan{Start: start, End: end}, nil
}

// visibleLineInfoAt is LineInfoAt with columns inside a line terminator
// clamped to the end of the line's content.
func (idx *Index) visibleLineInfoAt(offset int) (outline.LineInfo, error) {
	info, err := idx.LineInfoAt(offset)
	if err != nil {
		return info, err
	}
	info.Column = min(info.Column, idx.lines[info.Line-1].content)
	return info, nil
}

// PositionOf returns the absolute offset of a 1-based line and 0-based
// column. A column equal to the line length addresses the position just past
// the line's last character.
func (idx *Index) PositionOf(lineNo, column int) (int, error) {
	length, err := idx.LineLength(lineNo)
	if err != nil {
		return 0, err
	}
	if column < 0 || column > length {
		return 0, fmt.Errorf("%w: line %d column %d not in [0, %d]", ErrColumnOutOfRange, lineNo, column, length)
	}

	return idx.lines[lineNo-1].offset + column, nil
}

// LineLength returns the number of characters on a 1-based line, including
// its terminator.
func (idx *Index) LineLength(lineNo int) (int, error) {
	if lineNo < 1 || lineNo > len(idx.lines) {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrLineOutOfRange, lineNo, len(idx.lines))
	}
	return idx.lines[lineNo-1].length, nil
}

// LineOffset returns the offset of the first character of a 1-based line.
func (idx *Index) LineOffset(lineNo int) (int, error) {
	if lineNo < 1 || lineNo > len(idx.lines) {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrLineOutOfRange, lineNo, len(idx.lines))
	}
	return idx.lines[lineNo-1].offset, nil
}
