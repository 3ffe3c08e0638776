// Package outline defines the position-annotated outline tree produced for a
// source file: character spans, line/column locations and the file, container
// and terminal node hierarchy.
package outline

import (
	"errors"
	"fmt"
)

// ErrInvalidSpan is returned when a span is constructed with start > end.
var ErrInvalidSpan = errors.New("invalid span")

// CharacterSpan is a closed interval of absolute character offsets.
//
// The pair (0, -1) is reserved for None and is the only value allowed to have
// End < Start.
type CharacterSpan struct {
	// Start is the offset of the first character (inclusive).
	Start int

	// End is the offset of the last character (inclusive).
	End int
}

// None is the sentinel span meaning "no span".
//
//nolint:gochecknoglobals // Sentinel value, never mutated
var None = CharacterSpan{Start: 0, End: -1}

// NewCharacterSpan creates a closed span, rejecting start > end unless the
// pair is the None sentinel.
func NewCharacterSpan(start, end int) (CharacterSpan, error) {
	span := CharacterSpan{Start: start, End: end}
	if span.IsNone() {
		return span, nil
	}
	if start < 0 || start > end {
		return None, fmt.Errorf("%w: [%d, %d]", ErrInvalidSpan, start, end)
	}
	return span, nil
}

// FromHalfOpen converts a half-open parser range [start, end) into a closed
// span. An empty range yields None.
func FromHalfOpen(start, end int) (CharacterSpan, error) {
	if start == end {
		return None, nil
	}
	return NewCharacterSpan(start, end-1)
}

// SpanBetween returns the span from the start of first to the end of last.
// If either side is None the other is returned.
func SpanBetween(first, last CharacterSpan) CharacterSpan {
	switch {
	case first.IsNone():
		return last
	case last.IsNone():
		return first
	}
	return CharacterSpan{Start: first.Start, End: last.End}
}

// Union returns the smallest span covering every non-None span given.
// It returns None when all spans are None.
func Union(spans ...CharacterSpan) CharacterSpan {
	result := None
	for _, span := range spans {
		if span.IsNone() {
			continue
		}
		if result.IsNone() {
			result = span
			continue
		}
		result.Start = min(result.Start, span.Start)
		result.End = max(result.End, span.End)
	}
	return result
}

// IsNone reports whether the span is the None sentinel.
func (s CharacterSpan) IsNone() bool {
	return s.Start == 0 && s.End == -1
}

// Len returns the number of characters covered by the span.
func (s CharacterSpan) Len() int {
	if s.IsNone() {
		return 0
	}
	return s.End - s.Start + 1
}

// Contains reports whether offset lies within the span.
func (s CharacterSpan) Contains(offset int) bool {
	return !s.IsNone() && offset >= s.Start && offset <= s.End
}

// String formats the span as [start, end].
func (s CharacterSpan) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}
