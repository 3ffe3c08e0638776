package outline

import "fmt"

// LineInfo is a line/column coordinate. Line is 1-based, Column is 0-based
// and counts characters, not bytes.
type LineInfo struct {
	Line   int
	Column int
}

// UndefinedLine is the sentinel LineInfo meaning "undefined".
//
//nolint:gochecknoglobals // Sentinel value, never mutated
var UndefinedLine = LineInfo{Line: 0, Column: -1}

// IsUndefined reports whether l is the undefined sentinel.
func (l LineInfo) IsUndefined() bool {
	return l == UndefinedLine
}

// Compare orders line infos by line, then column.
// It returns -1, 0 or +1.
func (l LineInfo) Compare(other LineInfo) int {
	switch {
	case l.Line < other.Line:
		return -1
	case l.Line > other.Line:
		return 1
	case l.Column < other.Column:
		return -1
	case l.Column > other.Column:
		return 1
	}
	return 0
}

// Less reports whether l sorts before other.
func (l LineInfo) Less(other LineInfo) bool {
	return l.Compare(other) < 0
}

func (l LineInfo) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// LocationSpan is a line/column interval.
type LocationSpan struct {
	Start LineInfo
	End   LineInfo
}

// NoLocation is the location of a node without a span.
//
//nolint:gochecknoglobals // Sentinel value, never mutated
var NoLocation = LocationSpan{Start: UndefinedLine, End: UndefinedLine}

// IsDefined reports whether both ends are defined.
func (s LocationSpan) IsDefined() bool {
	return !s.Start.IsUndefined() && !s.End.IsUndefined()
}

// IsValid reports whether Start <= End. Spans with an undefined end are valid.
func (s LocationSpan) IsValid() bool {
	if !s.IsDefined() {
		return true
	}
	return s.Start.Compare(s.End) <= 0
}

func (s LocationSpan) String() string {
	return s.Start.String() + "-" + s.End.String()
}
