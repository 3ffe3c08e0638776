package outline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/pkg/outline"
)

func TestNewCharacterSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		start   int
		end     int
		want    outline.CharacterSpan
		wantErr bool
	}{
		{name: "single character", start: 4, end: 4, want: outline.CharacterSpan{Start: 4, End: 4}},
		{name: "range", start: 0, end: 16, want: outline.CharacterSpan{Start: 0, End: 16}},
		{name: "none sentinel", start: 0, end: -1, want: outline.None},
		{name: "start after end", start: 5, end: 3, wantErr: true},
		{name: "negative start", start: -2, end: 3, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := outline.NewCharacterSpan(tc.start, tc.end)
			if tc.wantErr {
				require.ErrorIs(t, err, outline.ErrInvalidSpan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromHalfOpen(t *testing.T) {
	t.Parallel()

	span, err := outline.FromHalfOpen(17, 108)
	require.NoError(t, err)
	assert.Equal(t, outline.CharacterSpan{Start: 17, End: 107}, span)

	empty, err := outline.FromHalfOpen(42, 42)
	require.NoError(t, err)
	assert.True(t, empty.IsNone())

	_, err = outline.FromHalfOpen(10, 5)
	require.ErrorIs(t, err, outline.ErrInvalidSpan)
}

func TestUnion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, outline.None, outline.Union())
	assert.Equal(t, outline.None, outline.Union(outline.None, outline.None))
	assert.Equal(t,
		outline.CharacterSpan{Start: 0, End: 186},
		outline.Union(
			outline.CharacterSpan{Start: 0, End: 16},
			outline.None,
			outline.CharacterSpan{Start: 17, End: 107},
			outline.CharacterSpan{Start: 186, End: 186},
		),
	)
}

func TestSpanBetween(t *testing.T) {
	t.Parallel()

	first := outline.CharacterSpan{Start: 3, End: 5}
	last := outline.CharacterSpan{Start: 9, End: 12}

	assert.Equal(t, outline.CharacterSpan{Start: 3, End: 12}, outline.SpanBetween(first, last))
	assert.Equal(t, last, outline.SpanBetween(outline.None, last))
	assert.Equal(t, first, outline.SpanBetween(first, outline.None))
}

func TestCharacterSpanHelpers(t *testing.T) {
	t.Parallel()

	span := outline.CharacterSpan{Start: 10, End: 12}
	assert.Equal(t, 3, span.Len())
	assert.True(t, span.Contains(12))
	assert.False(t, span.Contains(13))
	assert.Equal(t, "[10, 12]", span.String())

	assert.Equal(t, 0, outline.None.Len())
	assert.False(t, outline.None.Contains(0))
	assert.Equal(t, "[0, -1]", outline.None.String())
}

func TestLineInfoCompare(t *testing.T) {
	t.Parallel()

	a := outline.LineInfo{Line: 3, Column: 1}
	b := outline.LineInfo{Line: 3, Column: 5}
	c := outline.LineInfo{Line: 4, Column: 0}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, b.Less(c))
	assert.True(t, outline.UndefinedLine.IsUndefined())
}

func TestLocationSpanIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, outline.NoLocation.IsValid())
	assert.False(t, outline.NoLocation.IsDefined())
	assert.True(t, outline.LocationSpan{
		Start: outline.LineInfo{Line: 1, Column: 0},
		End:   outline.LineInfo{Line: 1, Column: 0},
	}.IsValid())
	assert.False(t, outline.LocationSpan{
		Start: outline.LineInfo{Line: 2, Column: 0},
		End:   outline.LineInfo{Line: 1, Column: 4},
	}.IsValid())
}
