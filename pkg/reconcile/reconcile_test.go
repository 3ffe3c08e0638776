package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/pkg/lineindex"
	"github.com/yaklabco/semoutline/pkg/outline"
	"github.com/yaklabco/semoutline/pkg/reconcile"
)

const source = "class A\n{\n  int x;\n}\n"

func classFile() *outline.File {
	class := outline.NewContainer(outline.TypeClass, "A")
	class.HeaderSpan = outline.CharacterSpan{Start: 0, End: 9}
	class.FooterSpan = outline.CharacterSpan{Start: 19, End: 20}
	class.AppendChild(outline.NewTerminal(outline.TypeField, "x", outline.CharacterSpan{Start: 10, End: 18}))

	file := outline.NewFile("A.cs")
	file.AppendChild(class)
	return file
}

func line(l, c int) outline.LineInfo {
	return outline.LineInfo{Line: l, Column: c}
}

func TestFill(t *testing.T) {
	t.Parallel()

	file := classFile()
	file.AddParsingError(12, "broken")

	require.NoError(t, reconcile.Fill(file, lineindex.MustNew(source)))

	assert.Equal(t, outline.LocationSpan{Start: line(1, 0), End: line(5, 0)}, file.LocationSpan)
	assert.Equal(t, line(3, 2), file.ParsingErrors[0].Location)

	class := file.Children[0].(*outline.Container)
	assert.Equal(t, outline.LocationSpan{Start: line(1, 0), End: line(4, 1)}, class.LocationSpan)

	field := class.Children[0]
	assert.Equal(t, outline.LocationSpan{Start: line(3, 0), End: line(3, 8)}, field.Info().LocationSpan)
}

func TestFillKeepsFooterlessContainerLocation(t *testing.T) {
	t.Parallel()

	file := classFile()
	class := file.Children[0].(*outline.Container)
	class.FooterSpan = outline.None
	parserLocation := outline.LocationSpan{Start: line(1, 0), End: line(3, 8)}
	class.LocationSpan = parserLocation

	require.NoError(t, reconcile.Fill(file, lineindex.MustNew(source)))
	assert.Equal(t, parserLocation, class.LocationSpan)
}

func TestFillNoneSpan(t *testing.T) {
	t.Parallel()

	file := outline.NewFile("empty.cs")
	file.AppendChild(outline.NewTerminal(outline.TypeIncompleteMember, "", outline.None))

	require.NoError(t, reconcile.Fill(file, lineindex.MustNew("")))
	assert.Equal(t, outline.NoLocation, file.Children[0].Info().LocationSpan)
	assert.Equal(t, outline.LocationSpan{Start: line(1, 0), End: line(1, 0)}, file.LocationSpan)
}

func TestFillIsIdempotent(t *testing.T) {
	t.Parallel()

	idx := lineindex.MustNew(source)
	once := classFile()
	require.NoError(t, reconcile.Fill(once, idx))

	twice := classFile()
	require.NoError(t, reconcile.Fill(twice, idx))
	require.NoError(t, reconcile.Fill(twice, idx))

	assert.Equal(t, once, twice)
}

func TestFillRejectsForeignSpans(t *testing.T) {
	t.Parallel()

	file := classFile()
	err := reconcile.Fill(file, lineindex.MustNew("class A {}"))
	require.ErrorIs(t, err, lineindex.ErrOffsetOutOfRange)
}
