package outline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semoutline/pkg/outline"
)

// socketTree mirrors the outline of a small class with two methods.
func socketTree() *outline.File {
	class := outline.NewContainer(outline.TypeClass, "Socket")
	class.HeaderSpan = outline.CharacterSpan{Start: 0, End: 16}
	class.FooterSpan = outline.CharacterSpan{Start: 186, End: 186}
	class.AppendChild(outline.NewTerminal(outline.TypeMethod, "Connect", outline.CharacterSpan{Start: 17, End: 107}))
	class.AppendChild(outline.NewTerminal(outline.TypeMethod, "Disconnect", outline.CharacterSpan{Start: 108, End: 185}))

	file := outline.NewFile("Socket.cs")
	file.AppendChild(class)
	return file
}

func TestTotalSpan(t *testing.T) {
	t.Parallel()

	file := socketTree()
	assert.Equal(t, outline.CharacterSpan{Start: 0, End: 186}, outline.TotalSpan(file.Children[0]))
	assert.Equal(t, outline.CharacterSpan{Start: 0, End: 186}, file.TotalSpan())

	empty := outline.NewContainer(outline.TypeNamespace, "Empty")
	assert.True(t, outline.TotalSpan(empty).IsNone())
}

func TestNodeInfo(t *testing.T) {
	t.Parallel()

	var node outline.Node = outline.NewTerminal(outline.TypeField, "count", outline.None)
	node.Info().Name = "total"

	terminal, ok := node.(*outline.TerminalNode)
	require.True(t, ok)
	assert.Equal(t, "total", terminal.Name)
	assert.Equal(t, outline.NoLocation, terminal.LocationSpan)
}

func TestParsingErrorsDetected(t *testing.T) {
	t.Parallel()

	file := outline.NewFile("a.cs")
	assert.False(t, file.ParsingErrorsDetected())

	file.AddParsingError(3, "incomplete")
	assert.True(t, file.ParsingErrorsDetected())
	assert.Equal(t, outline.UndefinedLine, file.ParsingErrors[0].Location)
}

func TestWalkOrder(t *testing.T) {
	t.Parallel()

	ns := outline.NewContainer(outline.TypeNamespace, "Net")
	ns.AppendChild(socketTree().Children[0])
	ns.AppendChild(outline.NewTerminal(outline.TypeUsing, "System", outline.None))
	file := outline.NewFile("x.cs")
	file.AppendChild(ns)

	var names []string
	var depths []int
	err := outline.Walk(file, func(node outline.Node, depth int) error {
		names = append(names, node.Info().Name)
		depths = append(depths, depth)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Net", "Socket", "Connect", "Disconnect", "System"}, names)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)
	assert.Len(t, outline.Descendants(file), 5)
}

func TestWalkStops(t *testing.T) {
	t.Parallel()

	file := socketTree()
	visited := 0
	err := outline.Walk(file, func(_ outline.Node, _ int) error {
		visited++
		return outline.ErrStopWalk
	})
	require.NoError(t, err)
	assert.Equal(t, 1, visited)

	boom := errors.New("boom")
	err = outline.Walk(file, func(_ outline.Node, _ int) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestFind(t *testing.T) {
	t.Parallel()

	file := socketTree()
	methods := outline.FindAll(file, outline.OfType(outline.TypeMethod))
	require.Len(t, methods, 2)
	assert.Equal(t, "Disconnect", methods[1].Info().Name)

	first := outline.FindFirst(file, outline.OfType(outline.TypeMethod))
	require.NotNil(t, first)
	assert.Equal(t, "Connect", first.Info().Name)

	assert.Nil(t, outline.FindFirst(file, outline.OfType(outline.TypeEnum)))
}

func TestDeepTreeWalk(t *testing.T) {
	t.Parallel()

	file := outline.NewFile("deep.cs")
	parent := outline.NewContainer(outline.TypeNamespace, "n0")
	file.AppendChild(parent)
	for range 10000 {
		child := outline.NewContainer(outline.TypeClass, "c")
		parent.AppendChild(child)
		parent = child
	}

	assert.Len(t, outline.Descendants(file), 10001)
}
