package cmdparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckAmbiguities_ReportsOverlappingAliases(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Literal("foo").Aliases("shared").Build())
	root.AddChild(Literal("shared").Build())

	type report struct {
		child, sibling string
		inputs         []string
	}
	var got []report
	CheckAmbiguities(&root, func(parent, child, sibling CommandNode, inputs []string) {
		got = append(got, report{child.Name(), sibling.Name(), inputs})
	})

	require.Len(t, got, 1)
	require.ElementsMatch(t, []string{"foo", "shared"}, []string{got[0].child, got[0].sibling})
	require.Contains(t, got[0].inputs, "shared")
}

func TestCheckAmbiguities_NoOverlapBetweenDistinctLiterals(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Literal("foo").Build())
	root.AddChild(Literal("bar").Build())

	called := false
	CheckAmbiguities(&root, func(parent, child, sibling CommandNode, inputs []string) {
		called = true
	})
	require.False(t, called)
}

func TestCheckAmbiguities_RecursesIntoChildren(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Literal("outer").ThenNodes(
		Literal("inner").Aliases("dup").Build(),
		Literal("dup").Build(),
	).Build())

	called := false
	CheckAmbiguities(&root, func(parent, child, sibling CommandNode, inputs []string) {
		if parent.Name() == "outer" {
			called = true
		}
	})
	require.True(t, called)
}
