package cmdparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_AddChild_MergesSameName(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Literal("foo").Build())
	ran := false
	root.AddChild(Literal("foo").ExecutesFunc(func(c *CommandContext) error { ran = true; return nil }).Build())

	require.Equal(t, 1, root.Children().Size())
	foo, ok := root.Children().Get("foo")
	require.True(t, ok)
	require.NotNil(t, foo.Command())
	err := foo.Command().Run(nil)
	require.NoError(t, err)
	require.True(t, ran)
}

func TestNode_AddChild_SortsLiteralsBeforeArguments(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Argument("zeta", String).Build())
	root.AddChild(Literal("alpha").Build())

	values := root.Children().Values()
	require.Len(t, values, 2)
	_, isLiteral := values[0].(*LiteralCommandNode)
	require.True(t, isLiteral)
}

func TestNode_AddChild_SortsWithinKindByKey(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Literal("zebra").Build())
	root.AddChild(Literal("apple").Build())

	values := root.Children().Values()
	require.Equal(t, "apple", values[0].Name())
	require.Equal(t, "zebra", values[1].Name())
}

func TestNode_CheckRequirement_SilentlyHidden(t *testing.T) {
	n := Literal("secret").Requires(func(ctx context.Context) *RequirementFailedError {
		return &RequirementFailedError{}
	}).Build()

	failure := n.CheckRequirement(context.Background())
	require.NotNil(t, failure)
	require.Nil(t, failure.Reason)
}

func TestNode_CheckRequirement_VisibleButDenied(t *testing.T) {
	n := Literal("secret").Requires(func(ctx context.Context) *RequirementFailedError {
		return &RequirementFailedError{Reason: "needs admin"}
	}).Build()

	failure := n.CheckRequirement(context.Background())
	require.NotNil(t, failure)
	require.Equal(t, "needs admin", failure.Reason)
}

func TestNode_CheckRequirement_PermittedViaDescendant(t *testing.T) {
	var root RootCommandNode
	root.AddChild(Literal("parent").
		Requires(func(ctx context.Context) *RequirementFailedError { return nil }).
		ThenNodes(Literal("allowed").Build()).
		Build())

	parent, _ := root.Children().Get("parent")
	require.Nil(t, parent.CheckRequirement(context.Background()))
}

func TestLiteralCommandNode_Aliases(t *testing.T) {
	n := Literal("teleport").Aliases("tp").Build().(*LiteralCommandNode)
	require.True(t, n.IsValidInput("teleport"))
	require.True(t, n.IsValidInput("tp"))
	require.False(t, n.IsValidInput("tele"))
}
