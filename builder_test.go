package cmdparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_ChainsThroughConcreteType(t *testing.T) {
	node := Literal("foo").
		Requires(func(ctx context.Context) *RequirementFailedError { return nil }).
		ExecutesFunc(func(c *CommandContext) error { return nil }).
		ThenNodes(Literal("bar").Build()).
		Build()

	lit, ok := node.(*LiteralCommandNode)
	require.True(t, ok)
	require.Equal(t, "foo", lit.Name())
	require.NotNil(t, lit.Command())
	require.Equal(t, 1, lit.Children().Size())
}

func TestBuilder_RequiredArgumentChain(t *testing.T) {
	node := Argument("bar", Int32).
		SuggestsFunc(func(ctx *CommandContext, b *SuggestionsBuilder) (*Suggestions, error) {
			return b.Build(), nil
		}).
		ExecutesFunc(func(c *CommandContext) error { return nil }).
		Build()

	arg, ok := node.(*ArgumentCommandNode)
	require.True(t, ok)
	require.Equal(t, "bar", arg.Name())
	require.NotNil(t, arg.CustomSuggestions())
}

func TestBuilder_RedirectPanicsWithChildren(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	target := Literal("real").Build()
	Literal("alias").ThenNodes(Literal("child").Build()).Redirect(target)
}

func TestBuilder_ThenPanicsAfterRedirect(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	target := Literal("real").Build()
	Literal("alias").Redirect(target).Then(Literal("child"))
}
