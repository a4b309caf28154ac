package cmdparser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_ExecutesLiteral(t *testing.T) {
	d := NewDispatcher()
	ran := false
	d.Register(Literal("foo").ExecutesFunc(func(c *CommandContext) error {
		ran = true
		return nil
	}))

	n, err := d.ParseExecute(context.Background(), "foo")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, ran)
}

func TestDispatcher_ExecutesWithArgument(t *testing.T) {
	d := NewDispatcher()
	var got int32
	d.Register(Literal("foo").Then(Argument("bar", Int32).ExecutesFunc(func(c *CommandContext) error {
		got = c.Int32("bar")
		return nil
	})))

	_, err := d.ParseExecute(context.Background(), "foo 42")
	require.NoError(t, err)
	require.EqualValues(t, 42, got)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("foo").ExecutesFunc(func(c *CommandContext) error { return nil }))

	_, err := d.ParseExecute(context.Background(), "bar")
	require.Error(t, err)
}

func TestDispatcher_IncorrectLiteral(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("foo").Then(Literal("bar").ExecutesFunc(func(c *CommandContext) error { return nil })))

	_, err := d.ParseExecute(context.Background(), "foo baz")
	require.Error(t, err)
}

func TestDispatcher_Requirement_HidesNode(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("foo").Requires(func(ctx context.Context) *RequirementFailedError {
		return &RequirementFailedError{}
	}).ExecutesFunc(func(c *CommandContext) error { return nil }))

	_, err := d.ParseExecute(context.Background(), "foo")
	require.Error(t, err)
}

func TestDispatcher_Redirect(t *testing.T) {
	d := NewDispatcher()
	ran := false
	d.Register(Literal("real").ExecutesFunc(func(c *CommandContext) error {
		ran = true
		return nil
	}))
	d.Register(Literal("alias").Redirect(&d.Root))

	n, err := d.ParseExecute(context.Background(), "alias real")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, ran)
}

func TestDispatcher_Fork_CollectsErrors(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("real").ExecutesFunc(func(c *CommandContext) error {
		return errors.New("boom")
	}))
	d.Register(Literal("all").Fork(&d.Root, ForkFunc(func(c *CommandContext) ([]context.Context, error) {
		return []context.Context{context.Background(), context.Background()}, nil
	})))

	n, err := d.ParseExecute(context.Background(), "all real")
	require.Error(t, err)
	require.Equal(t, 0, n)
}

// Ported from the teacher's TestDispatcher_ParseIncompleteLiteral: a
// redirect/non-redirect child that runs out of input after the separator
// must leave the separator unconsumed rather than being skipped and lost,
// so the reader still reports it as remaining, unparsed input.
func TestDispatcher_ParseIncompleteLiteral(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("foo").Then(Literal("bar")))

	parse := d.Parse(context.Background(), "foo ")
	require.Equal(t, " ", parse.Reader.Remaining())
	require.Len(t, parse.Context.Nodes, 1)
}

func TestDispatcher_ParseIncompleteArgument(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("foo").Then(Argument("bar", Int32)))

	parse := d.Parse(context.Background(), "foo ")
	require.Equal(t, " ", parse.Reader.Remaining())
	require.Len(t, parse.Context.Nodes, 1)
}

// Ported in spirit from the teacher's literal-alias tests: a differently
// cased literal must still parse and execute end-to-end, not just pass
// IsValidInput in isolation.
func TestDispatcher_Execute_CaseInsensitiveLiteral(t *testing.T) {
	d := NewDispatcher()
	ran := false
	d.Register(Literal("foo").ExecutesFunc(func(c *CommandContext) error {
		ran = true
		return nil
	}))

	n, err := d.ParseExecute(context.Background(), "FOO")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, ran)
}

func TestDispatcher_PathAndFindNode(t *testing.T) {
	d := NewDispatcher()
	leaf := Argument("bar", Int32).Build()
	d.Register(Literal("foo").ThenNodes(leaf))

	path := d.Path(leaf)
	require.Equal(t, []string{"foo", "bar"}, path)
	require.Equal(t, leaf, d.FindNode(path))
}

func TestDispatcher_AllUsage(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("foo").Then(Literal("bar").ExecutesFunc(func(c *CommandContext) error { return nil })))

	usage := d.AllUsage(&d.Root, context.Background(), false)
	require.Contains(t, usage, "foo bar")
}
