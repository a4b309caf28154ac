package cmdparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmartUsage_GroupsSiblingOptions(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("tp").
		Then(Literal("here").ExecutesFunc(func(c *CommandContext) error { return nil })).
		Then(Literal("there").ExecutesFunc(func(c *CommandContext) error { return nil })))

	usage := d.SmartUsage(&d.Root, context.Background())
	var rendered []string
	usage.Range(func(_ CommandNode, v string) bool {
		rendered = append(rendered, v)
		return true
	})
	require.Len(t, rendered, 1)
	require.Contains(t, rendered[0], string(UsageRequiredOpen))
	require.Contains(t, rendered[0], "here")
	require.Contains(t, rendered[0], "there")
}

func TestSmartUsage_SkipsDeniedChildren(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("admin").
		Requires(func(ctx context.Context) *RequirementFailedError {
			return &RequirementFailedError{}
		}).
		ExecutesFunc(func(c *CommandContext) error { return nil }))
	d.Register(Literal("help").ExecutesFunc(func(c *CommandContext) error { return nil }))

	usage := d.SmartUsage(&d.Root, context.Background())
	require.Equal(t, 1, usage.Size())
}

func TestAllUsage_RestrictedHidesRequirementFailures(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("admin").
		Requires(func(ctx context.Context) *RequirementFailedError {
			return &RequirementFailedError{}
		}).
		ExecutesFunc(func(c *CommandContext) error { return nil }))

	usage := d.AllUsage(&d.Root, context.Background(), true)
	require.Empty(t, usage)
}
