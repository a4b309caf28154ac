package cmdparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupSuggestionsDispatcher() *Dispatcher {
	d := NewDispatcher()
	d.Register(Literal("apple").ExecutesFunc(func(c *CommandContext) error { return nil }))
	d.Register(Literal("apricot").ExecutesFunc(func(c *CommandContext) error { return nil }))
	d.Register(Literal("banana").ExecutesFunc(func(c *CommandContext) error { return nil }))
	return d
}

func TestCompletionSuggestions_LiteralPrefix(t *testing.T) {
	d := setupSuggestionsDispatcher()
	parse := d.Parse(context.Background(), "ap")
	suggestions, err := d.CompletionSuggestions(parse)
	require.NoError(t, err)

	var texts []string
	for _, s := range suggestions.Suggestions {
		texts = append(texts, s.Text)
	}
	require.ElementsMatch(t, []string{"apple", "apricot"}, texts)
}

func TestCompletionSuggestions_NoMatch(t *testing.T) {
	d := setupSuggestionsDispatcher()
	parse := d.Parse(context.Background(), "zzz")
	suggestions, err := d.CompletionSuggestions(parse)
	require.NoError(t, err)
	require.Empty(t, suggestions.Suggestions)
}

func TestCompletionSuggestions_AfterSeparator(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("color").Then(Argument("name", String).
		SuggestsFunc(func(ctx *CommandContext, b *SuggestionsBuilder) (*Suggestions, error) {
			return b.Suggest("red").Suggest("blue").Build(), nil
		})))

	parse := d.Parse(context.Background(), "color ")
	suggestions, err := d.CompletionSuggestions(parse)
	require.NoError(t, err)

	var texts []string
	for _, s := range suggestions.Suggestions {
		texts = append(texts, s.Text)
	}
	require.ElementsMatch(t, []string{"red", "blue"}, texts)
}

func TestCompletionSuggestionsCursor_SkipsUnpermittedChild(t *testing.T) {
	d := NewDispatcher()
	d.Register(Literal("info").ExecutesFunc(func(c *CommandContext) error { return nil }))
	d.Register(Literal("debug").
		Requires(func(ctx context.Context) *RequirementFailedError {
			return &RequirementFailedError{}
		}).
		ExecutesFunc(func(c *CommandContext) error { return nil }))

	parse := d.Parse(context.Background(), "i")
	suggestions, err := d.CompletionSuggestionsCursor(parse, 0)
	require.NoError(t, err)

	var texts []string
	for _, s := range suggestions.Suggestions {
		texts = append(texts, s.Text)
	}
	require.Contains(t, texts, "info")
	require.NotContains(t, texts, "debug")
}

func TestMergeSuggestions_SharedRange(t *testing.T) {
	a := CreateSuggestion(&StringRange{Start: 0, End: 2}, "ab")
	b := CreateSuggestion(&StringRange{Start: 0, End: 3}, "abc")
	merged := MergeSuggestions("abc", []*Suggestions{a, b})
	require.Equal(t, 0, merged.Range.Start)
	require.Equal(t, 3, merged.Range.End)
	// "ab" at [0,2) expands to "abc" over the shared [0,3) range, so it
	// collapses with b's "abc".
	require.Len(t, merged.Suggestions, 1)
	require.Equal(t, "abc", merged.Suggestions[0].Text)
}

func TestSuggestionsBuilder_SkipsAlreadyTypedRemainder(t *testing.T) {
	b := NewSuggestionsBuilder("apple", 0)
	b.Suggest("apple")
	require.Empty(t, b.Build().Suggestions)
}
