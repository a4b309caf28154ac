package cmdparser

import (
	"sort"
	"strings"
)

// Suggestion is one completion candidate covering Range of the original
// input, with optional human-readable Tooltip.
type Suggestion struct {
	Range   *StringRange
	Text    string
	Tooltip string
}

// apply returns the input string with Range replaced by Text.
func (s *Suggestion) apply(input string) string {
	if s.Range.Start == 0 && s.Range.End == len(input) {
		return s.Text
	}
	var b strings.Builder
	if s.Range.Start > 0 {
		b.WriteString(input[:s.Range.Start])
	}
	b.WriteString(s.Text)
	if s.Range.End < len(input) {
		b.WriteString(input[s.Range.End:])
	}
	return b.String()
}

// Expand re-bases s onto a wider range, padding with the untouched
// original input on either side so every suggestion in a merged set shares
// one covering range.
func (s *Suggestion) Expand(command string, r *StringRange) *Suggestion {
	if *r == *s.Range {
		return s
	}
	var b strings.Builder
	if r.Start < s.Range.Start {
		b.WriteString(command[r.Start:s.Range.Start])
	}
	b.WriteString(s.Text)
	if r.End > s.Range.End {
		b.WriteString(command[s.Range.End:r.End])
	}
	return &Suggestion{Range: r, Text: b.String(), Tooltip: s.Tooltip}
}

// Suggestions is a finished, deduplicated, sorted batch of Suggestion
// sharing one Range.
type Suggestions struct {
	Range       *StringRange
	Suggestions []*Suggestion
}

// EmptySuggestions is the zero-width, zero-candidate result.
var EmptySuggestions = &Suggestions{Range: &StringRange{}, Suggestions: nil}

// MergeSuggestions combines every result in suggestions (each possibly
// covering a different range of command) into one batch sharing the
// smallest range encompassing all of them.
func MergeSuggestions(command string, suggestions []*Suggestions) *Suggestions {
	if len(suggestions) == 0 {
		return EmptySuggestions
	}
	r := suggestions[0].Range
	for _, s := range suggestions[1:] {
		r = EncompassingRange(r, s.Range)
	}
	texts := map[string]*Suggestion{}
	for _, s := range suggestions {
		for _, sug := range s.Suggestions {
			expanded := sug.Expand(command, r)
			texts[expanded.Text] = expanded
		}
	}
	out := make([]*Suggestion, 0, len(texts))
	for _, s := range texts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(strings.ToLower(out[i].Text), strings.ToLower(out[j].Text)) < 0
	})
	return &Suggestions{Range: r, Suggestions: out}
}

// CreateSuggestion returns a one-element Suggestions for text at r.
func CreateSuggestion(r *StringRange, text string) *Suggestions {
	return &Suggestions{Range: r, Suggestions: []*Suggestion{{Range: r, Text: text}}}
}

// SuggestionProvider supplies custom Suggestions for one argument node,
// overriding its ArgumentType's default.
type SuggestionProvider interface {
	ProvideSuggestions(ctx *CommandContext, builder *SuggestionsBuilder) (*Suggestions, error)
}

// SuggestionProviderFunc adapts a function to SuggestionProvider.
type SuggestionProviderFunc func(ctx *CommandContext, builder *SuggestionsBuilder) (*Suggestions, error)

// ProvideSuggestions implements SuggestionProvider.
func (f SuggestionProviderFunc) ProvideSuggestions(ctx *CommandContext, b *SuggestionsBuilder) (*Suggestions, error) {
	return f(ctx, b)
}

// SuggestionsBuilder accumulates candidates for the unconsumed remainder
// of the input beginning at Start.
type SuggestionsBuilder struct {
	Input              string
	InputLowerCase     string
	Start              int
	Remaining          string
	RemainingLowerCase string

	result []*Suggestion
}

// NewSuggestionsBuilder returns a builder for input with its remainder
// beginning at start.
func NewSuggestionsBuilder(input string, start int) *SuggestionsBuilder {
	remaining := input[start:]
	return &SuggestionsBuilder{
		Input:              input,
		InputLowerCase:     strings.ToLower(input),
		Start:              start,
		Remaining:          remaining,
		RemainingLowerCase: strings.ToLower(remaining),
	}
}

// Suggest adds a bare text candidate spanning [Start,len(Input)).
func (b *SuggestionsBuilder) Suggest(text string) *SuggestionsBuilder {
	if text == b.Remaining {
		return b
	}
	b.result = append(b.result, &Suggestion{Range: &StringRange{Start: b.Start, End: len(b.Input)}, Text: text})
	return b
}

// SuggestWithTooltip is Suggest plus a tooltip.
func (b *SuggestionsBuilder) SuggestWithTooltip(text, tooltip string) *SuggestionsBuilder {
	if text == b.Remaining {
		return b
	}
	b.result = append(b.result, &Suggestion{
		Range:   &StringRange{Start: b.Start, End: len(b.Input)},
		Text:    text,
		Tooltip: tooltip,
	})
	return b
}

// Restart returns a fresh builder over the same Input/Start, discarding
// anything suggested so far.
func (b *SuggestionsBuilder) Restart() *SuggestionsBuilder { return NewSuggestionsBuilder(b.Input, b.Start) }

// Build finishes the batch, sorted and deduplicated by Suggestions.merge
// semantics (reuses MergeSuggestions's dedup/sort path via single-range
// CreateSuggestion-style entries).
func (b *SuggestionsBuilder) Build() *Suggestions {
	return MergeSuggestions(b.Input, []*Suggestions{{
		Range:       &StringRange{Start: b.Start, End: len(b.Input)},
		Suggestions: b.result,
	}})
}

// CompletionSuggestions computes suggestions for the cursor at the end of
// input.
func (d *Dispatcher) CompletionSuggestions(parse *ParseResults) (*Suggestions, error) {
	return d.CompletionSuggestionsCursor(parse, len(parse.Reader.String))
}

// CompletionSuggestionsCursor computes suggestions for the cursor at an
// arbitrary position within the originally parsed input, asking every
// permitted child of the node chosen by FindSuggestionContext for its own
// candidates and merging them into one batch. A provider erroring is
// treated as contributing no suggestions rather than aborting the whole
// computation.
func (d *Dispatcher) CompletionSuggestionsCursor(parse *ParseResults, cursor int) (*Suggestions, error) {
	ctx := parse.Context
	nodeBeforeCursor := ctx.FindSuggestionContext(cursor)
	parentNode := nodeBeforeCursor.Parent
	start := min(nodeBeforeCursor.StartPos, cursor)

	full := parse.Reader.String
	truncatedInput := full
	if cursor < len(full) {
		truncatedInput = full[:cursor]
	}

	var batches []*Suggestions
	for _, child := range parentNode.Children().Values() {
		if !child.CanUse(ctx) {
			continue
		}
		sb := NewSuggestionsBuilder(truncatedInput, start)
		s, err := child.(interface {
			Suggestions(ctx *CommandContext, builder *SuggestionsBuilder) (*Suggestions, error)
		}).Suggestions(ctx, sb)
		if err != nil {
			continue
		}
		if s != nil {
			batches = append(batches, s)
		}
	}
	return MergeSuggestions(full, batches), nil
}

// SuggestionContext is the node whose children should be asked for
// suggestions (Parent) and the input offset (StartPos) at which the token
// being completed begins.
type SuggestionContext struct {
	Parent   CommandNode
	StartPos int
}

// FindSuggestionContext walks the matched node chain to find the node
// whose children should be asked for completions at cursor: if cursor
// falls past everything parsed so far (including trailing separators),
// that is the deepest matched node itself (so a fresh argument can be
// suggested); if cursor falls within an already-matched node's range,
// it is that node's parent (so alternative matches can still be offered).
func (c *CommandContext) FindSuggestionContext(cursor int) *SuggestionContext {
	if c.Range == nil {
		return &SuggestionContext{Parent: c.RootNode, StartPos: 0}
	}
	if c.Range.End < cursor {
		if c.Child != nil {
			return c.Child.FindSuggestionContext(cursor)
		}
		if len(c.Nodes) > 0 {
			last := c.Nodes[len(c.Nodes)-1]
			return &SuggestionContext{Parent: last.Node, StartPos: last.Range.End + 1}
		}
		return &SuggestionContext{Parent: c.RootNode, StartPos: c.Range.Start}
	}
	parent := c.RootNode
	for _, n := range c.Nodes {
		if cursor <= n.Range.End {
			return &SuggestionContext{Parent: parent, StartPos: n.Range.Start}
		}
		parent = n.Node
	}
	return &SuggestionContext{Parent: c.RootNode, StartPos: c.Range.Start}
}

// Suggestions provides the default suggestion set for a literal node:
// itself, if its lower-cased name starts with the remaining input.
func (n *LiteralCommandNode) Suggestions(ctx *CommandContext, b *SuggestionsBuilder) (*Suggestions, error) {
	if strings.HasPrefix(n.lowerCase(), b.RemainingLowerCase) {
		return b.Suggest(n.Literal).Build(), nil
	}
	return EmptySuggestions, nil
}

// Suggestions provides suggestions for an argument node: the node's
// CustomSuggestions provider if set, else the argument type's own
// suggestions via a type assertion to an optional extension interface,
// else none.
func (a *ArgumentCommandNode) Suggestions(ctx *CommandContext, b *SuggestionsBuilder) (*Suggestions, error) {
	if a.customSuggestions != nil {
		return a.customSuggestions.ProvideSuggestions(ctx, b)
	}
	if st, ok := a.argType.(SuggestionProvider); ok {
		return st.ProvideSuggestions(ctx, b)
	}
	return EmptySuggestions, nil
}
