package cmdparser

import (
	"context"
	"sort"
)

// ParsedArgument is the synchronous-parse result of one argument node: the
// range it consumed, the type that produced it, and the opaque P value
// returned by ArgumentType.Parse. Load (the async half of the split) is
// applied later, once the surrounding alternative has already won against
// its siblings.
type ParsedArgument struct {
	Range  *StringRange
	Type   ArgumentType
	Parsed interface{}
}

// CommandContext accumulates everything discovered about one matched path
// through the tree: the nodes walked, their consumed ranges, the parsed
// (not yet loaded) argument values, and the command/modifier/fork
// configuration of the last node reached. It embeds context.Context so
// executors, requirements, and Load can pull cancellation/values from it
// directly.
type CommandContext struct {
	context.Context

	RootNode CommandNode
	Input    string

	Arguments map[string]*ParsedArgument
	Nodes     []*ParsedCommandNode
	Range     *StringRange

	Child    *CommandContext
	Command  Command
	Modifier RedirectModifier
	Forks    bool

	cursor int
}

// ParsedCommandNode pairs a matched node with the range of input it
// consumed.
type ParsedCommandNode struct {
	Node  CommandNode
	Range *StringRange
}

// newCommandContext starts a fresh context rooted at root for the given
// source and full input string.
func newCommandContext(source context.Context, root CommandNode, input string) *CommandContext {
	return &CommandContext{
		Context:   source,
		RootNode:  root,
		Input:     input,
		Arguments: map[string]*ParsedArgument{},
	}
}

// HasNodes reports whether any node has been recorded yet.
func (c *CommandContext) HasNodes() bool { return len(c.Nodes) > 0 }

// Copy returns a shallow copy sharing the Arguments/Nodes backing slices'
// current contents but safe to extend independently (used by the parser for
// every attempted child, and by CopyFor).
func (c *CommandContext) Copy() *CommandContext {
	cp := *c
	cp.Arguments = make(map[string]*ParsedArgument, len(c.Arguments))
	for k, v := range c.Arguments {
		cp.Arguments[k] = v
	}
	cp.Nodes = append([]*ParsedCommandNode(nil), c.Nodes...)
	return &cp
}

// CopyFor returns a copy of c with its embedded context.Context replaced by
// source, used when a RedirectModifier derives a new source to continue
// execution with.
func (c *CommandContext) CopyFor(source context.Context) *CommandContext {
	if source == c.Context {
		return c
	}
	cp := c.Copy()
	cp.Context = source
	return cp
}

func (c *CommandContext) withNode(node CommandNode, r *StringRange) {
	c.Nodes = append(c.Nodes, &ParsedCommandNode{Node: node, Range: r})
	c.Range = r
	if cmd := node.Command(); cmd != nil {
		c.Command = cmd
	}
	if node.Redirect() != nil {
		c.Modifier = node.RedirectModifier()
		c.Forks = node.IsFork()
	}
}

func (c *CommandContext) withArgument(name string, arg *ParsedArgument) {
	c.Arguments[name] = arg
}

// build finalizes a leaf context by recording the input string it was
// parsed from; its Range is already set by withNode. Mirrors the teacher's
// CommandContextBuilder.Build.
func (c *CommandContext) build(input string) *CommandContext {
	c.Input = input
	return c
}

// LoadArguments runs ArgumentType.Load for every parsed argument in this
// context and its Child chain, realizing the deferred half of the
// parse/load split. It must be called only after a parse alternative has
// been chosen as the winner (see Dispatcher.Execute).
func (c *CommandContext) LoadArguments(ctx context.Context) error {
	for name, parsed := range c.Arguments {
		loaded, err := parsed.Type.Load(ctx, parsed.Parsed)
		if err != nil {
			return err
		}
		c.Arguments[name] = &ParsedArgument{Range: parsed.Range, Type: parsed.Type, Parsed: loaded}
	}
	if c.Child != nil {
		return c.Child.LoadArguments(ctx)
	}
	return nil
}

// ParseResults is everything Dispatcher.Parse produces: the matched
// context chain, the reader left at wherever matching stopped, and any
// errors accumulated per node that was attempted and failed along the
// winning path's siblings.
type ParseResults struct {
	Context *CommandContext
	Reader  *StringReader
	Errs    map[CommandNode]error
}

// Parse parses input into a ParseResults without executing anything,
// exactly mirroring ParseReader(source, &StringReader{String: input}).
func (d *Dispatcher) Parse(source context.Context, input string) *ParseResults {
	return d.ParseReader(source, &StringReader{String: input})
}

// ParseReader parses rd against the dispatcher's root into a ParseResults.
func (d *Dispatcher) ParseReader(source context.Context, rd *StringReader) *ParseResults {
	ctx := newCommandContext(source, &d.Root, rd.String)
	return d.parseNodes(&d.Root, rd, ctx)
}

// parseNodes implements the non-deterministic descent: every relevant
// child of node is attempted independently against a clone of rd and ctx;
// the best-scoring potential (no leftover input, then fewest errors, else
// first attempted) is returned as it is, and the errors of this level's
// failed siblings are dropped. Only when no child succeeds does the result
// carry this level's errors.
func (d *Dispatcher) parseNodes(node CommandNode, originalReader *StringReader, ctxSoFar *CommandContext) *ParseResults {
	source := ctxSoFar.Context
	errs := map[CommandNode]error{}

	var potentials []*ParseResults
	relevant := node.RelevantNodes(originalReader)

	for _, child := range relevant {
		if req := child.Requirement(); req != nil {
			if failure := req(source); failure != nil {
				if failure.Reason != nil {
					errs[child] = failure
				}
				continue
			}
		}
		childCtx := newCommandContext(source, ctxSoFar.RootNode, ctxSoFar.Input)
		copied := ctxSoFar.Copy()
		childCtx.Arguments = copied.Arguments
		childCtx.Nodes = copied.Nodes
		reader := originalReader.Clone()

		var parseErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					parseErr = &CommandSyntaxError{Err: &ReaderError{Err: &UnknownError{Thing: "argument"}, Reader: reader}}
				}
			}()
			parseErr = child.Parse(childCtx, reader)
		}()
		if parseErr != nil {
			errs[child] = parseErr
			reader.Cursor = originalReader.Cursor
			continue
		}

		// A redirecting child only needs the separator itself to keep
		// going (the target may match with no further input of its own);
		// any other child needs the separator plus at least one more
		// character for its own children to have something to parse.
		// Falling short of that leaves the separator unconsumed and the
		// current match stands as a complete leaf parse.
		needed := 2
		if child.Redirect() != nil {
			needed = 1
		}

		if !reader.CanReadLen(needed) {
			potentials = append(potentials, &ParseResults{
				Context: childCtx.build(childCtx.Input),
				Reader:  reader,
				Errs:    nil,
			})
			continue
		}

		if reader.Peek() != ArgumentSeparator {
			errs[child] = &CommandSyntaxError{Err: &ReaderError{Err: &ExpectedArgumentSeparatorError{}, Reader: reader}}
			reader.Cursor = originalReader.Cursor
			continue
		}
		reader.Skip()

		if child.Redirect() != nil {
			target := child.Redirect()
			fresh := newCommandContext(childCtx, target, childCtx.Input)
			fresh.Range = &StringRange{Start: reader.Cursor, End: reader.Cursor}
			grandResult := d.parseNodes(target, reader, fresh)
			childCtx.Child = grandResult.Context
			return &ParseResults{Context: childCtx, Reader: grandResult.Reader, Errs: grandResult.Errs}
		}

		// Ordinary (non-redirect) descent passes childCtx down as the next
		// level's ctxSoFar rather than nesting a Child: the next level
		// starts each of its own attempts from a new context seeded with
		// these Arguments/Nodes, whose Command/Range come only from the
		// deeper matched node, so the deepest match's executor is the one
		// selected. Child is reserved for redirect boundaries (above),
		// which genuinely start a new, independent context.
		potentials = append(potentials, d.parseNodes(child, reader, childCtx))
	}

	if len(potentials) > 0 {
		if len(potentials) > 1 {
			sort.SliceStable(potentials, func(i, j int) bool {
				a, b := potentials[i], potentials[j]
				if a.Reader.CanRead() != b.Reader.CanRead() {
					return !a.Reader.CanRead() // no leftover input wins
				}
				return len(a.Errs) < len(b.Errs)
			})
		}
		return potentials[0]
	}

	return &ParseResults{Context: ctxSoFar, Reader: originalReader, Errs: errs}
}
