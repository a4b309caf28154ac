package cmdparser

import (
	"context"
	"fmt"
	"strings"
)

// Dispatcher owns the root of the command tree and is the package's
// primary façade: register builders, parse input, execute a parse result,
// render usage, and compute completion suggestions.
type Dispatcher struct {
	Root RootCommandNode
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Register builds command and adds it as a child of the root, returning
// the built node so callers can Redirect to it.
func (d *Dispatcher) Register(command Builder) *LiteralCommandNode {
	built := command.Build().(*LiteralCommandNode)
	d.Root.AddChild(built)
	return built
}

// RegisterBuilt adds an already-built literal node as a child of the root.
func (d *Dispatcher) RegisterBuilt(node *LiteralCommandNode) *LiteralCommandNode {
	d.Root.AddChild(node)
	return node
}

// Unregister removes name from the root's direct children, if present.
func (d *Dispatcher) Unregister(name string) {
	if child, ok := d.Root.Children().Get(name); ok {
		if lit, ok := child.(*LiteralCommandNode); ok {
			for _, spelling := range lit.names() {
				key := strings.ToLower(spelling)
				if d.Root.Literals()[key] == lit {
					delete(d.Root.Literals(), key)
				}
			}
		}
	}
	d.Root.Children().Remove(name)
	delete(d.Root.Arguments(), name)
}

// ParseExecute parses input and, if it fully matched, executes it;
// combines Parse+Execute for the common case where callers never need the
// intermediate ParseResults.
func (d *Dispatcher) ParseExecute(source context.Context, input string) (int, error) {
	return d.Execute(d.Parse(source, input))
}

// Execute walks the matched context chain of parse, loading every
// argument and invoking, in order, the command selected in each context of
// the chain (the deepest matched node's executor before each redirect
// boundary, and at the end).
// If the walk never forked, the first error aborts and is returned
// directly. Once any node in the chain forks, subsequent errors are
// instead collected and returned together wrapped in a single error; the
// returned count is the number of commands that ran successfully.
func (d *Dispatcher) Execute(parse *ParseResults) (int, error) {
	if parse.Reader.CanRead() {
		if len(parse.Errs) == 1 {
			for _, err := range parse.Errs {
				return 0, err
			}
		}
		if parse.Context.HasNodes() {
			return 0, &CommandSyntaxError{Err: &ReaderError{Err: &UnknownError{Thing: "argument"}, Reader: parse.Reader}}
		}
		return 0, &CommandSyntaxError{Err: &ReaderError{Err: &UnknownError{Thing: "command"}, Reader: parse.Reader}}
	}

	ctx := parse.Context
	if ctx.Command == nil && ctx.Child == nil {
		return 0, ErrDispatcherUnknownCommand
	}

	if err := ctx.LoadArguments(ctx.Context); err != nil {
		return 0, err
	}

	return d.executeChain(ctx, false)
}

func (d *Dispatcher) executeChain(ctx *CommandContext, forked bool) (int, error) {
	forked = forked || ctx.Forks
	successCount := 0

	if ctx.Modifier != nil {
		sources, err := ctx.Modifier.Apply(ctx)
		if err != nil {
			return 0, err
		}
		var errs []error
		for _, source := range sources {
			branch := ctx.CopyFor(source)
			branch.Modifier = nil
			n, err := d.executeChain(branch, forked)
			successCount += n
			if err != nil {
				if forked {
					errs = append(errs, err)
					continue
				}
				return successCount, err
			}
		}
		if len(errs) > 0 {
			return successCount, combineErrors(errs)
		}
		return successCount, nil
	}

	if ctx.Command != nil {
		if err := ctx.Command.Run(ctx); err != nil {
			return successCount, err
		}
		successCount++
	}

	if ctx.Child != nil {
		n, err := d.executeChain(ctx.Child, forked)
		successCount += n
		if err != nil {
			return successCount, err
		}
	}

	return successCount, nil
}

// combineErrors joins a forked execution's per-branch errors into one.
func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%d forked commands failed: %s", len(errs), strings.Join(msgs, "; "))
}

// Path returns the dotted Literal/Name chain from the root down to target,
// or nil if target is not reachable from the root.
func (d *Dispatcher) Path(target CommandNode) []string {
	var walk func(node CommandNode, path []string) []string
	walk = func(node CommandNode, path []string) []string {
		if node == target {
			return path
		}
		for _, child := range node.Children().Values() {
			if found := walk(child, append(path, child.Name())); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(&d.Root, nil)
}

// FindNode resolves a dotted path (as returned by Path) to its node,
// starting from the root.
func (d *Dispatcher) FindNode(path []string) CommandNode {
	var node CommandNode = &d.Root
	for _, name := range path {
		child, ok := node.Children().Get(name)
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Get resolves a single space-joined path string via FindNode.
func (d *Dispatcher) Get(path string) CommandNode {
	if path == "" {
		return &d.Root
	}
	return d.FindNode(strings.Split(path, string(ArgumentSeparator)))
}
