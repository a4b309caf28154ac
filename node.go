package cmdparser

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// RequireFn gates whether a node is visible/usable for the given source
// context. Returning nil means permitted. Returning a non-nil
// *RequirementFailedError with a non-nil Reason means the node should be
// reported as denied; with a nil Reason it means the node should be
// silently omitted, per spec §4.1/§7.
type RequireFn func(ctx context.Context) *RequirementFailedError

// andRequire combines two requirements by conjunction: a fails first, then
// b. Requires is accumulating — each call on a builder ANDs onto whatever
// was already configured.
func andRequire(a, b RequireFn) RequireFn {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return func(ctx context.Context) *RequirementFailedError {
			if f := a(ctx); f != nil {
				return f
			}
			return b(ctx)
		}
	}
}

// Command is the executor attached to a node.
type Command interface {
	Run(c *CommandContext) error
}

// CommandFunc adapts a function to Command.
type CommandFunc func(c *CommandContext) error

// Run implements Command.
func (cf CommandFunc) Run(c *CommandContext) error { return cf(c) }

// RedirectModifier derives the source (or sources, for a fork) a redirect
// continues execution with.
type RedirectModifier interface {
	Apply(ctx *CommandContext) ([]context.Context, error)
}

// ModifierFunc adapts a single-source-returning function to
// RedirectModifier.
type ModifierFunc func(ctx *CommandContext) (context.Context, error)

// Apply implements RedirectModifier, wrapping the single returned context
// in a one-element slice.
func (f ModifierFunc) Apply(ctx *CommandContext) ([]context.Context, error) {
	c, err := f(ctx)
	if err != nil {
		return nil, err
	}
	return []context.Context{c}, nil
}

// ForkFunc adapts a function that fans a context out into multiple
// sources (a genuine fork) to RedirectModifier.
type ForkFunc func(ctx *CommandContext) ([]context.Context, error)

// Apply implements RedirectModifier.
func (f ForkFunc) Apply(ctx *CommandContext) ([]context.Context, error) { return f(ctx) }

// CommandNode is a vertex of the grammar tree: a root, a literal, or an
// argument. All three variants embed Node for the shared header and
// override the kind-specific methods (Parse, Name, UsageText, Examples).
type CommandNode interface {
	fmt.Stringer

	Name() string
	UsageText() string
	SortedKey() string

	Command() Command
	setCommand(Command)
	Requirement() RequireFn
	CanUse(ctx context.Context) bool
	CheckRequirement(ctx context.Context) *RequirementFailedError

	Redirect() CommandNode
	RedirectModifier() RedirectModifier
	IsFork() bool

	Children() StringCommandNodeMap
	ChildrenOrdered() StringCommandNodeMap
	Literals() map[string]*LiteralCommandNode
	Arguments() map[string]*ArgumentCommandNode
	AddChild(nodes ...CommandNode)
	RelevantNodes(input *StringReader) []CommandNode

	Parse(ctx *CommandContext, rd *StringReader) error
	IsValidInput(input string) bool

	Examples() []string
}

// Node is the header shared by every CommandNode variant: children plus
// requirement/redirect/executor metadata. A node may not have children AND
// be a redirect at the same time (Forward refuses to set a redirect on a
// node that already has children, and AddChild is never called after a
// redirect is set by the builder).
type Node struct {
	children    StringCommandNodeMap
	literals    map[string]*LiteralCommandNode
	arguments   map[string]*ArgumentCommandNode
	requirement RequireFn
	redirect    CommandNode
	command     Command
	modifier    RedirectModifier
	forks       bool
}

func (n *Node) Children() StringCommandNodeMap {
	if n.children == nil {
		n.children = NewStringCommandNodeMap()
	}
	return n.children
}

// ChildrenOrdered is an alias of Children kept for parity with the
// teacher's usage-rendering call sites, which read more naturally with an
// explicit "ordered" name at call sites that rely on determinism.
func (n *Node) ChildrenOrdered() StringCommandNodeMap { return n.Children() }

func (n *Node) Literals() map[string]*LiteralCommandNode {
	if n.literals == nil {
		n.literals = map[string]*LiteralCommandNode{}
	}
	return n.literals
}

func (n *Node) Arguments() map[string]*ArgumentCommandNode {
	if n.arguments == nil {
		n.arguments = map[string]*ArgumentCommandNode{}
	}
	return n.arguments
}

func (n *Node) Command() Command             { return n.command }
func (n *Node) setCommand(c Command)         { n.command = c }
func (n *Node) Requirement() RequireFn       { return n.requirement }
func (n *Node) Redirect() CommandNode        { return n.redirect }
func (n *Node) RedirectModifier() RedirectModifier { return n.modifier }
func (n *Node) IsFork() bool                 { return n.forks }

// CanUse is the cheap, single-level requirement check the suggestion
// engine uses to decide whether to ask a child for completions at all.
func (n *Node) CanUse(ctx context.Context) bool {
	if n.requirement == nil {
		return true
	}
	return n.requirement(ctx) == nil
}

// CheckRequirement implements the three-valued visibility rule of spec
// §4.1: the local predicate's failure wins outright; otherwise a node with
// its own executor is always permitted; otherwise a node is permitted if
// its redirect target is permitted, or if any child is permitted; absent
// any of those, the first failure seen (the redirect target's, then each
// child's in order) is returned.
func (n *Node) CheckRequirement(ctx context.Context) *RequirementFailedError {
	if n.requirement != nil {
		if f := n.requirement(ctx); f != nil {
			return f
		}
	}
	if n.command != nil {
		return nil
	}
	var mostSpecific *RequirementFailedError
	if n.redirect != nil {
		f := n.redirect.CheckRequirement(ctx)
		if f == nil {
			return nil
		}
		mostSpecific = f
	}
	for _, child := range n.Children().Values() {
		f := child.CheckRequirement(ctx)
		if f == nil {
			return nil
		}
		if mostSpecific == nil {
			mostSpecific = f
		}
	}
	return mostSpecific
}

// AddChild inserts nodes as children, merging onto an existing child of
// the same name (adopting the incoming executor if present, and folding
// in grandchildren recursively) per spec §4.1. The root node can never be
// added as a child of anything. After every insertion the children map is
// rebuilt sorted: literals before arguments, then by SortedKey within a
// kind.
func (n *Node) AddChild(nodes ...CommandNode) {
	for _, node := range nodes {
		if _, ok := node.(*RootCommandNode); ok {
			continue
		}
		if existing, ok := n.Children().Get(node.Name()); ok {
			if node.Command() != nil {
				existing.setCommand(node.Command())
			}
			existing.AddChild(node.Children().Values()...)
			continue
		}
		n.Children().Put(node.Name(), node)
		switch t := node.(type) {
		case *LiteralCommandNode:
			for _, name := range t.names() {
				n.Literals()[strings.ToLower(name)] = t
			}
		case *ArgumentCommandNode:
			n.Arguments()[node.Name()] = t
		}
	}
	n.resort()
}

// resort rebuilds the children map in the deterministic order the spec
// requires: all literal children before all argument children, each group
// ordered by SortedKey. The comparison is byte-order (strings.Compare)
// rather than locale-aware collation — see DESIGN.md for why that is a
// faithful substitute given the ASCII-only examples and tests this module
// ships with.
func (n *Node) resort() {
	if n.children == nil || n.children.Size() == 0 {
		return
	}
	all := n.children.Values()
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		_, aLit := a.(*LiteralCommandNode)
		_, bLit := b.(*LiteralCommandNode)
		if aLit != bLit {
			return aLit // literals first
		}
		return strings.Compare(a.SortedKey(), b.SortedKey()) < 0
	})
	fresh := NewStringCommandNodeMap()
	for _, c := range all {
		fresh.Put(c.Name(), c)
	}
	n.children = fresh
}

// RelevantNodes implements the getRelevant optimization of spec §4.1: if
// the node has literal children, peek one whitespace-delimited token and
// return only the literal child it names (if any), matched
// case-insensitively to agree with LiteralCommandNode.tryMatch; otherwise,
// or if no literal matched, return every argument child.
func (n *Node) RelevantNodes(input *StringReader) []CommandNode {
	if len(n.literals) != 0 {
		cursor := input.Cursor
		token := input.ReadUntil(func(c rune) bool { return c != ArgumentSeparator })
		input.Cursor = cursor
		if literal, ok := n.literals[strings.ToLower(token)]; ok {
			return []CommandNode{literal}
		}
	}
	nodes := make([]CommandNode, 0, len(n.arguments))
	for _, c := range n.Children().Values() {
		if _, ok := c.(*ArgumentCommandNode); ok {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// RootCommandNode is the implicit, unnamed parent of every registered
// command. It is never itself matched and is trivially permitted.
type RootCommandNode struct{ Node }

func (r *RootCommandNode) String() string                             { return "<root>" }
func (r *RootCommandNode) Name() string                                { return "" }
func (r *RootCommandNode) SortedKey() string                           { return "" }
func (r *RootCommandNode) UsageText() string                           { return "" }
func (r *RootCommandNode) Examples() []string                          { return nil }
func (r *RootCommandNode) IsValidInput(string) bool                    { return false }
func (r *RootCommandNode) Parse(*CommandContext, *StringReader) error  { return nil }

const (
	// UsageArgumentOpen opens an argument's usage rendering.
	UsageArgumentOpen rune = '['
	// UsageArgumentClose closes an argument's usage rendering.
	UsageArgumentClose rune = ']'
)

// LiteralCommandNode matches one of a fixed, case-insensitive list of
// literal names: Literal is canonical, Aliases are the other spellings.
type LiteralCommandNode struct {
	Node
	Literal string
	Aliases []string

	cachedLowerCase string
}

func (n *LiteralCommandNode) String() string    { return n.Literal }
func (n *LiteralCommandNode) Name() string      { return n.Literal }
func (n *LiteralCommandNode) SortedKey() string { return n.Literal }
func (n *LiteralCommandNode) UsageText() string { return n.Literal }
func (n *LiteralCommandNode) Examples() []string {
	return append([]string{n.Literal}, n.Aliases...)
}

// lowerCase returns, and memoizes, the lower-cased canonical literal used
// by suggestion prefix matching.
func (n *LiteralCommandNode) lowerCase() string {
	if n.cachedLowerCase == "" {
		n.cachedLowerCase = strings.ToLower(n.Literal)
	}
	return n.cachedLowerCase
}

// names returns every accepted case-insensitive spelling: canonical plus
// aliases.
func (n *LiteralCommandNode) names() []string {
	return append([]string{n.Literal}, n.Aliases...)
}

// IsValidInput reports whether input, matched case-insensitively against
// the canonical literal or any alias, is immediately followed by EOF or
// the argument separator.
func (n *LiteralCommandNode) IsValidInput(input string) bool {
	rd := &StringReader{String: input}
	return n.tryMatch(rd) >= 0
}

func (n *LiteralCommandNode) tryMatch(rd *StringReader) int {
	start := rd.Cursor
	for _, name := range n.names() {
		rd.Cursor = start
		if !rd.CanReadLen(len(name)) {
			continue
		}
		end := rd.Cursor + len(name)
		if !strings.EqualFold(rd.String[rd.Cursor:end], name) {
			continue
		}
		rd.Cursor = end
		if !rd.CanRead() || rd.Peek() == ArgumentSeparator {
			return end
		}
	}
	rd.Cursor = start
	return -1
}

// Parse matches the literal (or one of its aliases) and, on success,
// stamps the (node, range) pair into ctx.
func (n *LiteralCommandNode) Parse(ctx *CommandContext, rd *StringReader) error {
	start := rd.Cursor
	end := n.tryMatch(rd)
	if end < 0 {
		return &CommandSyntaxError{Err: &ReaderError{Err: &LiteralError{Literal: n.Literal}, Reader: rd}}
	}
	ctx.withNode(n, &StringRange{Start: start, End: end})
	return nil
}

// ArgumentCommandNode has a typed Type and an optional per-node
// suggestion override.
type ArgumentCommandNode struct {
	Node
	name              string
	argType           ArgumentType
	customSuggestions SuggestionProvider
}

func (a *ArgumentCommandNode) String() string     { return a.name }
func (a *ArgumentCommandNode) Name() string       { return a.name }
func (a *ArgumentCommandNode) SortedKey() string  { return a.name }
func (a *ArgumentCommandNode) Type() ArgumentType { return a.argType }
func (a *ArgumentCommandNode) UsageText() string {
	return fmt.Sprintf("%c%s%c", UsageArgumentOpen, a.name, UsageArgumentClose)
}
func (a *ArgumentCommandNode) Examples() []string { return a.argType.Examples() }
func (a *ArgumentCommandNode) CustomSuggestions() SuggestionProvider {
	return a.customSuggestions
}

// IsValidInput reports whether the argument type can parse input to
// completion without leaving unread content behind.
func (a *ArgumentCommandNode) IsValidInput(input string) bool {
	rd := &StringReader{String: input}
	_, err := a.argType.Parse(rd)
	return err == nil && !rd.CanRead()
}

// Parse runs the argument type's synchronous Parse step (Load happens
// later, see CommandContext.LoadArguments) and stamps a ParsedArgument
// plus the (node, range) pair into ctx.
func (a *ArgumentCommandNode) Parse(ctx *CommandContext, rd *StringReader) error {
	start := rd.Cursor
	result, err := a.argType.Parse(rd)
	if err != nil {
		return fmt.Errorf("error parsing argument %q: %w", a.name, err)
	}
	parsed := &ParsedArgument{
		Range:  &StringRange{Start: start, End: rd.Cursor},
		Type:   a.argType,
		Parsed: result,
	}
	ctx.withArgument(a.name, parsed)
	ctx.withNode(a, parsed.Range)
	return nil
}
