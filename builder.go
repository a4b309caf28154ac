package cmdparser

// NodeBuilder is implemented by every concrete builder type and produces
// the immutable node it describes.
type NodeBuilder interface {
	Build() CommandNode
}

// Builder is the full fluent interface returned by every chainable method
// on ArgumentBuilder. Because Go has no covariant "return Self" without
// generics, ArgumentBuilder stores the concrete builder it belongs to
// (self) and returns that through this interface, so a chain like
// Literal("foo").Requires(r).Executes(c).Build() keeps resolving to the
// same concrete *LiteralArgumentBuilder all the way to Build.
type Builder interface {
	NodeBuilder

	Then(argument NodeBuilder) Builder
	ThenNodes(nodes ...CommandNode) Builder
	Children() []CommandNode
	Executes(command Command) Builder
	ExecutesFunc(f func(c *CommandContext) error) Builder
	Requires(requirement RequireFn) Builder
	Redirect(target CommandNode) Builder
	RedirectWithModifier(target CommandNode, modifier RedirectModifier) Builder
	Fork(target CommandNode, modifier RedirectModifier) Builder
	Forward(target CommandNode, modifier RedirectModifier, fork bool) Builder
}

// ArgumentBuilder is the fluent, mutable recipe a LiteralArgumentBuilder or
// RequiredArgumentBuilder embeds. Calling Build materializes it into an
// immutable CommandNode tree, folding in every child built so far.
type ArgumentBuilder struct {
	self        Builder
	arguments   *RootCommandNode
	command     Command
	requirement RequireFn
	target      CommandNode
	modifier    RedirectModifier
	forks       bool
}

func newArgumentBuilder() *ArgumentBuilder {
	return &ArgumentBuilder{arguments: &RootCommandNode{}}
}

// Then appends a built child node.
func (b *ArgumentBuilder) Then(argument NodeBuilder) Builder {
	if b.target != nil {
		panic("cannot add children to a redirected node")
	}
	b.arguments.AddChild(argument.Build())
	return b.self
}

// ThenNodes appends already-built child nodes.
func (b *ArgumentBuilder) ThenNodes(nodes ...CommandNode) Builder {
	if b.target != nil {
		panic("cannot add children to a redirected node")
	}
	b.arguments.AddChild(nodes...)
	return b.self
}

// Children returns the children accumulated so far.
func (b *ArgumentBuilder) Children() []CommandNode { return b.arguments.Children().Values() }

// Executes sets the command run when this node is the final match.
func (b *ArgumentBuilder) Executes(command Command) Builder {
	b.command = command
	return b.self
}

// ExecutesFunc is a convenience wrapper around Executes for a plain
// function.
func (b *ArgumentBuilder) ExecutesFunc(f func(c *CommandContext) error) Builder {
	return b.Executes(CommandFunc(f))
}

// Requires ANDs requirement onto whatever requirement was already set.
func (b *ArgumentBuilder) Requires(requirement RequireFn) Builder {
	b.requirement = andRequire(b.requirement, requirement)
	return b.self
}

// Redirect makes this node, once matched, continue parsing against
// target's children instead of its own (no executor of its own is
// expected, and it may not also have children).
func (b *ArgumentBuilder) Redirect(target CommandNode) Builder {
	return b.forward(target, nil, false)
}

// RedirectWithModifier is Redirect plus a RedirectModifier deriving the
// continuation source(s) from the matched context.
func (b *ArgumentBuilder) RedirectWithModifier(target CommandNode, modifier RedirectModifier) Builder {
	return b.forward(target, modifier, false)
}

// Fork is RedirectWithModifier with Forks set: the modifier may legitimately
// return more than one derived context, each continuing execution
// independently, and subsequent errors are collected rather than aborting
// the walk.
func (b *ArgumentBuilder) Fork(target CommandNode, modifier RedirectModifier) Builder {
	return b.forward(target, modifier, true)
}

func (b *ArgumentBuilder) forward(target CommandNode, modifier RedirectModifier, forks bool) Builder {
	if b.arguments.Children().Size() > 0 {
		panic("cannot forward a node with children")
	}
	b.target = target
	b.modifier = modifier
	b.forks = forks
	return b.self
}

// Forward is an alias of RedirectWithModifier/Fork matching the teacher's
// naming for "redirect, optionally forking".
func (b *ArgumentBuilder) Forward(target CommandNode, modifier RedirectModifier, fork bool) Builder {
	if fork {
		return b.Fork(target, modifier)
	}
	return b.RedirectWithModifier(target, modifier)
}

func (b *ArgumentBuilder) applyTo(n *Node) {
	n.children = b.arguments.Children()
	n.literals = b.arguments.Literals()
	n.arguments = b.arguments.Arguments()
	n.command = b.command
	n.requirement = b.requirement
	n.redirect = b.target
	n.modifier = b.modifier
	n.forks = b.forks
}

// LiteralArgumentBuilder builds a LiteralCommandNode.
type LiteralArgumentBuilder struct {
	*ArgumentBuilder
	literal string
	aliases []string
}

// Literal starts a new LiteralArgumentBuilder for name.
func Literal(name string) *LiteralArgumentBuilder {
	b := &LiteralArgumentBuilder{literal: name, ArgumentBuilder: newArgumentBuilder()}
	b.ArgumentBuilder.self = b
	return b
}

// Aliases adds additional case-insensitive spellings accepted alongside
// the canonical literal.
func (b *LiteralArgumentBuilder) Aliases(aliases ...string) *LiteralArgumentBuilder {
	b.aliases = append(b.aliases, aliases...)
	return b
}

// Build materializes the LiteralCommandNode.
func (b *LiteralArgumentBuilder) Build() CommandNode {
	n := &LiteralCommandNode{Literal: b.literal, Aliases: b.aliases}
	b.applyTo(&n.Node)
	return n
}

// RequiredArgumentBuilder builds an ArgumentCommandNode.
type RequiredArgumentBuilder struct {
	*ArgumentBuilder
	name        string
	argType     ArgumentType
	suggestions SuggestionProvider
}

// Argument starts a new RequiredArgumentBuilder for name typed as argType.
func Argument(name string, argType ArgumentType) *RequiredArgumentBuilder {
	b := &RequiredArgumentBuilder{name: name, argType: argType, ArgumentBuilder: newArgumentBuilder()}
	b.ArgumentBuilder.self = b
	return b
}

// Suggests overrides the default argument-type suggestions with provider.
func (b *RequiredArgumentBuilder) Suggests(provider SuggestionProvider) *RequiredArgumentBuilder {
	b.suggestions = provider
	return b
}

// SuggestsFunc is a convenience wrapper around Suggests.
func (b *RequiredArgumentBuilder) SuggestsFunc(
	f func(ctx *CommandContext, builder *SuggestionsBuilder) (*Suggestions, error),
) *RequiredArgumentBuilder {
	return b.Suggests(SuggestionProviderFunc(f))
}

// Build materializes the ArgumentCommandNode.
func (b *RequiredArgumentBuilder) Build() CommandNode {
	n := &ArgumentCommandNode{name: b.name, argType: b.argType, customSuggestions: b.suggestions}
	b.applyTo(&n.Node)
	return n
}

var (
	_ Builder = (*LiteralArgumentBuilder)(nil)
	_ Builder = (*RequiredArgumentBuilder)(nil)
)
