package cmdparser

import (
	"context"
	"strings"
)

// Usage syntax constants used by AllUsage/SmartUsage rendering.
const (
	UsageOptionalOpen  = '['
	UsageOptionalClose = ']'
	UsageRequiredOpen  = '('
	UsageRequiredClose = ')'
	UsageOr            = '|'
)

// AllUsage renders every permitted path from node down, one per line, as
// plain space-joined usage strings (no optional-grouping).
func (d *Dispatcher) AllUsage(node CommandNode, source context.Context, restricted bool) []string {
	var result []string
	d.allUsage(node, source, &result, "", restricted)
	return result
}

func (d *Dispatcher) allUsage(node CommandNode, source context.Context, result *[]string, prefix string, restricted bool) {
	if restricted && node.CheckRequirement(source) != nil {
		return
	}
	if prefix != "" {
		*result = append(*result, prefix)
	}
	if node.Redirect() != nil {
		redirect := "..."
		if _, ok := node.Redirect().(*RootCommandNode); !ok {
			redirect = "-> " + node.Redirect().UsageText()
		}
		next := redirect
		if prefix != "" {
			next = prefix + ArgumentSeparatorString + redirect
		}
		*result = append(*result, next)
		return
	}
	for _, child := range node.Children().Values() {
		next := child.UsageText()
		if prefix != "" {
			next = prefix + ArgumentSeparatorString + child.UsageText()
		}
		d.allUsage(child, source, result, next, restricted)
	}
}

// ArgumentSeparatorString is the string form of ArgumentSeparator, used to
// join rendered usage tokens.
const ArgumentSeparatorString = string(ArgumentSeparator)

// SmartUsage renders, for each permitted direct child of node, a single
// usage string summarizing that child's own subtree: required children and
// a lone optional child are rendered inline, multiple permitted children
// are grouped with UsageOr inside UsageRequiredOpen/Close.
func (d *Dispatcher) SmartUsage(node CommandNode, source context.Context) CommandNodeStringMap {
	result := NewCommandNodeStringMap()
	optional := node.Command() != nil
	for _, child := range node.Children().Values() {
		if child.CheckRequirement(source) != nil {
			continue
		}
		usage := d.smartUsage(child, source, optional, false)
		if usage != "" {
			result.Put(child, usage)
		}
	}
	return result
}

func (d *Dispatcher) smartUsage(node CommandNode, source context.Context, optional, deep bool) string {
	if !optional {
		if node.Command() != nil {
			return node.UsageText()
		}
		return d.smartUsageChildren(node, source, node.UsageText())
	}
	self := string(UsageOptionalOpen) + node.UsageText() + string(UsageOptionalClose)
	if node.Command() != nil {
		return self
	}
	return d.smartUsageChildren(node, source, self)
}

func (d *Dispatcher) smartUsageChildren(node CommandNode, source context.Context, self string) string {
	children := node.Children().Values()
	var permitted []CommandNode
	for _, c := range children {
		if c.CheckRequirement(source) == nil {
			permitted = append(permitted, c)
		}
	}
	switch len(permitted) {
	case 0:
		return self
	case 1:
		child := permitted[0]
		rest := d.smartUsage(child, source, child.Command() != nil, true)
		return self + ArgumentSeparatorString + rest
	default:
		names := make([]string, 0, len(permitted))
		for _, c := range permitted {
			names = append(names, c.UsageText())
		}
		return self + ArgumentSeparatorString + string(UsageRequiredOpen) + strings.Join(names, string(UsageOr)) + string(UsageRequiredClose)
	}
}
