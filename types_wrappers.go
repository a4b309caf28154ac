package cmdparser

import (
	"context"
	"fmt"
)

// SimpleArgumentType is an ArgumentType with no asynchronous resolution —
// the shape AsSimple projects into a full ArgumentType by supplying an
// identity Load.
type SimpleArgumentType interface {
	Parse(rd *StringReader) (interface{}, error)
	Examples() []string
	String() string
}

type asSimpleType struct{ SimpleArgumentType }

func (t asSimpleType) Load(_ context.Context, parsed interface{}) (interface{}, error) {
	return parsed, nil
}

// AsSimple wraps inner, whose T already equals its P, into a full
// ArgumentType with an identity Load.
func AsSimple(inner SimpleArgumentType) ArgumentType { return asSimpleType{inner} }

// LazyLoader resolves a token previously captured by Lazy's Parse step
// into its final value, run only once the surrounding alternative has won.
type LazyLoader func(ctx context.Context, token string) (interface{}, error)

type lazyType struct {
	word   bool
	loader LazyLoader
}

// Lazy parses an opaque token — a single word if word is true, otherwise
// the rest of the input — deferring real resolution to loader, which runs
// from Load.
func Lazy(word bool, loader LazyLoader) ArgumentType { return &lazyType{word: word, loader: loader} }

func (t *lazyType) Parse(rd *StringReader) (interface{}, error) {
	if t.word {
		return rd.ReadUnquotedString(), nil
	}
	s := rd.Remaining()
	rd.Cursor = len(rd.String)
	return s, nil
}

func (t *lazyType) Load(ctx context.Context, parsed interface{}) (interface{}, error) {
	return t.loader(ctx, parsed.(string))
}

func (t *lazyType) Examples() []string { return nil }
func (t *lazyType) String() string {
	if t.word {
		return "lazy word"
	}
	return "lazy phrase"
}

// listParsed is the intermediate P carried between List's Parse and Load:
// one parsed-but-not-loaded value per element, in encounter order.
type listParsed struct {
	elems []interface{}
}

type listType struct {
	elem          ArgumentType
	sep           rune
	min, max      int
	dedupOnParsed bool
}

// List collects between min and max elements of elem, split on sep,
// deduplicating on the parsed representation if dedupOnParsed is true or
// on the loaded representation otherwise. max <= 0 means unbounded.
func List(elem ArgumentType, sep rune, min, max int, dedupOnParsed bool) ArgumentType {
	return &listType{elem: elem, sep: sep, min: min, max: max, dedupOnParsed: dedupOnParsed}
}

func (t *listType) Parse(rd *StringReader) (interface{}, error) {
	var elems []interface{}
	seen := map[string]bool{}
	for {
		start := rd.Cursor
		v, err := t.elem.Parse(rd)
		if err != nil {
			return nil, err
		}
		if t.dedupOnParsed {
			key := fmt.Sprint(v)
			if !seen[key] {
				seen[key] = true
				elems = append(elems, v)
			}
		} else {
			elems = append(elems, v)
		}
		if t.max > 0 && len(elems) >= t.max {
			break
		}
		if !rd.CanRead() || rd.Peek() != t.sep {
			break
		}
		rd.Skip()
		if rd.Cursor == start+1 && !rd.CanRead() {
			return nil, &CommandSyntaxError{Err: &ReaderError{Err: &BadSeparatorError{Separator: t.sep}, Reader: rd}}
		}
	}
	if len(elems) < t.min {
		return nil, &CommandSyntaxError{Err: &ReaderError{
			Err:    &ExpectedError{Thing: fmt.Sprintf("at least %d elements", t.min)},
			Reader: rd,
		}}
	}
	return &listParsed{elems: elems}, nil
}

func (t *listType) Load(ctx context.Context, parsed interface{}) (interface{}, error) {
	p := parsed.(*listParsed)
	loaded := make([]interface{}, 0, len(p.elems))
	seen := map[string]bool{}
	for _, elem := range p.elems {
		v, err := t.elem.Load(ctx, elem)
		if err != nil {
			return nil, err
		}
		if t.dedupOnParsed {
			loaded = append(loaded, v)
			continue
		}
		key := fmt.Sprint(v)
		if !seen[key] {
			seen[key] = true
			loaded = append(loaded, v)
		}
	}
	return loaded, nil
}

func (t *listType) Examples() []string {
	examples := t.elem.Examples()
	if len(examples) == 0 {
		return nil
	}
	out := make([]string, len(examples))
	for i, e := range examples {
		out[i] = e + string(t.sep) + e
	}
	return out
}

func (t *listType) String() string { return fmt.Sprintf("list(%s)", t.elem) }

// errorableParsed remembers which of primary/fallback actually matched so
// Load can dispatch to the matching type.
type errorableParsed struct {
	usedPrimary bool
	value       interface{}
}

type errorableType struct{ primary, fallback ArgumentType }

// Errorable tries primary first; if it fails to parse, the reader is
// rewound and fallback is tried instead. Both failing surfaces primary's
// error, since that is the type callers configured as the preferred one.
func Errorable(primary, fallback ArgumentType) ArgumentType {
	return &errorableType{primary: primary, fallback: fallback}
}

func (t *errorableType) Parse(rd *StringReader) (interface{}, error) {
	start := rd.Cursor
	v, err := t.primary.Parse(rd)
	if err == nil {
		return &errorableParsed{usedPrimary: true, value: v}, nil
	}
	rd.Cursor = start
	v2, err2 := t.fallback.Parse(rd)
	if err2 != nil {
		rd.Cursor = start
		return nil, err
	}
	return &errorableParsed{usedPrimary: false, value: v2}, nil
}

func (t *errorableType) Load(ctx context.Context, parsed interface{}) (interface{}, error) {
	p := parsed.(*errorableParsed)
	if p.usedPrimary {
		return t.primary.Load(ctx, p.value)
	}
	return t.fallback.Load(ctx, p.value)
}

func (t *errorableType) Examples() []string {
	return append(append([]string{}, t.primary.Examples()...), t.fallback.Examples()...)
}

func (t *errorableType) String() string {
	return fmt.Sprintf("errorable(%s, %s)", t.primary, t.fallback)
}
