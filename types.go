package cmdparser

import (
	"context"
	"fmt"
)

// ArgumentType parses raw input into an intermediate P value (Parse) and
// separately resolves P into the final T value (Load). Splitting the two
// lets the parser pick a winning alternative using only the cheap Parse
// step and defer any expensive or blocking resolution — a database lookup,
// an RPC, anything context-cancellable — to Load, which runs only once a
// path has already won against its siblings.
type ArgumentType interface {
	Parse(rd *StringReader) (parsed interface{}, err error)
	Load(ctx context.Context, parsed interface{}) (loaded interface{}, err error)
	Examples() []string
	fmt.Stringer
}

// SimpleType is embedded by argument types with no asynchronous
// resolution step: Load is the identity, Examples is empty by default and
// String returns Name. Embedders need only implement Parse.
type SimpleType struct{ Name string }

func (t SimpleType) Load(_ context.Context, parsed interface{}) (interface{}, error) {
	return parsed, nil
}
func (t SimpleType) Examples() []string { return nil }
func (t SimpleType) String() string     { return t.Name }

// StringMode selects how the String argument type reads its token.
type StringMode uint8

const (
	// SingleWord reads one IsAllowedInUnquotedString run.
	SingleWord StringMode = iota
	// QuotablePhase reads a quoted string, or a single word if unquoted.
	QuotablePhase
	// GreedyPhrase consumes everything remaining in the reader.
	GreedyPhrase
)

// StringArgumentType implements String/StringWord/StringPhrase depending
// on Mode.
type StringArgumentType struct {
	SimpleType
	Mode StringMode
}

// StringWord is the stock SingleWord string type.
var StringWord ArgumentType = &StringArgumentType{SimpleType{"word"}, SingleWord}

// String is the stock QuotablePhase string type.
var String ArgumentType = &StringArgumentType{SimpleType{"string"}, QuotablePhase}

// StringPhrase is the stock GreedyPhrase string type.
var StringPhrase ArgumentType = &StringArgumentType{SimpleType{"greedy string"}, GreedyPhrase}

func (t *StringArgumentType) Parse(rd *StringReader) (interface{}, error) {
	switch t.Mode {
	case GreedyPhrase:
		s := rd.Remaining()
		rd.Cursor = len(rd.String)
		return s, nil
	case SingleWord:
		return rd.ReadUnquotedString(), nil
	default:
		return rd.ReadString()
	}
}

func (t *StringArgumentType) Examples() []string {
	switch t.Mode {
	case GreedyPhrase:
		return []string{"word words with spaces", `"and symbols"`}
	case QuotablePhase:
		return []string{"word", `"words with spaces"`, `"and\\escaped"`}
	default:
		return []string{"word", "words_with_underscores"}
	}
}

// EscapeIfRequired quotes s if it contains a rune not allowed in an
// unquoted string, escaping embedded quotes/backslashes.
func EscapeIfRequired(s string) string {
	for _, c := range s {
		if !IsAllowedInUnquotedString(c) {
			return escape(s)
		}
	}
	return s
}

func escape(s string) string {
	out := []rune{SyntaxDoubleQuote}
	for _, c := range s {
		if c == SyntaxDoubleQuote || c == SyntaxEscape {
			out = append(out, SyntaxEscape)
		}
		out = append(out, c)
	}
	out = append(out, SyntaxDoubleQuote)
	return string(out)
}

// BoolArgumentType is the stock "true"/"false" type.
type BoolArgumentType struct{ SimpleType }

// Bool is the stock bool argument type.
var Bool ArgumentType = &BoolArgumentType{SimpleType{"bool"}}

func (t *BoolArgumentType) Parse(rd *StringReader) (interface{}, error) { return rd.ReadBool() }
func (t *BoolArgumentType) Examples() []string                         { return []string{"true", "false"} }

// Int32ArgumentType is a base-10 int32 bounded to [Min,Max].
type Int32ArgumentType struct {
	SimpleType
	Min, Max int32
}

// Int32 is the stock unbounded int32 type.
var Int32 ArgumentType = &Int32ArgumentType{SimpleType{"integer"}, minInt32, maxInt32}

const (
	minInt32 = -(1 << 31)
	maxInt32 = (1 << 31) - 1
	minInt64 = -(1 << 63)
	maxInt64 = (1 << 63) - 1
)

func (t *Int32ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	start := rd.Cursor
	v, err := rd.ReadInt32()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooLow, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	if v > t.Max {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooHigh, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	return v, nil
}

// Int64ArgumentType is a base-10 int64 bounded to [Min,Max].
type Int64ArgumentType struct {
	SimpleType
	Min, Max int64
}

// Int64 is the stock unbounded int64 type.
var Int64 ArgumentType = &Int64ArgumentType{SimpleType{"integer64"}, minInt64, maxInt64}

func (t *Int64ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	start := rd.Cursor
	v, err := rd.ReadInt64()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooLow, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	if v > t.Max {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooHigh, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	return v, nil
}

// Float32ArgumentType is a float32 bounded to [Min,Max].
type Float32ArgumentType struct {
	SimpleType
	Min, Max float32
}

// Float64ArgumentType is a float64 bounded to [Min,Max].
type Float64ArgumentType struct {
	SimpleType
	Min, Max float64
}

// Float32 is the stock unbounded float32 type.
var Float32 ArgumentType = &Float32ArgumentType{SimpleType{"float"}, -maxFloat32, maxFloat32}

// Float64 is the stock unbounded float64 type.
var Float64 ArgumentType = &Float64ArgumentType{SimpleType{"double"}, -maxFloat64, maxFloat64}

const (
	maxFloat32 = 3.40282346638528859811704183484516925440e+38
	maxFloat64 = 1.797693134862315708145274237317043567981e+308
)

func (t *Float32ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	start := rd.Cursor
	v, err := rd.ReadFloat32()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooLow, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	if v > t.Max {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooHigh, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	return v, nil
}

func (t *Float64ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	start := rd.Cursor
	v, err := rd.ReadFloat64()
	if err != nil {
		return nil, err
	}
	if v < t.Min {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooLow, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	if v > t.Max {
		rd.Cursor = start
		return nil, &CommandSyntaxError{Err: &ReaderError{Err: &RangeError{FailType: RangeTooHigh, Type: t, Got: v, Min: t.Min, Max: t.Max}, Reader: rd}}
	}
	return v, nil
}

// argument looks up a loaded argument value by name, panicking (as the
// teacher's accessors do) if it is missing or of the wrong type — callers
// are expected to only request arguments their own command registered.
func (c *CommandContext) argument(name string) interface{} {
	a, ok := c.Arguments[name]
	if !ok {
		panic(fmt.Sprintf("no such argument %q", name))
	}
	return a.Parsed
}

// String returns the loaded value of a string-typed argument.
func (c *CommandContext) String(name string) string { return c.argument(name).(string) }

// Bool returns the loaded value of a bool-typed argument.
func (c *CommandContext) Bool(name string) bool { return c.argument(name).(bool) }

// Int returns the loaded value of an int-typed argument, widening an
// Int32 result if that is what was registered at this name.
func (c *CommandContext) Int(name string) int {
	switch v := c.argument(name).(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return v.(int)
	}
}

// Int32 returns the loaded value of an Int32-typed argument.
func (c *CommandContext) Int32(name string) int32 { return c.argument(name).(int32) }

// Int64 returns the loaded value of an Int64-typed argument.
func (c *CommandContext) Int64(name string) int64 { return c.argument(name).(int64) }

// Float32 returns the loaded value of a Float32-typed argument.
func (c *CommandContext) Float32(name string) float32 { return c.argument(name).(float32) }

// Float64 returns the loaded value of a Float64-typed argument.
func (c *CommandContext) Float64(name string) float64 { return c.argument(name).(float64) }
