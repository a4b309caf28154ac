package cmdparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringReader_CanRead(t *testing.T) {
	r := &StringReader{String: "abc"}
	require.True(t, r.CanRead())
	r.Cursor = 3
	require.False(t, r.CanRead())
}

func TestStringReader_ReadUnquotedString(t *testing.T) {
	r := &StringReader{String: "hello world"}
	require.Equal(t, "hello", r.ReadUnquotedString())
	require.Equal(t, 5, r.Cursor)
}

func TestStringReader_ReadQuotedString(t *testing.T) {
	r := &StringReader{String: `"hello world"`}
	s, err := r.ReadQuotedString()
	require.NoError(t, err)
	require.Equal(t, "hello world", s)
}

func TestStringReader_ReadQuotedString_Escaped(t *testing.T) {
	r := &StringReader{String: `"hello \"world\""`}
	s, err := r.ReadQuotedString()
	require.NoError(t, err)
	require.Equal(t, `hello "world"`, s)
}

func TestStringReader_ReadQuotedString_InvalidEscape(t *testing.T) {
	r := &StringReader{String: `"hello\nworld"`}
	_, err := r.ReadQuotedString()
	require.Error(t, err)
}

func TestStringReader_ReadQuotedString_Unterminated(t *testing.T) {
	r := &StringReader{String: `"hello world`}
	_, err := r.ReadQuotedString()
	require.Error(t, err)
}

func TestStringReader_ReadString_Unquoted(t *testing.T) {
	r := &StringReader{String: "hello"}
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestStringReader_ReadBool(t *testing.T) {
	r := &StringReader{String: "true"}
	v, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, v)
}

func TestStringReader_ReadBool_Invalid(t *testing.T) {
	r := &StringReader{String: "maybe"}
	_, err := r.ReadBool()
	require.Error(t, err)
}

func TestStringReader_ReadInt(t *testing.T) {
	r := &StringReader{String: "12345 foo"}
	v, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, 12345, v)
	require.Equal(t, " foo", r.Remaining())
}

func TestStringReader_ReadInt_Invalid(t *testing.T) {
	r := &StringReader{String: "12.5"}
	_, err := r.ReadInt()
	require.Error(t, err)
}

func TestStringReader_ReadInt_Empty(t *testing.T) {
	r := &StringReader{String: ""}
	_, err := r.ReadInt()
	require.Error(t, err)
}

func TestStringReader_ReadFloat(t *testing.T) {
	r := &StringReader{String: "12.34"}
	v, err := r.ReadFloat64()
	require.NoError(t, err)
	require.InDelta(t, 12.34, v, 0.0001)
}

func TestStringReader_SkipWhitespace(t *testing.T) {
	r := &StringReader{String: "   hi"}
	r.SkipWhitespace()
	require.Equal(t, 3, r.Cursor)
}

func TestStringRange_EncompassingRange(t *testing.T) {
	a := &StringRange{Start: 2, End: 5}
	b := &StringRange{Start: 0, End: 3}
	r := EncompassingRange(a, b)
	require.Equal(t, 0, r.Start)
	require.Equal(t, 5, r.End)
}

func TestEscapeIfRequired(t *testing.T) {
	require.Equal(t, "hello", EscapeIfRequired("hello"))
	require.Equal(t, `"hello world"`, EscapeIfRequired("hello world"))
	require.Equal(t, `"hello \"world\""`, EscapeIfRequired(`hello "world"`))
}
