package cmdparser

import (
	"strconv"
	"strings"
)

// StringReader is a cursor over an immutable input string. It is the
// primitive on which every node Parse method and every ArgumentType.Parse
// method operates.
type StringReader struct {
	Cursor int
	String string
}

// CanRead indicates whether a next rune can be read.
func (r *StringReader) CanRead() bool { return r.CanReadLen(1) }

// CanReadLen indicates whether the next length runes can be read.
func (r *StringReader) CanReadLen(length int) bool { return r.Cursor+length <= len(r.String) }

// Peek returns the next rune without incrementing Cursor.
func (r *StringReader) Peek() rune { return rune(r.String[r.Cursor]) }

// PeekAt returns the rune at the given offset from Cursor without moving it.
func (r *StringReader) PeekAt(offset int) rune { return rune(r.String[r.Cursor+offset]) }

// Skip increments Cursor by one.
func (r *StringReader) Skip() { r.Cursor++ }

// Read returns the next rune and advances Cursor.
func (r *StringReader) Read() rune {
	c := r.String[r.Cursor]
	r.Cursor++
	return rune(c)
}

// Clone returns an independent snapshot of the reader at its current
// Cursor. Mutating the clone never affects the original.
func (r *StringReader) Clone() *StringReader {
	return &StringReader{Cursor: r.Cursor, String: r.String}
}

// Rewind resets Cursor to an earlier snapshot, typically r.Cursor captured
// before a failed parse attempt.
func (r *StringReader) Rewind(cursor int) { r.Cursor = cursor }

// SkipWhitespace advances past the argument separator and any immediately
// following separators.
func (r *StringReader) SkipWhitespace() {
	for r.CanRead() && r.Peek() == ArgumentSeparator {
		r.Skip()
	}
}

// ReadUntil advances Cursor past every rune for which keep returns true,
// starting at the current Cursor, and returns the consumed substring.
func (r *StringReader) ReadUntil(keep func(rune) bool) string {
	start := r.Cursor
	for r.CanRead() && keep(r.Peek()) {
		r.Skip()
	}
	return r.String[start:r.Cursor]
}

// Remaining returns the remaining string beginning at Cursor.
func (r *StringReader) Remaining() string { return r.String[r.Cursor:] }

// RemainingLen returns the remaining string length beginning at Cursor.
func (r *StringReader) RemainingLen() int { return len(r.String) - r.Cursor }

// ReadUnquotedString reads a run of runes allowed in an unquoted string.
func (r *StringReader) ReadUnquotedString() string {
	return r.ReadUntil(IsAllowedInUnquotedString)
}

// ReadQuotedString reads a quoted string, failing if the next rune is not
// a quote.
func (r *StringReader) ReadQuotedString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if !IsQuotedStringStart(next) {
		return "", &CommandSyntaxError{Err: &ReaderError{
			Err:    ErrReaderExpectedStartOfQuote,
			Reader: r,
		}}
	}
	r.Skip()
	return r.ReadStringUntil(next)
}

// ReadStringUntil reads runes, honoring backslash escapes of the
// terminator and of the escape rune itself, until terminator is found.
func (r *StringReader) ReadStringUntil(terminator rune) (string, error) {
	var (
		result  strings.Builder
		escaped bool
	)
	for r.CanRead() {
		c := r.Read()
		switch {
		case escaped:
			if c == terminator || c == SyntaxEscape {
				result.WriteRune(c)
				escaped = false
			} else {
				r.Cursor--
				return "", &CommandSyntaxError{Err: &ReaderError{
					Err:    &ReaderInvalidValueError{Value: string(c), Err: ErrReaderInvalidEscape},
					Reader: r,
				}}
			}
		case c == SyntaxEscape:
			escaped = true
		case c == terminator:
			return result.String(), nil
		default:
			result.WriteRune(c)
		}
	}
	return "", &CommandSyntaxError{Err: &ReaderError{Err: ErrReaderExpectedEndOfQuote, Reader: r}}
}

// ReadString reads a quoted or unquoted string, choosing based on the next
// rune.
func (r *StringReader) ReadString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if IsQuotedStringStart(next) {
		r.Skip()
		return r.ReadStringUntil(next)
	}
	return r.ReadUnquotedString(), nil
}

// ReadBool reads and parses a case-insensitive "true"/"false" token.
func (r *StringReader) ReadBool() (bool, error) {
	start := r.Cursor
	value, err := r.ReadString()
	if err != nil {
		return false, err
	}
	if len(value) == 0 {
		return false, &CommandSyntaxError{Err: &ReaderError{Err: ErrReaderExpectedBool, Reader: r}}
	}
	if strings.EqualFold(value, "true") {
		return true, nil
	}
	if strings.EqualFold(value, "false") {
		return false, nil
	}
	r.Cursor = start
	return false, &CommandSyntaxError{Err: &ReaderError{
		Err:    &ReaderInvalidValueError{Type: Bool, Value: value},
		Reader: r,
	}}
}

// ReadInt reads and parses a base-10 int.
func (r *StringReader) ReadInt() (int, error) {
	i, err := r.readInt(64)
	return int(i), err
}

// ReadInt32 reads and parses a base-10 int32.
func (r *StringReader) ReadInt32() (int32, error) {
	i, err := r.readInt(32)
	return int32(i), err
}

// ReadInt64 reads and parses a base-10 int64.
func (r *StringReader) ReadInt64() (int64, error) { return r.readInt(64) }

func (r *StringReader) readInt(bitSize int) (int64, error) {
	start := r.Cursor
	number := r.ReadUntil(IsAllowedNumber)
	if number == "" {
		return 0, &CommandSyntaxError{Err: &ReaderError{Err: ErrReaderExpectedInt, Reader: r}}
	}
	i, err := strconv.ParseInt(number, 10, bitSize)
	if err != nil {
		r.Cursor = start
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err:    &ReaderInvalidValueError{Value: number, Err: ErrReaderInvalidInt},
			Reader: r,
		}}
	}
	return i, nil
}

// ReadFloat32 reads and parses a float32.
func (r *StringReader) ReadFloat32() (float32, error) {
	f, err := r.readFloat(32)
	return float32(f), err
}

// ReadFloat64 reads and parses a float64.
func (r *StringReader) ReadFloat64() (float64, error) { return r.readFloat(64) }

func (r *StringReader) readFloat(bitSize int) (float64, error) {
	start := r.Cursor
	number := r.ReadUntil(IsAllowedNumber)
	if number == "" {
		return 0, &CommandSyntaxError{Err: &ReaderError{Err: ErrReaderExpectedFloat, Reader: r}}
	}
	f, err := strconv.ParseFloat(number, bitSize)
	if err != nil {
		r.Cursor = start
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err:    &ReaderInvalidValueError{Value: number, Err: ErrReaderInvalidFloat},
			Reader: r,
		}}
	}
	return f, nil
}

const (
	// SyntaxDoubleQuote is a double quote.
	SyntaxDoubleQuote rune = '"'
	// SyntaxSingleQuote is a single quote.
	SyntaxSingleQuote rune = '\''
	// SyntaxEscape is the escape rune used inside quoted strings.
	SyntaxEscape rune = '\\'
)

// IsAllowedNumber indicates whether c may appear in a number literal.
func IsAllowedNumber(c rune) bool { return c >= '0' && c <= '9' || c == '.' || c == '-' }

// IsQuotedStringStart indicates whether c opens a quoted string.
func IsQuotedStringStart(c rune) bool { return c == SyntaxDoubleQuote || c == SyntaxSingleQuote }

// IsAllowedInUnquotedString indicates whether c may appear in an unquoted
// string/word token.
func IsAllowedInUnquotedString(c rune) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' ||
		c == '.' || c == '+'
}

// StringRange is a half-open-by-convention [Start,End) range into the
// original input string.
type StringRange struct{ Start, End int }

// IsEmpty indicates whether Start and End are equal.
func (r *StringRange) IsEmpty() bool { return r.Start == r.End }

// Copy returns a copy of the range.
func (r StringRange) Copy() StringRange { return r }

// Get returns the substring of s covered by the range.
func (r *StringRange) Get(s string) string { return s[r.Start:r.End] }

// EncompassingRange returns the smallest range covering both r1 and r2.
func EncompassingRange(r1, r2 *StringRange) *StringRange {
	return &StringRange{Start: min(r1.Start, r2.Start), End: max(r1.End, r2.End)}
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func max(x, y int) int {
	if x > y {
		return x
	}
	return y
}
