package lang

import (
	"math"
	"strconv"
)

// Literal matches s case-insensitively, skipping spaces before the first
// character and between successive characters of s. This lets a single
// literal("GOTO") parser accept both "GOTO" and "GO TO".
func Literal(s string) Parser[string] {
	return func(pos Position) ParseResult[string] {
		cur := pos
		for i := 0; i < len(s); i++ {
			cur = cur.AfterSpaces()
			if cur.AtEndOfLine() {
				return NotParsed[string]()
			}
			if toUpper(cur.At()) != toUpper(s[i]) {
				return NotParsed[string]()
			}
			cur = cur.Next()
		}
		return ParsedAt(s, cur)
	}
}

func toUpper(c Char) Char {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isDigit(c Char) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c Char) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// NumberLiteral parses one-or-more decimal digits after leading spaces.
// Overflow saturates at math.MaxInt32 rather than wrapping.
func NumberLiteral(pos Position) ParseResult[Number] {
	cur := pos.AfterSpaces()
	start := cur
	for !cur.AtEndOfLine() && isDigit(cur.At()) {
		cur = cur.Next()
	}
	if cur.index == start.index {
		return NotParsed[Number]()
	}

	digits := string(start.line[start.index:cur.index])

	// A digit run too large for 64 bits makes ParseInt fail with a range
	// error; that, like any value above MaxInt32, saturates.
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt32 {
		return ParsedAt[Number](math.MaxInt32, cur)
	}
	return ParsedAt(Number(n), cur)
}

// ParseVariableName parses a single ASCII letter after leading spaces,
// normalised to uppercase.
func ParseVariableName(pos Position) ParseResult[VariableName] {
	cur := pos.AfterSpaces()
	if cur.AtEndOfLine() || !isLetter(cur.At()) {
		return NotParsed[VariableName]()
	}
	name := toUpper(cur.At())
	return ParsedAt(name, cur.Next())
}

// StringLiteral parses a double-quoted string: a '"', any non-'"' bytes up
// to the next '"', and the closing '"'. The returned value excludes the
// quotes.
func StringLiteral(pos Position) ParseResult[string] {
	cur := pos.AfterSpaces()
	if cur.AtEndOfLine() || cur.At() != '"' {
		return NotParsed[string]()
	}
	cur = cur.Next()
	start := cur
	for !cur.AtEndOfLine() && cur.At() != '"' {
		cur = cur.Next()
	}
	if cur.AtEndOfLine() {
		return NotParsed[string]()
	}
	text := string(start.line[start.index:cur.index])
	return ParsedAt(text, cur.Next())
}

// NumberToListText renders n the way LIST prints a line number: plain
// decimal, no leading zeros or sign (line numbers are never negative).
func NumberToListText(n Number) string {
	return strconv.FormatInt(int64(n), 10)
}

// AnyCharacter parses a single byte, without skipping leading spaces.
func AnyCharacter(pos Position) ParseResult[Char] {
	if pos.AtEndOfLine() {
		return NotParsed[Char]()
	}
	return ParsedAt(pos.At(), pos.Next())
}
