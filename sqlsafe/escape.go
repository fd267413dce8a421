// Package sqlsafe holds the string transforms that make untrusted text safe to
// splice into SQL: LIKE-pattern escaping, literal escaping and identifier quoting.
//
// Two escaping policies are kept apart on purpose. EscapeLike produces the payload
// bound to a parameter under LIKE; EscapeLikeLiteral additionally doubles single
// quotes for text embedded directly in a statement. The Dynamic variants quadruple
// quotes for literals nested inside a string that is itself executed as SQL; the
// delimiters of such a literal are written as DynamicQuote.
package sqlsafe

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultEscapeChar is the LIKE escape character used when none is configured.
const DefaultEscapeChar = '!'

// ErrInvalidArgument marks programmer and configuration errors. It is never meant
// to be shown to end users.
var ErrInvalidArgument = errors.New("invalid argument")

// Quote delimits a string literal in statement text. DynamicQuote delimits a
// literal one string level down, inside SQL that is itself a string literal.
const (
	Quote        = "'"
	DynamicQuote = "''"
)

const likeWildcards = "%_["

// ValidEscapeChar reports whether r can serve as a LIKE escape character.
// Wildcards, quotes and anything outside printable ASCII are rejected.
func ValidEscapeChar(r rune) error {
	if r < 0x21 || r > 0x7E {
		return fmt.Errorf("%w: escape character %q is not printable ASCII", ErrInvalidArgument, r)
	}
	if strings.ContainsRune(likeWildcards+`'"`, r) {
		return fmt.Errorf("%w: escape character %q is reserved", ErrInvalidArgument, r)
	}
	return nil
}

// isStrippedControl reports whether r is removed by StripControl.
// Tab, line feed and carriage return survive.
func isStrippedControl(r rune) bool {
	switch {
	case r <= 0x08, r == 0x0B, r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x9F:
		return true
	}
	return false
}

// StripControl removes C0 and C1 control characters other than tab, LF and CR.
func StripControl(s string) string {
	if strings.IndexFunc(s, isStrippedControl) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isStrippedControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DoubleQuotes doubles every single quote, for text inside a SQL string literal.
func DoubleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuadrupleQuotes turns every single quote into four, for a literal that sits inside
// another literal executed as dynamic SQL.
func QuadrupleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''''")
}

// EscapeLike neutralises LIKE metacharacters and control characters in s.
// The result is the form bound to a query parameter; quotes are left alone.
//
// The order matters: the escape character is doubled before wildcards gain
// their prefix, and control characters go last.
func EscapeLike(s string, esc rune) string {
	e := string(esc)
	s = strings.ReplaceAll(s, e, e+e)
	for _, w := range likeWildcards {
		s = strings.ReplaceAll(s, string(w), e+string(w))
	}
	return StripControl(s)
}

// EscapeLikeLiteral is EscapeLike followed by quote doubling, for a pattern written
// straight into the statement text.
func EscapeLikeLiteral(s string, esc rune) string {
	return DoubleQuotes(EscapeLike(s, esc))
}

// EscapeDynamicLikeLiteral is EscapeLike followed by quote quadrupling.
func EscapeDynamicLikeLiteral(s string, esc rune) string {
	return QuadrupleQuotes(EscapeLike(s, esc))
}

// EscapeLiteral prepares s for a plain SQL string literal (no LIKE semantics).
func EscapeLiteral(s string) string {
	return DoubleQuotes(StripControl(s))
}

// EscapeDynamicLiteral prepares s for a string literal nested in dynamic SQL.
func EscapeDynamicLiteral(s string) string {
	return QuadrupleQuotes(StripControl(s))
}
