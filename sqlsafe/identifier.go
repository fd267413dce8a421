package sqlsafe

import (
	"fmt"
	"strings"
)

const (
	// MaxIdentifierLength is the longest name QuoteIdentifier accepts.
	MaxIdentifierLength = 128
	// MaxLenientQuotedLength bounds the output of QuoteIdentifierLenient, brackets included.
	MaxLenientQuotedLength = MaxIdentifierLength + 2
)

func bracketContent(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c > 0x7E {
			continue
		}
		if c == ']' {
			b.WriteByte(']')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// QuoteIdentifier wraps name in brackets for use as a table, column or schema name.
// Bytes outside printable ASCII are dropped and ']' is doubled. Names longer than
// MaxIdentifierLength are rejected; this is the form used for schema changes.
func QuoteIdentifier(name string) (string, error) {
	if n := len([]rune(name)); n > MaxIdentifierLength {
		return "", fmt.Errorf("%w: identifier is %d characters, limit is %d", ErrInvalidArgument, n, MaxIdentifierLength)
	}
	return "[" + bracketContent(name) + "]", nil
}

// QuoteIdentifierLenient is the free-text predicate counterpart of QuoteIdentifier.
// Instead of failing it truncates so the result is at most MaxLenientQuotedLength
// characters. The closing bracket is always kept and a doubled ']' is never split.
func QuoteIdentifierLenient(name string) string {
	content := bracketContent(name)
	if len(content)+2 > MaxLenientQuotedLength {
		content = content[:MaxLenientQuotedLength-2]
		trailing := len(content) - len(strings.TrimRight(content, "]"))
		if trailing%2 == 1 {
			content = content[:len(content)-1]
		}
	}
	return "[" + content + "]"
}

// QuoteQualified leniently quotes each non-empty part and joins them with dots,
// e.g. ("dbo", "visitors", "email") -> [dbo].[visitors].[email].
func QuoteQualified(parts ...string) string {
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		quoted = append(quoted, QuoteIdentifierLenient(p))
	}
	return strings.Join(quoted, ".")
}
