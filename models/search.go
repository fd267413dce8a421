package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PayRam/go-search/sqlsafe"
)

// SearchTerm is one parsed unit of a free-text query. It is immutable: the
// LIKE-escaped form is derived once, in NewSearchTerm.
type SearchTerm struct {
	field       string
	term        string
	escapedTerm string
}

func NewSearchTerm(field, term string) SearchTerm {
	return SearchTerm{
		field:       strings.ToLower(field),
		term:        term,
		escapedTerm: sqlsafe.EscapeLike(term, sqlsafe.DefaultEscapeChar),
	}
}

// Field is the lower-cased scope name, empty when the term is unscoped.
func (t SearchTerm) Field() string { return t.field }

func (t SearchTerm) Term() string { return t.term }

// EscapedTerm is Term escaped for LIKE with sqlsafe.DefaultEscapeChar, in parameter form.
func (t SearchTerm) EscapedTerm() string { return t.escapedTerm }

func (t SearchTerm) IsScoped() bool { return t.field != "" }

// EscapedFor returns the LIKE-escaped term for an arbitrary escape character.
func (t SearchTerm) EscapedFor(esc rune) string {
	if esc == sqlsafe.DefaultEscapeChar {
		return t.escapedTerm
	}
	return sqlsafe.EscapeLike(t.term, esc)
}

func (t SearchTerm) String() string {
	if t.field == "" {
		return t.term
	}
	return t.field + ":" + t.term
}

func (t SearchTerm) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Field       string `json:"field"`
		Term        string `json:"term"`
		EscapedTerm string `json:"escapedTerm"`
	}{t.field, t.term, t.escapedTerm})
}

// ValueKind tells the predicate builder how to turn a non-text column into text
// before comparing it with LIKE.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInteger
	KindDecimal
	KindGUID
	KindDate
	KindDateTime
	KindTime
)

var valueKindNames = map[ValueKind]string{
	KindString:   "string",
	KindInteger:  "integer",
	KindDecimal:  "decimal",
	KindGUID:     "guid",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindTime:     "time",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// ParseValueKind accepts the names printed by ValueKind.String, case-insensitively.
func ParseValueKind(s string) (ValueKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range valueKindNames {
		if name == s {
			return k, nil
		}
	}
	return KindString, fmt.Errorf("%w: unknown value kind %q", sqlsafe.ErrInvalidArgument, s)
}

// ColumnTarget is one physical place to search.
type ColumnTarget struct {
	Schema string // optional
	Table  string
	Column string

	Kind      ValueKind
	Size      int // datetime/time: > 0 makes fractional seconds searchable
	Precision int // decimal
	Scale     int // decimal
}

// Column is shorthand for a text column target.
func Column(table, column string) ColumnTarget {
	return ColumnTarget{Table: table, Column: column}
}

func (c ColumnTarget) WithSchema(schema string) ColumnTarget {
	c.Schema = schema
	return c
}

func (c ColumnTarget) As(kind ValueKind) ColumnTarget {
	c.Kind = kind
	return c
}

func (c ColumnTarget) WithSize(size int) ColumnTarget {
	c.Size = size
	return c
}

func (c ColumnTarget) WithPrecision(precision, scale int) ColumnTarget {
	c.Precision = precision
	c.Scale = scale
	return c
}

// Quoted returns the bracket-quoted, dot-qualified column name.
func (c ColumnTarget) Quoted() string {
	return sqlsafe.QuoteQualified(c.Schema, c.Table, c.Column)
}

func (c ColumnTarget) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Schema, c.Table, c.Column} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// TermTargetGroup pairs a term with the columns it may match; the columns are OR-ed.
type TermTargetGroup struct {
	Term    SearchTerm
	Targets []ColumnTarget
}

// QueryJoinKind selects the keyword a fragment starts with when it is spliced into
// a larger query.
type QueryJoinKind int

const (
	JoinWhere QueryJoinKind = iota
	JoinAnd
	JoinOr
)

// ErrInvalidJoinKind is returned for a QueryJoinKind outside the defined values.
var ErrInvalidJoinKind = fmt.Errorf("%w: query join kind", sqlsafe.ErrInvalidArgument)

func (k QueryJoinKind) Keyword() (string, error) {
	switch k {
	case JoinWhere:
		return "where", nil
	case JoinAnd:
		return "and", nil
	case JoinOr:
		return "or", nil
	}
	return "", fmt.Errorf("%w %d", ErrInvalidJoinKind, int(k))
}

func (k QueryJoinKind) String() string {
	kw, err := k.Keyword()
	if err != nil {
		return fmt.Sprintf("QueryJoinKind(%d)", int(k))
	}
	return kw
}

// ParseQueryJoinKind maps "where", "and" and "or" to their QueryJoinKind.
func ParseQueryJoinKind(s string) (QueryJoinKind, error) {
	for _, k := range []QueryJoinKind{JoinWhere, JoinAnd, JoinOr} {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return JoinWhere, fmt.Errorf("%w %q", ErrInvalidJoinKind, s)
}

// ValueMode decides how values reach the database.
type ValueMode int

const (
	// InlineLiteral escapes values and writes them into the statement text.
	InlineLiteral ValueMode = iota
	// Parameterized binds values to named parameters.
	Parameterized
	// DynamicLiteral writes the InlineLiteral text with every quote doubled, for
	// statements that are themselves embedded in a string and run through exec.
	DynamicLiteral
)

func (m ValueMode) String() string {
	switch m {
	case InlineLiteral:
		return "inline"
	case Parameterized:
		return "param"
	case DynamicLiteral:
		return "dynamic"
	}
	return fmt.Sprintf("ValueMode(%d)", int(m))
}

func ParseValueMode(s string) (ValueMode, error) {
	for _, m := range []ValueMode{InlineLiteral, Parameterized, DynamicLiteral} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return InlineLiteral, fmt.Errorf("%w: unknown value mode %q", sqlsafe.ErrInvalidArgument, s)
}
