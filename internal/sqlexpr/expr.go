// Package sqlexpr is the intermediate form of generated predicates. Builders
// assemble a tree of Comparison, And and Or nodes holding Literal values; Render
// turns it into text in a single pass, escaping values for the requested mode.
package sqlexpr

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/sqlsafe"
)

type Node interface {
	render(r *renderer) error
}

// Operator is the comparison applied by a Comparison node.
type Operator int

const (
	OpLike Operator = iota
	OpEqual
	OpIn
	OpIsNull
	OpIsNotNull
)

// Literal is a value operand. Name is the parameter it binds to in parameterized
// mode. Pattern literals hold a models.SearchTerm and render as a %...% substring
// pattern escaped with the comparison's escape character.
type Literal struct {
	Name    string
	Value   interface{}
	Pattern bool
}

func Like(name string, term models.SearchTerm) Literal {
	return Literal{Name: name, Value: term, Pattern: true}
}

func Value(name string, v interface{}) Literal {
	return Literal{Name: name, Value: v}
}

// Comparison tests one column expression. Column is trusted SQL: a quoted
// identifier, possibly wrapped in a conversion.
type Comparison struct {
	Column string
	Op     Operator
	Values []Literal
	Escape rune // OpLike only
}

type And []Node

type Or []Node

type renderer struct {
	mode   models.ValueMode
	quote  string
	b      strings.Builder
	params []sql.NamedArg
}

// Render writes n as SQL text. Bound values are returned only in Parameterized mode.
// DynamicLiteral output is the InlineLiteral output one string level down: every
// quote it contains, delimiters included, is doubled.
func Render(n Node, mode models.ValueMode) (string, []sql.NamedArg, error) {
	switch mode {
	case models.InlineLiteral, models.Parameterized, models.DynamicLiteral:
	default:
		return "", nil, fmt.Errorf("%w: value mode %d", sqlsafe.ErrInvalidArgument, int(mode))
	}
	r := &renderer{mode: mode, quote: Quote(mode)}
	if err := n.render(r); err != nil {
		return "", nil, err
	}
	return r.b.String(), r.params, nil
}

func (r *renderer) group(nodes []Node, sep string, nested bool) error {
	if len(nodes) == 1 {
		return nodes[0].render(r)
	}
	if nested {
		r.b.WriteByte('(')
	}
	for i, n := range nodes {
		if i > 0 {
			r.b.WriteString(sep)
		}
		if err := n.render(r); err != nil {
			return err
		}
	}
	if nested {
		r.b.WriteByte(')')
	}
	return nil
}

func (a And) render(r *renderer) error {
	if len(a) == 0 {
		return fmt.Errorf("%w: empty and group", sqlsafe.ErrInvalidArgument)
	}
	// a nested conjunction only needs brackets inside a disjunction
	nodes := make([]Node, len(a))
	for i, n := range a {
		if inner, ok := n.(And); ok && len(inner) > 1 {
			n = parenthesized{inner}
		}
		nodes[i] = n
	}
	return r.group(nodes, " and ", false)
}

func (o Or) render(r *renderer) error {
	if len(o) == 0 {
		return fmt.Errorf("%w: empty or group", sqlsafe.ErrInvalidArgument)
	}
	return r.group(o, " or ", true)
}

type parenthesized struct{ Node }

func (p parenthesized) render(r *renderer) error {
	r.b.WriteByte('(')
	if err := p.Node.render(r); err != nil {
		return err
	}
	r.b.WriteByte(')')
	return nil
}

func (c Comparison) render(r *renderer) error {
	r.b.WriteString(c.Column)
	switch c.Op {
	case OpIsNull:
		r.b.WriteString(" is null")
		return nil
	case OpIsNotNull:
		r.b.WriteString(" is not null")
		return nil
	case OpLike:
		if len(c.Values) != 1 {
			return fmt.Errorf("%w: like takes one value, got %d", sqlsafe.ErrInvalidArgument, len(c.Values))
		}
		r.b.WriteString(" LIKE ")
		if err := r.pattern(c.Values[0], c.Escape); err != nil {
			return err
		}
		r.b.WriteString(" ESCAPE " + r.quote + string(c.Escape) + r.quote)
		return nil
	case OpEqual:
		if len(c.Values) != 1 {
			return fmt.Errorf("%w: equality takes one value, got %d", sqlsafe.ErrInvalidArgument, len(c.Values))
		}
		r.b.WriteString(" = ")
		return r.literal(c.Values[0])
	case OpIn:
		if len(c.Values) == 0 {
			return fmt.Errorf("%w: empty in list", sqlsafe.ErrInvalidArgument)
		}
		r.b.WriteString(" in (")
		for i, v := range c.Values {
			if i > 0 {
				r.b.WriteString(", ")
			}
			if err := r.literal(v); err != nil {
				return err
			}
		}
		r.b.WriteByte(')')
		return nil
	}
	return fmt.Errorf("%w: operator %d", sqlsafe.ErrInvalidArgument, int(c.Op))
}

// Quote is the string delimiter for statement text rendered in mode.
func Quote(mode models.ValueMode) string {
	if mode == models.DynamicLiteral {
		return sqlsafe.DynamicQuote
	}
	return sqlsafe.Quote
}

func (r *renderer) bind(name string, v interface{}) error {
	if name == "" {
		return fmt.Errorf("%w: unnamed parameter", sqlsafe.ErrInvalidArgument)
	}
	r.params = append(r.params, sql.Named(name, v))
	r.b.WriteByte('@')
	r.b.WriteString(name)
	return nil
}

func (r *renderer) pattern(l Literal, esc rune) error {
	term, ok := l.Value.(models.SearchTerm)
	if !l.Pattern || !ok {
		return fmt.Errorf("%w: like needs a search term pattern", sqlsafe.ErrInvalidArgument)
	}
	switch r.mode {
	case models.Parameterized:
		return r.bind(l.Name, "%"+term.EscapedFor(esc)+"%")
	case models.DynamicLiteral:
		r.b.WriteString(r.quote + "%" + sqlsafe.EscapeDynamicLikeLiteral(term.Term(), esc) + "%" + r.quote)
	default:
		r.b.WriteString(r.quote + "%" + sqlsafe.EscapeLikeLiteral(term.Term(), esc) + "%" + r.quote)
	}
	return nil
}

func (r *renderer) literal(l Literal) error {
	if l.Pattern {
		return fmt.Errorf("%w: search term pattern outside like", sqlsafe.ErrInvalidArgument)
	}
	if r.mode == models.Parameterized {
		return r.bind(l.Name, l.Value)
	}

	format := sqlsafe.FormatLiteral
	if r.mode == models.DynamicLiteral {
		format = sqlsafe.FormatDynamicLiteral
	}
	s, err := format(l.Value)
	if err != nil {
		return err
	}
	r.b.WriteString(s)
	return nil
}
