package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/response"
	"github.com/PayRam/go-search/sqlsafe"
	"gorm.io/gorm"
)

// BuildOptions tune a single builder call. Zero values fall back to the builder's
// configured defaults.
type BuildOptions struct {
	Mode        models.ValueMode
	EscapeChar  rune   // LIKE escape character; 0 uses the builder default
	ParamPrefix string // parameter name prefix; "" uses the builder default
}

// SearchPlan routes parsed terms to columns. Terms whose field is in Fields search
// those columns; unscoped terms and terms with an unknown field search Default.
type SearchPlan struct {
	Fields  map[string][]models.ColumnTarget
	Default []models.ColumnTarget
}

// Route pairs every term with its target columns, keeping input order.
func (p SearchPlan) Route(terms []models.SearchTerm) []models.TermTargetGroup {
	groups := make([]models.TermTargetGroup, 0, len(terms))
	for _, term := range terms {
		if term.IsScoped() {
			if targets, ok := p.Fields[term.Field()]; ok {
				groups = append(groups, models.TermTargetGroup{Term: term, Targets: targets})
				continue
			}
			term = models.NewSearchTerm("", term.Term())
		}
		groups = append(groups, models.TermTargetGroup{Term: term, Targets: p.Default})
	}
	return groups
}

// ParseColumnTarget reads "[schema.]table.column[:kind[:size]]", the form used on
// the command line.
func ParseColumnTarget(raw string) (models.ColumnTarget, error) {
	var target models.ColumnTarget
	name, rest, hasKind := strings.Cut(raw, ":")
	parts := strings.Split(name, ".")
	switch len(parts) {
	case 2:
		target = models.Column(parts[0], parts[1])
	case 3:
		target = models.Column(parts[1], parts[2]).WithSchema(parts[0])
	default:
		return target, fmt.Errorf("%w: column %q must be table.column or schema.table.column", sqlsafe.ErrInvalidArgument, raw)
	}
	if !hasKind {
		return target, nil
	}
	kindName, size, hasSize := strings.Cut(rest, ":")
	kind, err := models.ParseValueKind(kindName)
	if err != nil {
		return target, err
	}
	target = target.As(kind)
	if hasSize {
		n, err := strconv.Atoi(size)
		if err != nil {
			return target, fmt.Errorf("%w: column size %q: %v", sqlsafe.ErrInvalidArgument, size, err)
		}
		if kind == models.KindDecimal {
			target = target.WithPrecision(n, 0)
		} else {
			target = target.WithSize(n)
		}
	}
	return target, nil
}

// ApplyFragment adds a parameterized or inline fragment to a gorm query. gorm
// writes its own WHERE keyword, so where/and fragments become Where and or
// fragments become Or.
func ApplyFragment(query *gorm.DB, frag *response.Fragment) *gorm.DB {
	if frag == nil {
		return query
	}
	if frag.Join == models.JoinOr {
		return query.Or(frag.Predicate, frag.Params.Args()...)
	}
	return query.Where(frag.Predicate, frag.Params.Args()...)
}
