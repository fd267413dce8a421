package serviceimpl

import (
	"fmt"
	"strconv"

	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/internal/sqlexpr"
	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/request"
	"github.com/PayRam/go-search/response"
	"github.com/PayRam/go-search/service"
	"github.com/PayRam/go-search/sqlsafe"
)

const DefaultParamPrefix = "p"

type predicateBuilder struct {
	parser      service.TermParser
	escapeChar  rune
	paramPrefix string
}

var _ service.PredicateBuilder = &predicateBuilder{}

func NewPredicateBuilder(parser service.TermParser, escapeChar rune, paramPrefix string) service.PredicateBuilder {
	if escapeChar == 0 {
		escapeChar = sqlsafe.DefaultEscapeChar
	}
	if paramPrefix == "" {
		paramPrefix = DefaultParamPrefix
	}
	return &predicateBuilder{parser: parser, escapeChar: escapeChar, paramPrefix: paramPrefix}
}

func (b *predicateBuilder) options(opts request.BuildOptions) (request.BuildOptions, error) {
	if opts.EscapeChar == 0 {
		opts.EscapeChar = b.escapeChar
	}
	if err := sqlsafe.ValidEscapeChar(opts.EscapeChar); err != nil {
		return opts, err
	}
	if opts.ParamPrefix == "" {
		opts.ParamPrefix = b.paramPrefix
	}
	return opts, nil
}

// BuildSearch ANDs the groups together; within a group the term may match any of
// its columns. Groups without columns are skipped.
func (b *predicateBuilder) BuildSearch(join models.QueryJoinKind, groups []models.TermTargetGroup, opts request.BuildOptions) (*response.Fragment, error) {
	opts, err := b.options(opts)
	if err != nil {
		return nil, err
	}
	tree := b.searchTree(groups, opts)
	if tree == nil {
		if _, err := join.Keyword(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return render(join, tree, opts)
}

func (b *predicateBuilder) BuildTermSearch(join models.QueryJoinKind, term models.SearchTerm, targets []models.ColumnTarget, opts request.BuildOptions) (*response.Fragment, error) {
	return b.BuildSearch(join, []models.TermTargetGroup{{Term: term, Targets: targets}}, opts)
}

// BuildTextSearch parses text and routes the terms through plan before building.
func (b *predicateBuilder) BuildTextSearch(join models.QueryJoinKind, text string, plan request.SearchPlan, opts request.BuildOptions) (*response.Fragment, error) {
	terms := b.parser.Parse(text)
	log.Dump("parsed search "+strconv.Quote(text), terms)
	return b.BuildSearch(join, plan.Route(terms), opts)
}

// searchTree returns nil when no group has both a term and a column.
func (b *predicateBuilder) searchTree(groups []models.TermTargetGroup, opts request.BuildOptions) sqlexpr.Node {
	var and sqlexpr.And
	for i, group := range groups {
		if group.Term.Term() == "" || len(group.Targets) == 0 {
			continue
		}
		or := make(sqlexpr.Or, 0, len(group.Targets))
		for j, target := range group.Targets {
			name := opts.ParamPrefix + strconv.Itoa(i)
			if len(group.Targets) > 1 {
				name += "_" + strconv.Itoa(j)
			}
			or = append(or, sqlexpr.Comparison{
				Column: columnExpression(target, opts.Mode),
				Op:     sqlexpr.OpLike,
				Values: []sqlexpr.Literal{sqlexpr.Like(name, group.Term)},
				Escape: opts.EscapeChar,
			})
		}
		and = append(and, or)
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// BuildInFilter returns nil for an empty list: "in ()" is not valid SQL.
func (b *predicateBuilder) BuildInFilter(join models.QueryJoinKind, target models.ColumnTarget, values []interface{}, opts request.BuildOptions) (*response.Fragment, error) {
	opts, err := b.options(opts)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		if _, err := join.Keyword(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	literals := make([]sqlexpr.Literal, len(values))
	for i, v := range values {
		literals[i] = sqlexpr.Value(opts.ParamPrefix+strconv.Itoa(i), v)
	}
	return render(join, sqlexpr.Comparison{Column: target.Quoted(), Op: sqlexpr.OpIn, Values: literals}, opts)
}

// BuildEqualFilter compares with = for a present value and with "is null" for nil
// or a nil pointer.
func (b *predicateBuilder) BuildEqualFilter(join models.QueryJoinKind, target models.ColumnTarget, value interface{}, opts request.BuildOptions) (*response.Fragment, error) {
	opts, err := b.options(opts)
	if err != nil {
		return nil, err
	}
	v, ok := sqlsafe.Indirect(value)
	if !ok {
		return render(join, sqlexpr.Comparison{Column: target.Quoted(), Op: sqlexpr.OpIsNull}, opts)
	}
	return render(join, sqlexpr.Comparison{
		Column: target.Quoted(),
		Op:     sqlexpr.OpEqual,
		Values: []sqlexpr.Literal{sqlexpr.Value(opts.ParamPrefix+"0", v)},
	}, opts)
}

func (b *predicateBuilder) BuildNullFilter(join models.QueryJoinKind, target models.ColumnTarget, isNull bool, opts request.BuildOptions) (*response.Fragment, error) {
	opts, err := b.options(opts)
	if err != nil {
		return nil, err
	}
	op := sqlexpr.OpIsNotNull
	if isNull {
		op = sqlexpr.OpIsNull
	}
	return render(join, sqlexpr.Comparison{Column: target.Quoted(), Op: op}, opts)
}

func render(join models.QueryJoinKind, tree sqlexpr.Node, opts request.BuildOptions) (*response.Fragment, error) {
	keyword, err := join.Keyword()
	if err != nil {
		return nil, err
	}
	predicate, named, err := sqlexpr.Render(tree, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to render predicate: %w", err)
	}
	params := response.NewParameters()
	for _, arg := range named {
		if err := params.Add(arg.Name, arg.Value); err != nil {
			return nil, err
		}
	}
	return &response.Fragment{
		Join:      join,
		Keyword:   keyword,
		Predicate: predicate,
		Mode:      opts.Mode,
		Params:    params,
	}, nil
}
