package response

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/PayRam/go-search/models"
)

// Parameters is the named-parameter collection produced in parameterized mode.
// Names are unique; insertion order is kept.
type Parameters struct {
	args  []sql.NamedArg
	index map[string]int
}

func NewParameters() *Parameters {
	return &Parameters{index: map[string]int{}}
}

func (p *Parameters) Add(name string, value interface{}) error {
	if p.index == nil {
		p.index = map[string]int{}
	}
	if _, exists := p.index[name]; exists {
		return fmt.Errorf("duplicate parameter name %q", name)
	}
	p.index[name] = len(p.args)
	p.args = append(p.args, sql.Named(name, value))
	return nil
}

func (p *Parameters) Get(name string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.args[i].Value, true
}

func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.args)
}

func (p *Parameters) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.args))
	for i, a := range p.args {
		names[i] = a.Name
	}
	return names
}

func (p *Parameters) NamedArgs() []sql.NamedArg {
	if p == nil {
		return nil
	}
	return append([]sql.NamedArg(nil), p.args...)
}

// Args returns the parameters as driver arguments (sql.NamedArg values), the shape
// gorm, database/sql and squirrel accept.
func (p *Parameters) Args() []interface{} {
	if p == nil || len(p.args) == 0 {
		return nil
	}
	out := make([]interface{}, len(p.args))
	for i, a := range p.args {
		out[i] = a
	}
	return out
}

// Merge copies other into p. A name present in both is an error and leaves p unchanged.
func (p *Parameters) Merge(other *Parameters) error {
	if other == nil {
		return nil
	}
	for _, a := range other.args {
		if _, exists := p.index[a.Name]; exists {
			return fmt.Errorf("cannot merge parameters: duplicate name %q", a.Name)
		}
	}
	for _, a := range other.args {
		if err := p.Add(a.Name, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// Fragment is a SQL boolean expression ready to be spliced into an external query.
type Fragment struct {
	Join      models.QueryJoinKind
	Keyword   string // where, and, or
	Predicate string // the expression without the keyword
	Mode      models.ValueMode
	Params    *Parameters // empty unless Mode is Parameterized
}

var _ squirrel.Sqlizer = (*Fragment)(nil)

// SQL returns the fragment with its leading keyword.
func (f *Fragment) SQL() string {
	if f == nil {
		return ""
	}
	return f.Keyword + " " + f.Predicate
}

func (f *Fragment) String() string {
	return f.SQL()
}

// ToSql lets a fragment be passed to squirrel's Where. The keyword is dropped
// because squirrel writes its own.
func (f *Fragment) ToSql() (string, []interface{}, error) {
	if f == nil {
		return "", nil, nil
	}
	return f.Predicate, f.Params.Args(), nil
}

// BuildingStats is one row of the per-building visitor aggregation.
type BuildingStats struct {
	BuildingID   uint   `json:"buildingID"`
	BuildingName string `json:"buildingName"`
	VisitorCount int64  `json:"visitorCount"`
	OnSiteCount  int64  `json:"onSiteCount"`
}
