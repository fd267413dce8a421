package response_test

import (
	"database/sql"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersAddAndGet(t *testing.T) {
	p := response.NewParameters()
	require.NoError(t, p.Add("p0", "%a%"))
	require.NoError(t, p.Add("p1", 3))
	assert.Error(t, p.Add("p0", "again"))

	v, ok := p.Get("p1")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []string{"p0", "p1"}, p.Names())
	assert.Equal(t, []interface{}{sql.Named("p0", "%a%"), sql.Named("p1", 3)}, p.Args())
}

func TestParametersMerge(t *testing.T) {
	a := response.NewParameters()
	require.NoError(t, a.Add("s0", "x"))
	b := response.NewParameters()
	require.NoError(t, b.Add("b0", 1))
	require.NoError(t, a.Merge(b))
	assert.Equal(t, 2, a.Len())

	clash := response.NewParameters()
	require.NoError(t, clash.Add("z0", 1))
	require.NoError(t, clash.Add("s0", "y"))
	assert.Error(t, a.Merge(clash))
	assert.Equal(t, 2, a.Len(), "failed merge must not partially apply")
}

func TestNilParametersAreEmpty(t *testing.T) {
	var p *response.Parameters
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Args())
	_, ok := p.Get("x")
	assert.False(t, ok)
}

func TestFragmentWithSquirrel(t *testing.T) {
	params := response.NewParameters()
	require.NoError(t, params.Add("p0", "%ann%"))
	frag := &response.Fragment{
		Join:      models.JoinWhere,
		Keyword:   "where",
		Predicate: "[visitors].[first_name] LIKE @p0 ESCAPE '!'",
		Mode:      models.Parameterized,
		Params:    params,
	}
	assert.Equal(t, "where [visitors].[first_name] LIKE @p0 ESCAPE '!'", frag.SQL())

	query, args, err := squirrel.Select("*").From("visitors").Where(frag).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM visitors WHERE [visitors].[first_name] LIKE @p0 ESCAPE '!'", query)
	assert.Equal(t, []interface{}{sql.Named("p0", "%ann%")}, args)
}
