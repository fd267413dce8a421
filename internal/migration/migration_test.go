package migration

import (
	"strings"
	"testing"

	"github.com/PayRam/go-search/sqlsafe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIndexStatement(t *testing.T) {
	stmt, err := createIndexStatement("idx", "visitors", "last_name", "first]name")
	require.NoError(t, err)
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS [idx] ON [visitors] ([last_name], [first]]name])", stmt)

	_, err = createIndexStatement("idx", strings.Repeat("t", 129), "c")
	assert.ErrorIs(t, err, sqlsafe.ErrInvalidArgument)
}
