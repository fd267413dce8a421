package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PayRam/go-search/sqlsafe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SEARCH_ESCAPE_CHAR", "SEARCH_PARAM_PREFIX", "SEARCH_FIX_PARSER_QUIRKS", "SEARCH_DB_PATH", "SEARCH_LOG_SQL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, '!', cfg.EscapeChar)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SEARCH_ESCAPE_CHAR", "~")
	t.Setenv("SEARCH_PARAM_PREFIX", "q")
	t.Setenv("SEARCH_FIX_PARSER_QUIRKS", "true")
	t.Setenv("SEARCH_DB_PATH", ":memory:")
	t.Setenv("SEARCH_LOG_SQL", "not-a-bool")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, '~', cfg.EscapeChar)
	assert.Equal(t, "q", cfg.ParamPrefix)
	assert.True(t, cfg.FixParserQuirks)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.False(t, cfg.LogSQL)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("SEARCH_PARAM_PREFIX", "env")
	t.Setenv("SEARCH_DB_PATH", "")
	os.Unsetenv("SEARCH_DB_PATH")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SEARCH_PARAM_PREFIX=file\nSEARCH_DB_PATH=visitors.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SEARCH_DB_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.ParamPrefix)
	assert.Equal(t, "visitors.db", cfg.DBPath)
}

func TestLoadRejectsBadEscapeChar(t *testing.T) {
	t.Setenv("SEARCH_ESCAPE_CHAR", "%")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, sqlsafe.ErrInvalidArgument)

	t.Setenv("SEARCH_ESCAPE_CHAR", "!!")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, sqlsafe.ErrInvalidArgument)
}

func TestValidateParamPrefix(t *testing.T) {
	for _, prefix := range []string{"p", "st", "_x", "a1"} {
		cfg := Default()
		cfg.ParamPrefix = prefix
		assert.NoError(t, cfg.Validate(), prefix)
	}
	for _, prefix := range []string{"", "1a", "p;drop", "p q", "@p"} {
		cfg := Default()
		cfg.ParamPrefix = prefix
		assert.ErrorIs(t, cfg.Validate(), sqlsafe.ErrInvalidArgument, prefix)
	}
}
