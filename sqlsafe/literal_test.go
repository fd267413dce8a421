package sqlsafe_test

import (
	"testing"
	"time"

	"github.com/PayRam/go-search/sqlsafe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLiteral(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	name := "O'Hara"
	var missing *string

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string", "O'Hara", "'O''Hara'"},
		{"string pointer", &name, "'O''Hara'"},
		{"nil pointer", missing, "null"},
		{"nil", nil, "null"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint", uint(9), "9"},
		{"float", 2.5, "2.5"},
		{"bool", true, "1"},
		{"decimal", decimal.RequireFromString("12.340"), "12.34"},
		{"uuid", id, "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'"},
		{"time", time.Date(2024, 12, 19, 17, 49, 3, 120e6, time.UTC), "'2024-12-19T17:49:03.120'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sqlsafe.FormatLiteral(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDynamicLiteral(t *testing.T) {
	got, err := sqlsafe.FormatDynamicLiteral("O'Hara")
	require.NoError(t, err)
	assert.Equal(t, "''O''''Hara''", got)

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	got, err = sqlsafe.FormatDynamicLiteral(id)
	require.NoError(t, err)
	assert.Equal(t, "''6ba7b810-9dad-11d1-80b4-00c04fd430c8''", got)

	got, err = sqlsafe.FormatDynamicLiteral(42)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestFormatLiteralRejectsUnknownTypes(t *testing.T) {
	_, err := sqlsafe.FormatLiteral(struct{ A int }{1})
	assert.ErrorIs(t, err, sqlsafe.ErrInvalidArgument)
}
