package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgDriverName(t *testing.T) {
	for in, want := range map[string]string{
		"":         "",
		"pgx":      "",
		"pq":       "postgres",
		" PQ ":     "postgres",
		"lib/pq":   "postgres",
		"postgres": "postgres",
	} {
		assert.Equal(t, want, pgDriverName(in), "DB_PG_DRIVER=%q", in)
	}
}

func TestOpenPicksDialector(t *testing.T) {
	db, err := Open("sqlite", "file:open_dialector?mode=memory&cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = Open("mysql", "")
	assert.Error(t, err)
}
