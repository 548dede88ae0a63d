package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func tableNames(t *testing.T, dbPath string) []string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name != 'schema_migrations' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestUp_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "worklog.db")

	version, err := Up(dbPath, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.Equal(t, []string{"members", "time_entries"}, tableNames(t, dbPath))
}

func TestUp_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "worklog.db")

	_, err := Up(dbPath, nil)
	require.NoError(t, err)

	version, err := Up(dbPath, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestDown_DropsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "worklog.db")

	_, err := Up(dbPath, nil)
	require.NoError(t, err)

	version, err := Down(dbPath, nil)
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.Empty(t, tableNames(t, dbPath))
}
