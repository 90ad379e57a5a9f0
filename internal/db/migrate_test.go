package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Re-running must be a no-op.
	require.NoError(t, Migrate(db))

	// Third time for good measure.
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"kv_store", "batch_reports"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, "idx_batch_reports_seq").Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_BatchFormatColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO batch_reports (id, seq, source, payload, added_at, format)
		VALUES ('r1', 1, 'a.pdf', '{}', '2026-01-01T00:00:00Z', 'pdf')`)
	require.NoError(t, err)

	var format string
	require.NoError(t, db.QueryRow(`SELECT format FROM batch_reports WHERE id = 'r1'`).Scan(&format))
	assert.Equal(t, "pdf", format)
}

func TestMigrate_EveryStatementRerunsCleanly(t *testing.T) {
	db := openTestDB(t)

	for i, stmt := range migrations {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "migration %d", i)
	}

	rows, err := db.Query(`SELECT name FROM pragma_table_info('batch_reports')`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"id", "seq", "source", "author", "format", "payload", "added_at"}, cols)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenDB(dir + "/nested/envioscan.db")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
}

func TestOpenDB_AppliesPragmas(t *testing.T) {
	db, err := OpenDB(t.TempDir() + "/envioscan.db")
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestOpenDB_MemoryIsShared(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO kv_store (key, value, updated_at) VALUES ('k', 'v', 'now')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&n))
	assert.Equal(t, 1, n)
}
