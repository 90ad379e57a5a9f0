package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/envioscan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func putSlot(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, '2026-01-01T00:00:00Z')`, key, value)
	return err
}

func slotCount(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&n))
	return n
}

func TestWithinTx_Commits(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putSlot(ctx, tx, "a", "1"); err != nil {
			return err
		}
		return putSlot(ctx, tx, "b", "2")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, slotCount(t, database))
}

func TestWithinTx_ErrorRollsBackEveryWrite(t *testing.T) {
	database, uow := newUoW(t)
	errStop := errors.New("stop after first write")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, putSlot(ctx, tx, "a", "1"))
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 0, slotCount(t, database))
}

func TestWithinTx_ConstraintViolationRollsBack(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putSlot(ctx, tx, "dup", "1"); err != nil {
			return err
		}
		return putSlot(ctx, tx, "dup", "2")
	})
	require.Error(t, err)
	assert.Equal(t, 0, slotCount(t, database))
}

func TestWithinTx_PanicRollsBackAndRepanics(t *testing.T) {
	database, uow := newUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putSlot(ctx, tx, "a", "1")
			panic("boom")
		})
	})
	assert.Equal(t, 0, slotCount(t, database))
}

func TestWithinTx_CanceledContext(t *testing.T) {
	_, uow := newUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
