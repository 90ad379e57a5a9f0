package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/envioscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_GetMissingReturnsNotFound(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), KeyAnalysisState)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVRepo_PutOverwrites(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, KeyAnalysisState, `{"a":1}`))
	require.NoError(t, repo.Put(ctx, KeyAnalysisState, `{"a":2}`))

	got, err := repo.Get(ctx, KeyAnalysisState)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, got)
}

func TestKVRepo_SlotsAreIndependent(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, KeyAnalysisState, "state"))
	require.NoError(t, repo.Put(ctx, KeyLastInsight, "insight"))
	require.NoError(t, repo.Delete(ctx, KeyLastInsight))

	got, err := repo.Get(ctx, KeyAnalysisState)
	require.NoError(t, err)
	assert.Equal(t, "state", got)

	_, err = repo.Get(ctx, KeyLastInsight)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVRepo_DeleteMissingIsNoop(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	assert.NoError(t, repo.Delete(context.Background(), "absent"))
}
