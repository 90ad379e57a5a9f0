package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRepo_AddListPreservesOrder(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sources := []string{"c.pdf", "a.json", "b.pdf"}
	for _, src := range sources {
		require.NoError(t, repo.Add(ctx, testutil.NewTestBatchReport(testutil.WithSource(src))))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, src := range sources {
		assert.Equal(t, src, list[i].Source)
		assert.Equal(t, "Test Author", list[i].Author())
		assert.False(t, list[i].AddedAt.IsZero())
	}
}

func TestBatchRepo_StateRoundTrips(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	state := testutil.NewTestState(testutil.WithField(domain.CategoryKeyTrends, "customField", "kept"))
	in := testutil.NewTestBatchReport(testutil.WithState(state))
	require.NoError(t, repo.Add(ctx, in))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, in.ID, list[0].ID)
	assert.Equal(t, state, list[0].State)
}

func TestBatchRepo_SameStateTwiceNotDeduplicated(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	state := testutil.NewTestState()
	require.NoError(t, repo.Add(ctx, testutil.NewTestBatchReport(testutil.WithState(state))))
	require.NoError(t, repo.Add(ctx, testutil.NewTestBatchReport(testutil.WithState(state))))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBatchRepo_RemoveAndClear(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestBatchReport()
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, testutil.NewTestBatchReport()))
	require.NoError(t, repo.Add(ctx, testutil.NewTestBatchReport()))

	require.NoError(t, repo.Remove(ctx, first.ID))
	assert.ErrorIs(t, repo.Remove(ctx, first.ID), ErrNotFound)

	removed, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBatchRepo_AddAfterRemoveKeepsAppending(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestBatchReport(testutil.WithSource("a"))
	b := testutil.NewTestBatchReport(testutil.WithSource("b"))
	require.NoError(t, repo.Add(ctx, a))
	require.NoError(t, repo.Add(ctx, b))
	require.NoError(t, repo.Remove(ctx, a.ID))
	require.NoError(t, repo.Add(ctx, testutil.NewTestBatchReport(testutil.WithSource("c"))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Source)
	assert.Equal(t, "c", list[1].Source)
}
