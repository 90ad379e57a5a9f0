package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/report"
	"github.com/alexanderramin/envioscan/internal/repository"
	"github.com/alexanderramin/envioscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newKV(t *testing.T) *repository.SQLiteKVRepo {
	t.Helper()
	return repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
}

// brokenKV fails every call after optionally serving one stored value.
type brokenKV struct {
	stored map[string]string
	err    error
}

func (b *brokenKV) Get(_ context.Context, key string) (string, error) {
	if v, ok := b.stored[key]; ok {
		return v, nil
	}
	return "", b.err
}
func (b *brokenKV) Put(context.Context, string, string) error { return b.err }
func (b *brokenKV) Delete(context.Context, string) error      { return b.err }

func TestOpen_EmptyStoreGivesDefaultState(t *testing.T) {
	s := Open(context.Background(), newKV(t), nil)

	assert.Equal(t, domain.NewAnalysisState(), s.State())
	assert.Nil(t, s.Insight())
}

func TestSession_MutationsPersistAcrossOpen(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)

	s := Open(ctx, kv, nil)
	require.NoError(t, s.SetField(ctx, domain.CategoryKeyTrends, "regulatory", "GDPR"))
	s.SetAuthor(ctx, "Ana")
	s.SetDescription(ctx, "A bakery")

	reopened := Open(ctx, kv, nil)
	state := reopened.State()
	assert.Equal(t, "GDPR", state.Field(domain.CategoryKeyTrends, "regulatory"))
	assert.Equal(t, "Ana", state.Author)
	assert.Equal(t, "A bakery", state.Description)
}

func TestSession_SetFieldRejectsUnknownTargets(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newKV(t), nil)

	err := s.SetField(ctx, domain.Category("bogus"), "regulatory", "x")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	err = s.SetField(ctx, domain.CategoryMarketForces, "regulatory", "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	assert.True(t, s.State().IsEmpty())
}

func TestSession_StateReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newKV(t), nil)

	got := s.State()
	got.Author = "mutated"
	assert.Empty(t, s.State().Author)
}

func TestOpen_CorruptSlotFallsBackAndLogs(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, kv.Put(ctx, repository.KeyAnalysisState, "{not json"))
	require.NoError(t, kv.Put(ctx, repository.KeyLastInsight, "[]"))

	core, logs := observer.New(zapcore.WarnLevel)
	s := Open(ctx, kv, zap.New(core))

	assert.Equal(t, domain.NewAnalysisState(), s.State())
	assert.Nil(t, s.Insight())
	assert.Equal(t, 2, logs.Len())
}

func TestSession_WriteFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := &brokenKV{err: errors.New("disk full")}

	core, logs := observer.New(zapcore.ErrorLevel)
	s := Open(ctx, kv, zap.New(core))

	require.NoError(t, s.SetField(ctx, domain.CategoryMacroEconomic, "resources", "oil"))
	s.SetInsight(ctx, &domain.Insight{StrategicAdvice: "go"})

	assert.Equal(t, "oil", s.State().Field(domain.CategoryMacroEconomic, "resources"))
	assert.Equal(t, "go", s.Insight().StrategicAdvice)
	assert.Equal(t, 2, logs.FilterMessageSnippet("failed").Len())
}

func TestSession_ReadFailureLoggedAsWarning(t *testing.T) {
	kv := &brokenKV{err: errors.New("locked")}
	core, logs := observer.New(zapcore.WarnLevel)

	s := Open(context.Background(), kv, zap.New(core))

	assert.True(t, s.State().IsEmpty())
	assert.Equal(t, 2, logs.Len())
}

func TestSession_InsightPersists(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := Open(ctx, kv, nil)

	ins := &domain.Insight{
		Opportunities:    []string{"delivery"},
		Threats:          []string{"rent"},
		StrategicAdvice:  "Pilot one store",
		DataQualityScore: 62,
	}
	s.SetInsight(ctx, ins)

	got := Open(ctx, kv, nil).Insight()
	require.NotNil(t, got)
	assert.Equal(t, *ins, *got)
}

func TestSession_ReplaceDropsInsight(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := Open(ctx, kv, nil)
	s.SetInsight(ctx, &domain.Insight{StrategicAdvice: "old"})

	s.Replace(ctx, testutil.NewTestState())

	assert.Nil(t, s.Insight())
	reopened := Open(ctx, kv, nil)
	assert.Nil(t, reopened.Insight())
	assert.Equal(t, "Test Author", reopened.State().Author)
}

func TestSession_ReplaceNormalizesPartialState(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newKV(t), nil)

	s.Replace(ctx, &domain.AnalysisState{Author: "x"})
	assert.NotNil(t, s.State().IndustryForces)

	s.Replace(ctx, nil)
	assert.Equal(t, domain.NewAnalysisState(), s.State())
}

func TestSession_ResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := Open(ctx, kv, nil)
	s.Replace(ctx, testutil.NewTestState())
	s.SetInsight(ctx, &domain.Insight{StrategicAdvice: "x"})

	s.Reset(ctx)

	assert.True(t, s.State().IsEmpty())
	assert.Nil(t, s.Insight())
	_, err := kv.Get(ctx, repository.KeyAnalysisState)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = kv.Get(ctx, repository.KeyLastInsight)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSession_SaveLoadJSON(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src := Open(ctx, newKV(t), nil)
	src.Replace(ctx, testutil.NewTestState(testutil.WithAuthor("Saver")))
	src.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }

	path, err := src.SaveJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "envioscan_progress_2026-05-01.json"), path)

	dst := Open(ctx, newKV(t), nil)
	require.NoError(t, dst.LoadJSON(ctx, path))
	assert.Equal(t, src.State(), dst.State())
}

func TestSession_LoadJSONRejectsIncompleteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"author":"x","keyTrends":{}}`), 0644))

	s := Open(ctx, newKV(t), nil)
	s.SetAuthor(ctx, "keep me")

	err := s.LoadJSON(ctx, path)
	assert.ErrorIs(t, err, report.ErrShapeMismatch)
	assert.Equal(t, "keep me", s.State().Author)
}

func TestSession_LoadJSONMissingFile(t *testing.T) {
	s := Open(context.Background(), newKV(t), nil)
	err := s.LoadJSON(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
