package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := NewRunStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(id string, started time.Time) domain.ImportSession {
	return domain.ImportSession{
		ID:          id,
		ProjectPath: "/projects/demo.logicx",
		SourcePath:  "/tmp/chords.mid",
		Phase:       domain.PhaseDone,
		Fallbacks: []domain.FallbackChoice{
			{Step: "confirm", Chosen: "Import"},
		},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}
}

func TestRunStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run := sampleRun("run-1", time.Now().UTC().Truncate(time.Second))

	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ProjectPath, got.ProjectPath)
	assert.Equal(t, run.SourcePath, got.SourcePath)
	assert.Equal(t, domain.PhaseDone, got.Phase)
	assert.Equal(t, run.Fallbacks, got.Fallbacks)
	assert.Nil(t, got.Failure)
	assert.Equal(t, 3*time.Second, got.Duration())
}

func TestRunStore_SavePreservesFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-failed", time.Now().UTC().Truncate(time.Second))
	run.Phase = domain.PhaseFailed
	run.Fallbacks = nil
	run.Failure = &domain.Failure{
		Kind:    domain.FailureDialogNotFound,
		Message: "no window titled \"Import\" after 100 attempts",
	}

	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-failed")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, got.Phase)
	require.NotNil(t, got.Failure)
	assert.Equal(t, domain.FailureDialogNotFound, got.Failure.Kind)
	assert.Contains(t, got.Failure.Message, "100 attempts")
	assert.Empty(t, got.Fallbacks)
}

func TestRunStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_Save_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run := sampleRun("run-1", time.Now().UTC().Truncate(time.Second))

	require.NoError(t, store.Save(ctx, run))

	run.Phase = domain.PhaseFailed
	run.Failure = &domain.Failure{Kind: domain.FailurePromptUnresolved, Message: "retry"}
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, got.Phase)
}

func TestRunStore_List_NewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, sampleRun("old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, sampleRun("mid", base.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, sampleRun("new", base)))

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}

func TestRunStore_List_ZeroLimitReturnsAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, sampleRun("a", base)))
	require.NoError(t, store.Save(ctx, sampleRun("b", base.Add(time.Minute))))

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunStore_PersistsAcrossReopen(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	store1, err := NewRunStore(dataDir)
	require.NoError(t, err)
	require.NoError(t, store1.Save(ctx, sampleRun("run-1", time.Now().UTC().Truncate(time.Second))))
	require.NoError(t, store1.Close())

	store2, err := NewRunStore(dataDir)
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDone, got.Phase)
	assert.Equal(t, filepath.Join(dataDir, "runs.db"), store2.Path())
}
