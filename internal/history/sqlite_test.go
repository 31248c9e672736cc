package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdr-device-classifier/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	return store
}

func testRun(id string) *domain.ClassificationRun {
	return &domain.ClassificationRun{
		ID:             id,
		ProfileJSON:    `{"invasiveness":"non-invasif"}`,
		ResultingClass: "I",
		Confidence:     "high",
		Justification:  "Règle R1 (Dispositifs non invasifs): ...",
		CatalogVersion: "MDR-2017-745-annexe-VIII-2024.1",
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "history-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	run := testRun("run-1")

	require.NoError(t, store.Save(ctx, run))
	assert.False(t, run.CreatedAt.IsZero(), "CreatedAt should be set")

	loaded, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, run.ProfileJSON, loaded.ProfileJSON)
	assert.Equal(t, run.ResultingClass, loaded.ResultingClass)
	assert.Equal(t, run.Confidence, loaded.Confidence)
	assert.Equal(t, run.CatalogVersion, loaded.CatalogVersion)
}

func TestSQLiteStore_SaveRejectsDuplicateID(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testRun("run-1")))

	err := store.Save(ctx, testRun("run-1"))
	assert.Error(t, err, "runs are immutable, a reused ID must fail")
}

func TestSQLiteStore_SaveRequiresID(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	run := testRun("")
	err := store.Save(context.Background(), run)
	assert.Error(t, err)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	run, err := store.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestSQLiteStore_ListAndCount(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("run-%d", i))
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Save(ctx, run))
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	runs, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-4", runs[0].ID, "most recent first")
	assert.Equal(t, "run-3", runs[1].ID)

	runs, err = store.List(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-0", runs[0].ID)
}
