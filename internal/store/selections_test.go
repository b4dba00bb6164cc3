package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *SelectionRepo {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSelectionRepo(db)
}

func TestOpenMigratesAndIsRepeatable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "twice.db")
	first, err := Open(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, NewSelectionRepo(first).Record(ctx, "status", "open"))
	require.NoError(t, first.Close())

	db, err := Open(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM selections`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestRecordAndGet(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openTestRepo(t)

	missing, err := repo.Get(ctx, "status")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, repo.Record(ctx, "status", "open"))
	require.NoError(t, repo.Record(ctx, "status", "done"))

	got, err := repo.Get(ctx, "status")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "done", got.Value)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestSelectionListAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Record(ctx, "labels", "bug,docs"))
	require.NoError(t, repo.Record(ctx, "assignee", "bo"))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "assignee", all[0].ControlID)
	require.Equal(t, "bug,docs", all[1].Value)

	require.NoError(t, repo.Delete(ctx, "assignee"))
	require.NoError(t, repo.Delete(ctx, "never-stored"))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	hist, err := repo.History(ctx, "assignee", 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
}

func TestRecordEmptyForgetsButKeepsHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepo(t)

	for _, v := range []string{"open", "blocked", "done", ""} {
		require.NoError(t, repo.Record(ctx, "status", v))
	}
	require.NoError(t, repo.Record(ctx, "other", "x"))

	cur, err := repo.Get(ctx, "status")
	require.NoError(t, err)
	require.Nil(t, cur)

	hist, err := repo.History(ctx, "status", 2)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, "", hist[0].Value)
	require.Equal(t, "done", hist[1].Value)

	hist, err = repo.History(ctx, "status", 10)
	require.NoError(t, err)
	require.Len(t, hist, 4)
}
