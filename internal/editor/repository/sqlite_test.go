package repository

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "exports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestInit_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.Init(context.Background()))
}

func TestSaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, "session-1", "demo", 2, "<map name=\"demo\"></map>")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)
	assert.Equal(t, "demo", saved.MapName)
	assert.Equal(t, 2, saved.AreaCount)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Equal(t, "<map name=\"demo\"></map>", got.Markup)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirstWithoutMarkup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := repo.Save(ctx, "s", name, 1, "markup "+name)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].MapName)
	assert.Equal(t, "one", list[2].MapName)
	for _, e := range list {
		assert.Empty(t, e.Markup)
	}

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestList_Empty(t *testing.T) {
	repo := newTestRepo(t)
	list, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
