package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ctrlstudio/modelsync/internal/model"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLiteStore(db)
	require.NoError(t, s.CreateTable(context.Background()))
	return s
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	p := model.NewProject("Demo")
	c, err := model.NewComponent(model.ComponentButton, model.Point{X: 1, Y: 2})
	require.NoError(t, err)
	p.Components = append(p.Components, c)

	require.NoError(t, s.SaveProject(ctx, p))

	got, err := s.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Demo", got.Name)
	require.Len(t, got.Components, 1)
	assert.Equal(t, model.ComponentButton, got.Components[0].Type)
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	s := newSQLiteStore(t)
	_, err := s.LoadProject(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	p := model.NewProject("Demo")
	require.NoError(t, s.SaveProject(ctx, p))

	p.Name = "Renamed"
	p.Modified = time.Now().UTC().Add(time.Minute)
	require.NoError(t, s.SaveProject(ctx, p))

	got, err := s.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestSQLiteStore_LatestProject(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.LatestProject(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	older := model.NewProject("Older")
	older.Modified = time.Now().UTC().Add(-time.Hour)
	newer := model.NewProject("Newer")
	newer.Modified = time.Now().UTC()

	require.NoError(t, s.SaveProject(ctx, older))
	require.NoError(t, s.SaveProject(ctx, newer))

	got, err := s.LatestProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Newer", got.Name)
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	p := model.NewProject("Demo")
	require.NoError(t, s.SaveProject(ctx, p))
	require.NoError(t, s.DeleteProject(ctx, p.ID))

	_, err := s.LoadProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, s.DeleteProject(ctx, p.ID))
}

func TestMemoryStore_SaveReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := model.NewProject("Demo")
	require.NoError(t, s.SaveProject(ctx, p))

	// Mutating the original after save must not affect the stored copy.
	p.Name = "Mutated"

	got, err := s.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo", got.Name)

	// Mutating a loaded copy must not affect subsequent loads.
	got.Name = "AlsoMutated"
	again, err := s.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo", again.Name)
}
