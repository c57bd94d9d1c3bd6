package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-share/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(id, name string) *types.SavedResume {
	return &types.SavedResume{
		ID:         id,
		Name:       name,
		UpdatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		TemplateID: types.DefaultTemplateID,
		Data:       *types.DefaultResume(),
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLite(context.Background(), filepath.Join(dir, "resumes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "resumes.json"), zerolog.Nop()),
		"sqlite": sqlite,
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			list, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			a := newRecord("00000000-0000-4000-8000-000000000001", "First")
			b := newRecord("00000000-0000-4000-8000-000000000002", "Second")
			require.NoError(t, s.Put(ctx, a))
			require.NoError(t, s.Put(ctx, b))

			got, err := s.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, a, got)

			// upsert keeps the original position
			a.Name = "First, renamed"
			require.NoError(t, s.Put(ctx, a))

			list, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "First, renamed", list[0].Name)
			assert.Equal(t, "Second", list[1].Name)

			require.NoError(t, s.Delete(ctx, a.ID))
			_, err = s.Get(ctx, a.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)

			list, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, b.ID, list[0].ID)
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec := newRecord("00000000-0000-4000-8000-000000000003", "Original")
			require.NoError(t, s.Put(ctx, rec))
			rec.Data.Skills[0] = "changed after put"

			got, err := s.Get(ctx, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, "Go", got.Data.Skills[0])

			got.Data.Skills[0] = "changed after get"
			again, err := s.Get(ctx, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, "Go", again.Data.Skills[0])
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "resumes.json")

	first := NewFileStore(path, zerolog.Nop())
	rec := newRecord("00000000-0000-4000-8000-000000000004", "Persisted")
	require.NoError(t, first.Put(ctx, rec))

	second := NewFileStore(path, zerolog.Nop())
	got, err := second.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "resumes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewFileStore(path, zerolog.Nop())
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Put(ctx, newRecord("00000000-0000-4000-8000-000000000005", "Fresh")))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "resumes.db")

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	rec := newRecord("00000000-0000-4000-8000-000000000006", "Persisted")
	require.NoError(t, first.Put(ctx, rec))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	got, err := second.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		dsn  string
		want any
	}{
		{"memory", &MemoryStore{}},
		{"sqlite:" + filepath.Join(dir, "a"), &SQLiteStore{}},
		{filepath.Join(dir, "b.db"), &SQLiteStore{}},
		{filepath.Join(dir, "c.sqlite"), &SQLiteStore{}},
		{filepath.Join(dir, "d.json"), &FileStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			s, err := Open(ctx, tt.dsn, zerolog.Nop())
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			assert.IsType(t, tt.want, s)
		})
	}
}
