package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-share/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryStore(), zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
	return svc
}

type failingStore struct {
	MemoryStore
	err error
}

func (f *failingStore) Get(context.Context, string) (*types.SavedResume, error) {
	return nil, f.err
}

func TestService_CreateDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "  ", nil)
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-4000-8000-000000000001", rec.ID)
	assert.Equal(t, DefaultName, rec.Name)
	assert.Equal(t, types.DefaultTemplateID, rec.TemplateID)
	assert.Equal(t, fixedNow, rec.UpdatedAt)
	assert.Equal(t, *types.DefaultResume(), rec.Data)

	stored, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestService_CreateCopiesData(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := types.DefaultResume()
	rec, err := svc.Create(ctx, "Mine", data)
	require.NoError(t, err)

	data.Skills[0] = "mutated"
	stored, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", stored.Data.Skills[0])
}

func TestService_CreateRejectsLongName(t *testing.T) {
	svc := newTestService(t)
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Create(context.Background(), string(long), nil)
	assert.Error(t, err)
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "Before", nil)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	name := "After"
	tmpl := "does-not-exist"
	data := types.DefaultResume()
	data.Skills = []string{"Rust"}

	updated, err := svc.Update(ctx, rec.ID, Update{Name: &name, TemplateID: &tmpl, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, types.DefaultTemplateID, updated.TemplateID)
	assert.Equal(t, []string{"Rust"}, updated.Data.Skills)
	assert.Equal(t, later, updated.UpdatedAt)

	_, err = svc.Update(ctx, "missing", Update{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteAndDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	orig, err := svc.Create(ctx, "Backend Resume", nil)
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, "Backend Resume (Copy)", dup.Name)
	assert.Equal(t, orig.Data, dup.Data)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, orig.ID, list[0].ID)
	assert.Equal(t, dup.ID, list[1].ID)

	require.NoError(t, svc.Delete(ctx, orig.ID))
	assert.ErrorIs(t, svc.Delete(ctx, orig.ID), ErrNotFound)
	_, err = svc.Duplicate(ctx, orig.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Lookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "Lookup", nil)
	require.NoError(t, err)

	got, found, err := svc.Lookup(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, rec.ID, got.ID)

	got, found, err = svc.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)

	boom := errors.New("disk on fire")
	broken := NewService(&failingStore{err: boom}, zerolog.Nop())
	_, found, err = broken.Lookup(ctx, "any")
	assert.False(t, found)
	assert.ErrorIs(t, err, boom)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "My_Backend_Resume.json", ExportFileName("My Backend  Resume"))
	assert.Equal(t, "Solo.json", ExportFileName("Solo"))
	assert.Equal(t, "tab_name.json", ExportFileName("tab\tname"))
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	orig, err := svc.Create(ctx, "Platform Engineer", nil)
	require.NoError(t, err)

	fileName, content, err := svc.Export(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform_Engineer.json", fileName)
	assert.Contains(t, string(content), "\n  \"personalInfo\": {")

	imported, err := svc.Import(ctx, fileName, content)
	require.NoError(t, err)
	assert.Equal(t, "Platform_Engineer", imported.Name)
	assert.Equal(t, orig.Data, imported.Data)
	assert.NotEqual(t, orig.ID, imported.ID)

	_, _, err = svc.Export(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ImportRejectsIncompleteDocuments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		message string
	}{
		{"not json", "{oops", "Invalid resume JSON: file is not valid JSON"},
		{"missing workExperience", `{"personalInfo":{},"skills":[]}`, "Invalid resume JSON: missing required fields"},
		{"missing skills", `{"personalInfo":{},"workExperience":[]}`, "Invalid resume JSON: missing required fields"},
		{"array root", `[]`, "Invalid resume JSON: missing required fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(ctx, "bad.json", []byte(tt.content))
			var ie *ImportError
			require.True(t, errors.As(err, &ie), "got %v", err)
			assert.Equal(t, tt.message, ie.Message)
			assert.Equal(t, "bad.json", ie.File)
		})
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_ImportNormalizesAndNames(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc := map[string]any{
		"personalInfo":   map[string]any{"name": "Ada"},
		"skills":         []string{"Math"},
		"workExperience": []any{},
	}
	content, err := json.Marshal(doc)
	require.NoError(t, err)

	rec, err := svc.Import(ctx, "/tmp/uploads/Ada.JSON", content)
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.Name)
	assert.Equal(t, []types.Education{}, rec.Data.Education)

	rec, err = svc.Import(ctx, ".json", content)
	require.NoError(t, err)
	assert.Equal(t, ImportedName, rec.Name)
}

func TestService_ImportTruncatesLongFileNames(t *testing.T) {
	svc := newTestService(t)
	content := []byte(`{"personalInfo":{"name":"Ada"},"skills":[],"workExperience":[]}`)

	rec, err := svc.Import(context.Background(), strings.Repeat("é", 250)+".json", content)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", types.MaxNameLength), rec.Name)
}
