package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/resume-share/internal/types"
	"github.com/rs/zerolog"
)

// FileStore keeps every record in one JSON array file. A missing file is an empty store.
// A file that cannot be parsed is logged and read as empty; the next write replaces it.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) List(_ context.Context) ([]types.SavedResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) Get(_ context.Context, id string) (*types.SavedResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read()
	if err != nil {
		return nil, err
	}
	if i := indexOf(records, id); i >= 0 {
		return &records[i], nil
	}
	return nil, ErrNotFound
}

func (f *FileStore) Put(_ context.Context, rec *types.SavedResume) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read()
	if err != nil {
		return err
	}
	return f.write(upsert(records, rec))
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read()
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 {
		return ErrNotFound
	}
	return f.write(append(records[:i], records[i+1:]...))
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) read() ([]types.SavedResume, error) {
	content, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.SavedResume{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read " + f.path, Cause: err}
	}
	if len(content) == 0 {
		return []types.SavedResume{}, nil
	}

	var records []types.SavedResume
	if err := json.Unmarshal(content, &records); err != nil {
		f.logger.Error().Err(err).Str("path", f.path).Msg("failed to parse saved resumes, treating store as empty")
		return []types.SavedResume{}, nil
	}
	return records, nil
}

// write replaces the file atomically through a temporary file in the same directory.
func (f *FileStore) write(records []types.SavedResume) error {
	content, err := json.Marshal(records)
	if err != nil {
		return &StorageError{Op: "encode records", Cause: err}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &StorageError{Op: "create directory " + dir, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".resumes-*.json")
	if err != nil {
		return &StorageError{Op: "create temp file", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return &StorageError{Op: "write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "close temp file", Cause: err}
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return &StorageError{Op: "replace " + f.path, Cause: err}
	}
	return nil
}
