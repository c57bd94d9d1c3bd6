package store

import (
	"context"
	"sync"

	"github.com/jonathan/resume-share/internal/types"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records []types.SavedResume
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(_ context.Context) ([]types.SavedResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.records), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*types.SavedResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.records, id); i >= 0 {
		return cloneRecord(&m.records[i]), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Put(_ context.Context, rec *types.SavedResume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = upsert(m.records, rec)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.records, id)
	if i < 0 {
		return ErrNotFound
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func indexOf(records []types.SavedResume, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

func upsert(records []types.SavedResume, rec *types.SavedResume) []types.SavedResume {
	c := cloneRecord(rec)
	if i := indexOf(records, rec.ID); i >= 0 {
		records[i] = *c
		return records
	}
	return append(records, *c)
}

func cloneRecord(rec *types.SavedResume) *types.SavedResume {
	out := *rec
	out.Data = *rec.Data.Clone()
	return &out
}

func cloneRecords(records []types.SavedResume) []types.SavedResume {
	out := make([]types.SavedResume, len(records))
	for i := range records {
		out[i] = *cloneRecord(&records[i])
	}
	return out
}
