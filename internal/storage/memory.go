package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/rewired-gh/riskwatch/internal/models"
)

// Memory is an ordered, read-mostly store backed by a slice.
type Memory struct {
	mu      sync.RWMutex
	records []models.CustomerRecord
	index   map[string]int
}

// NewMemory returns a store holding records in the given order. A later
// record with a duplicate ID replaces the earlier one in place.
func NewMemory(records ...models.CustomerRecord) *Memory {
	m := &Memory{index: make(map[string]int, len(records))}
	for _, r := range records {
		m.put(r)
	}
	return m
}

func (m *Memory) put(r models.CustomerRecord) {
	r = withAlertIDs(r)
	if i, ok := m.index[r.ID]; ok {
		m.records[i] = r
		return
	}
	m.index[r.ID] = len(m.records)
	m.records = append(m.records, r)
}

// Put inserts or replaces a record.
func (m *Memory) Put(_ context.Context, r models.CustomerRecord) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid customer: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(r)
	return nil
}

func (m *Memory) All(ctx context.Context) ([]models.CustomerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.CustomerRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*models.CustomerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r := m.records[i]
	return &r, nil
}

// Count returns the number of stored records.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
