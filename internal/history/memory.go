package history

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/iwvelando/finance-calculators/internal/calculator"
)

// Memory keeps records in process memory.
type Memory struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[uuid.UUID]Record)}
}

func (m *Memory) Save(_ context.Context, record Record) (Record, error) {
	record = prepare(record)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return record, nil
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

func (m *Memory) List(_ context.Context, kind calculator.Kind) ([]Record, error) {
	m.mu.RLock()
	records := make([]Record, 0, len(m.records))
	for _, record := range m.records {
		if kind == "" || record.Kind == kind {
			records = append(records, record)
		}
	}
	m.mu.RUnlock()

	newestFirst(records)
	return records, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
