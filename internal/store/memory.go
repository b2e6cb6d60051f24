package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Records, used by tests and by the repositories'
// round-trip checks. Documents are copied on both Load and Save so callers
// never share backing arrays with the store.
type Memory struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]json.RawMessage)}
}

func (m *Memory) Load(_ context.Context, name string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[name]
	if !ok {
		return nil, false, nil
	}
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (m *Memory) Save(_ context.Context, name string, doc json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	m.docs[name] = stored
	return nil
}
