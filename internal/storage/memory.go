package storage

import "sync"

// Memory is an in-process KV, used by tests and dry runs.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	// Err, when set, is returned by every Save.
	Err error
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Load(namespace string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[namespace]
	return v, ok, nil
}

func (m *Memory) Save(namespace, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.values[namespace] = value
	return nil
}
