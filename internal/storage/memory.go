package storage

// Memory is a Slots kept in a map. The zero value is ready to use.
type Memory struct {
	slots map[string]string
}

func NewMemory() *Memory {
	return &Memory{slots: map[string]string{}}
}

func (m *Memory) Get(key string) (string, error) {
	v, ok := m.slots[key]
	if !ok {
		return "", ErrSlotNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	if m.slots == nil {
		m.slots = map[string]string{}
	}
	m.slots[key] = value
	return nil
}
