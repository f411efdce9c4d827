package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileBacking persists the sequence as one JSON-encoded slot on disk.
type FileBacking struct {
	path string
	mu   sync.Mutex
}

func NewFileBacking(path string) *FileBacking {
	return &FileBacking{path: path}
}

func (b *FileBacking) Load() ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *FileBacking) Save(entries []Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0o600)
}

// Clear removes the slot itself so no stale data lingers.
func (b *FileBacking) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := os.Remove(b.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// InMemoryBacking is the test substitute for the persistent slot.
type InMemoryBacking struct {
	mu      sync.Mutex
	entries []Entry
	present bool
}

func NewInMemoryBacking() *InMemoryBacking {
	return &InMemoryBacking{}
}

func (b *InMemoryBacking) Load() ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.present {
		return nil, nil
	}
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out, nil
}

func (b *InMemoryBacking) Save(entries []Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make([]Entry, len(entries))
	copy(b.entries, entries)
	b.present = true
	return nil
}

func (b *InMemoryBacking) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	b.present = false
	return nil
}
