// Package history keeps a bounded, most-recent-first record of completed
// summarization round-trips, written through to a persistent slot.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds how many entries survive; the oldest are evicted.
const DefaultCapacity = 10

// Entry is one completed round-trip. Immutable after creation except for
// deletion.
type Entry struct {
	ID            string    `json:"id"`
	OriginalInput string    `json:"original_input"`
	InputMode     string    `json:"input_mode"`
	Granularity   string    `json:"granularity"`
	SummaryText   string    `json:"summary_text"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEntry stamps identity and creation time.
func NewEntry(originalInput, inputMode, granularity, summaryText string) Entry {
	return Entry{
		ID:            uuid.NewString(),
		OriginalInput: originalInput,
		InputMode:     inputMode,
		Granularity:   granularity,
		SummaryText:   summaryText,
		CreatedAt:     time.Now().UTC(),
	}
}

// Backing is the persistence seam. Load returns the stored sequence or nil;
// malformed data must come back as an error so the cache can start empty
// instead of crashing.
type Backing interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Clear() error
}

// Cache is the in-memory view; every mutation writes through to the backing
// before returning, so the persisted and in-memory sequences are always equal.
type Cache struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	backing  Backing
}

func NewCache(backing Backing, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{capacity: capacity, backing: backing}
}

// Load initializes from the persisted slot. Absent or malformed data yields
// an empty cache; persisted sequences longer than the capacity are truncated.
func (c *Cache) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := c.backing.Load()
	if err != nil || entries == nil {
		c.entries = nil
		return
	}
	if len(entries) > c.capacity {
		entries = entries[:c.capacity]
	}
	c.entries = entries
}

// Insert prepends the entry, evicts past the capacity bound, and persists.
func (c *Cache) Insert(e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append([]Entry{e}, c.entries...)
	if len(c.entries) > c.capacity {
		c.entries = c.entries[:c.capacity]
	}
	return c.backing.Save(c.snapshotLocked())
}

// Delete removes the entry with the given id. No-op if absent, but the
// persisted slot is rewritten either way.
func (c *Cache) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return c.backing.Save(c.snapshotLocked())
}

// Clear empties the sequence and removes the persisted slot entirely.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	return c.backing.Clear()
}

// Get finds an entry by id for restore. Restoring is a read, not a
// promotion: cache order is untouched.
func (c *Cache) Get(id string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("history entry %s not found", id)
}

// Entries returns a copy of the sequence, most-recent-first.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) snapshotLocked() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
