package history

import (
	"sync"

	"github.com/wellywell/ssccscan/internal/types"
)

const DefaultCapacity = 10

// Recent keeps the last scans, most recent first. It is not persisted.
type Recent struct {
	mu      sync.Mutex
	entries []types.ScanEntry
	size    int
}

func NewRecent(size int) *Recent {
	if size <= 0 {
		size = DefaultCapacity
	}
	return &Recent{
		entries: make([]types.ScanEntry, 0, size),
		size:    size,
	}
}

func (r *Recent) Add(entry types.ScanEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) < r.size {
		r.entries = append(r.entries, types.ScanEntry{})
	}
	copy(r.entries[1:], r.entries[:len(r.entries)-1])
	r.entries[0] = entry
}

// List returns a copy of the buffer.
func (r *Recent) List() []types.ScanEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]types.ScanEntry, len(r.entries))
	copy(result, r.entries)
	return result
}

func (r *Recent) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
