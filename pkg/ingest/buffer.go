package ingest

import "github.com/modoterra/tailview/pkg/core"

const (
	// Capacity is the hard cap on buffered entries.
	Capacity = 10000
	// evictBlock is how many of the oldest entries are dropped in one go
	// when the cap is hit, so eviction cost is amortized instead of
	// paid per append.
	evictBlock = 1000
)

// Buffer is the ordered, capacity-bounded store of normalized entries.
// Insertion order is arrival order. It is touched only by the single
// consumer loop, so it carries no lock.
type Buffer struct {
	entries []core.Entry
}

// Append adds an entry, evicting the oldest block first when the buffer
// is at capacity. Under sustained load the length oscillates between
// 9001 and 10000.
func (b *Buffer) Append(e core.Entry) {
	if len(b.entries) >= Capacity {
		n := copy(b.entries, b.entries[evictBlock:])
		b.entries = b.entries[:n]
	}
	b.entries = append(b.entries, e)
}

// Entries returns the buffered entries in arrival order. The slice is a
// view for the current tick; callers must not retain or mutate it.
func (b *Buffer) Entries() []core.Entry {
	return b.entries
}

// Len reports the number of buffered entries.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Clear drops all entries but keeps the allocated backing store.
func (b *Buffer) Clear() {
	b.entries = b.entries[:0]
}
