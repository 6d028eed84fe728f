package logger

import (
	"sync"
	"time"
)

// DefaultRingSize is the default number of log entries retained for the log page.
const DefaultRingSize = 100

// Entry is a single captured log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
}

// Ring is a bounded, append-only log buffer shared between the logging sink
// and the dashboard's log page. Pushing past capacity evicts the oldest
// entry. All methods are safe for concurrent use; the lock is held only for
// the duration of a push or copy.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	head    int
	count   int
	size    int
}

// NewRing creates a ring buffer holding up to size entries.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Push appends an entry, evicting the oldest if the buffer is full.
func (r *Ring) Push(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = Entry{Time: time.Now(), Level: level, Message: message}
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Entries returns a copy of the buffered entries in chronological order.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(start+i)%r.size]
	}
	return out
}

// Len returns the number of buffered entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Clear removes all buffered entries.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.count = 0
}
