// Package watch provides a single-writer, multi-reader "latest value"
// feed: the writer atomically replaces an immutable snapshot and bumps a
// change counter; readers poll for "changed since I last looked" and take a
// copy. Rapid publishes between reads coalesce into one observed value.
package watch

import "sync"

// Feed holds the latest published snapshot of T.
type Feed[T any] struct {
	mu    sync.RWMutex
	value T
	seq   uint64
}

// NewFeed creates a feed seeded with an initial value. The initial value
// counts as published: a fresh subscriber observes it as a change.
func NewFeed[T any](initial T) *Feed[T] {
	return &Feed[T]{value: initial, seq: 1}
}

// Publish replaces the current snapshot. The caller must not mutate v after
// publishing.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
	f.seq++
}

// Latest returns the current snapshot regardless of change state.
func (f *Feed[T]) Latest() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Subscribe returns an independent cursor over the feed.
func (f *Feed[T]) Subscribe() *Sub[T] {
	return &Sub[T]{feed: f}
}

// Sub is one reader's cursor. Not safe for concurrent use by multiple
// goroutines; each consumer takes its own.
type Sub[T any] struct {
	feed *Feed[T]
	seen uint64
}

// Changed reports whether a publish has happened since the last Take.
func (s *Sub[T]) Changed() bool {
	s.feed.mu.RLock()
	defer s.feed.mu.RUnlock()
	return s.feed.seq != s.seen
}

// Take returns the latest snapshot and marks it observed. This is a
// last-write-wins read: intermediate publishes are not replayed.
func (s *Sub[T]) Take() T {
	s.feed.mu.RLock()
	defer s.feed.mu.RUnlock()
	s.seen = s.feed.seq
	return s.feed.value
}
