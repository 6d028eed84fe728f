package watch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFeedInitialValueIsObservable(t *testing.T) {
	f := NewFeed(42)
	sub := f.Subscribe()

	// A fresh subscriber sees the seed value as a pending change.
	assert.True(t, sub.Changed())
	assert.Equal(t, 42, sub.Take())
	assert.False(t, sub.Changed())
}

func TestPublishAndTake(t *testing.T) {
	f := NewFeed("initial")
	sub := f.Subscribe()
	sub.Take()

	f.Publish("updated")

	assert.True(t, sub.Changed())
	assert.Equal(t, "updated", sub.Take())
	assert.False(t, sub.Changed())
}

func TestLastWriteWinsCoalescing(t *testing.T) {
	f := NewFeed(0)
	sub := f.Subscribe()
	sub.Take()

	// Multiple publishes between reads coalesce into one observed value.
	f.Publish(1)
	f.Publish(2)
	f.Publish(3)

	assert.True(t, sub.Changed())
	assert.Equal(t, 3, sub.Take())
	assert.False(t, sub.Changed())
}

func TestIndependentSubscribers(t *testing.T) {
	f := NewFeed("seed")
	a := f.Subscribe()
	b := f.Subscribe()

	a.Take()
	f.Publish("next")

	assert.True(t, a.Changed())
	// b never took the seed, so it is also pending.
	assert.True(t, b.Changed())
	assert.Equal(t, "next", a.Take())
	assert.Equal(t, "next", b.Take())
}

func TestLatestDoesNotMarkObserved(t *testing.T) {
	f := NewFeed(1)
	sub := f.Subscribe()

	assert.Equal(t, 1, f.Latest())
	assert.True(t, sub.Changed())
}

func TestConcurrentPublishAndRead(t *testing.T) {
	f := NewFeed(0)
	sub := f.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			f.Publish(i)
		}
	}()

	// Reads race the writer; the final read must see the final value.
	for i := 0; i < 100; i++ {
		_ = sub.Take()
	}
	wg.Wait()

	assert.Equal(t, 1000, sub.Take())
}
