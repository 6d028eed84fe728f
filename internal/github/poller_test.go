package github

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher counts cycles and returns a state stamped with the cycle
// number so tests can observe ordering.
type stubFetcher struct {
	mu     sync.Mutex
	cycles int
}

func (f *stubFetcher) FetchAll(_ context.Context, prev State) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cycles++
	state := prev.Clone()
	state.Stats.TotalRepos = f.cycles
	state.Status = StatusSuccess
	return state
}

func (f *stubFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cycles
}

// memStore records saves in memory.
type memStore struct {
	mu     sync.Mutex
	saved  []State
	loaded *State
}

func (s *memStore) Load() *State { return s.loaded }

func (s *memStore) Save(state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, state)
	return nil
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestPollerInitialCyclePublishesAndPersists(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &memStore{}
	p := NewPoller(fetcher, store, time.Hour)

	feed, commands := p.Start(context.Background(), State{})
	defer func() { commands <- CommandStop }()

	waitFor(t, func() bool { return store.saveCount() >= 1 }, "initial cycle")

	sub := feed.Subscribe()
	state := sub.Take()
	assert.Equal(t, 1, state.Stats.TotalRepos)
	assert.True(t, state.Status.IsSuccess())
}

func TestPollerRefreshCommandRunsCycle(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &memStore{}
	p := NewPoller(fetcher, store, time.Hour)

	feed, commands := p.Start(context.Background(), State{})
	waitFor(t, func() bool { return fetcher.count() >= 1 }, "initial cycle")

	commands <- CommandRefresh
	waitFor(t, func() bool { return fetcher.count() >= 2 }, "refresh cycle")

	sub := feed.Subscribe()
	assert.Equal(t, fetcher.count(), sub.Take().Stats.TotalRepos)

	commands <- CommandStop
	<-p.Done()
}

func TestPollerTimerTickRunsCycle(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &memStore{}
	p := NewPoller(fetcher, store, 20*time.Millisecond)

	_, commands := p.Start(context.Background(), State{})

	waitFor(t, func() bool { return fetcher.count() >= 3 }, "timer cycles")

	commands <- CommandStop
	<-p.Done()
}

func TestPollerStopEndsLoop(t *testing.T) {
	fetcher := &stubFetcher{}
	p := NewPoller(fetcher, &memStore{}, time.Hour)

	_, commands := p.Start(context.Background(), State{})
	waitFor(t, func() bool { return fetcher.count() >= 1 }, "initial cycle")

	commands <- CommandStop

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}

	// No further cycles after stop.
	cycles := fetcher.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, cycles, fetcher.count())
}

func TestPollerContextCancelEndsLoop(t *testing.T) {
	fetcher := &stubFetcher{}
	p := NewPoller(fetcher, &memStore{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx, State{})
	waitFor(t, func() bool { return fetcher.count() >= 1 }, "initial cycle")

	cancel()

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on context cancel")
	}
}

func TestPollerPersistsHardFailureCycles(t *testing.T) {
	// Every cycle is persisted, Error outcomes included; the store may
	// transiently hold an Error snapshot.
	store := &memStore{}
	p := NewPoller(failFetcher{}, store, time.Hour)

	_, commands := p.Start(context.Background(), State{})
	waitFor(t, func() bool { return store.saveCount() >= 1 }, "failed cycle persisted")

	store.mu.Lock()
	saved := store.saved[0]
	store.mu.Unlock()
	assert.True(t, saved.Status.IsError())

	commands <- CommandStop
	<-p.Done()
}

type failFetcher struct{}

func (failFetcher) FetchAll(_ context.Context, prev State) State {
	state := prev.Clone()
	state.Status = StatusError("profile fetch failed: 503")
	return state
}

func TestLoadCachedState(t *testing.T) {
	t.Run("empty store yields default", func(t *testing.T) {
		p := NewPoller(&stubFetcher{}, &memStore{}, time.Hour)
		state := p.LoadCachedState()
		assert.False(t, state.HasData())
		assert.Equal(t, StatusIdle, state.Status)
	})

	t.Run("populated store yields snapshot", func(t *testing.T) {
		cached := State{Profile: &Profile{Login: "octocat"}}
		p := NewPoller(&stubFetcher{}, &memStore{loaded: &cached}, time.Hour)
		state := p.LoadCachedState()
		require.NotNil(t, state.Profile)
		assert.Equal(t, "octocat", state.Profile.Login)
	})
}
