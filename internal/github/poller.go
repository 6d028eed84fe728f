package github

import (
	"context"
	"time"

	"github.com/hubdeck/hubdeck/internal/logger"
	"github.com/hubdeck/hubdeck/internal/watch"
)

// Command is an out-of-band request to the poller.
type Command int

const (
	// CommandRefresh runs a fetch cycle immediately.
	CommandRefresh Command = iota
	// CommandStop ends the poller loop.
	CommandStop
)

// Fetcher runs one fetch cycle. Satisfied by *Client.
type Fetcher interface {
	FetchAll(ctx context.Context, prev State) State
}

// Store persists snapshots between runs. Satisfied by *Cache.
type Store interface {
	Load() *State
	Save(state State) error
}

// Poller owns the authoritative GitHub state. It runs fetch cycles on a
// fixed interval and on Refresh commands, publishing every outcome to its
// snapshot feed and persisting it to the store. The loop body is strictly
// sequential, so cycles never overlap and the store never sees concurrent
// writes.
type Poller struct {
	fetcher  Fetcher
	store    Store
	interval time.Duration
	done     chan struct{}
}

// NewPoller creates a poller; Start begins the loop.
func NewPoller(fetcher Fetcher, store Store, interval time.Duration) *Poller {
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// LoadCachedState returns the persisted state, or an empty default when the
// store has nothing usable.
func (p *Poller) LoadCachedState() State {
	if state := p.store.Load(); state != nil {
		return *state
	}
	return State{}
}

// Start launches the poller goroutine seeded with initial and returns the
// snapshot feed plus the command channel. The channel holds a single
// in-flight command; a command arriving mid-cycle waits for the next loop
// iteration. Ticks backed up behind a long cycle are dropped by the ticker,
// not queued.
func (p *Poller) Start(ctx context.Context, initial State) (*watch.Feed[State], chan<- Command) {
	feed := watch.NewFeed(initial.Clone())
	commands := make(chan Command, 1)

	go p.run(ctx, feed, commands, initial)

	return feed, commands
}

// Done is closed when the poller loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) run(ctx context.Context, feed *watch.Feed[State], commands <-chan Command, state State) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial cycle so a fresh start shows data without waiting a full
	// interval.
	state = p.cycle(ctx, feed, state)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("GitHub poller stopping: context cancelled")
			return
		case <-ticker.C:
			logger.Debug().Msg("periodic GitHub refresh")
			state = p.cycle(ctx, feed, state)
		case cmd := <-commands:
			switch cmd {
			case CommandRefresh:
				logger.Info().Msg("manual GitHub refresh")
				state = p.cycle(ctx, feed, state)
			case CommandStop:
				logger.Info().Msg("GitHub poller stopping")
				return
			}
		}
	}
}

// cycle runs one fetch, publishes the outcome, and persists it. Hard
// failures are published and persisted like successes; the Error status
// travels with the snapshot.
func (p *Poller) cycle(ctx context.Context, feed *watch.Feed[State], prev State) State {
	state := p.fetcher.FetchAll(ctx, prev)
	feed.Publish(state.Clone())
	if err := p.store.Save(state); err != nil {
		logger.Error().Err(err).Msg("failed to persist GitHub state")
	}
	return state
}
