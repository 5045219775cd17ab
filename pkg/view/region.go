// Package view keeps rendered page regions in sync with admin edits.
//
// A Region holds the latest fetched dataset for one slice of site data
// (services, testimonials, FAQ entries, content text, settings). It
// subscribes to an update channel on the signal bus and refetches when a
// signal arrives, so an admin save anywhere in the fleet shows up on the
// next page render without a restart.
package view

import (
	"context"
	"sync"
	"time"

	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
)

// MaxStaleness bounds how old a snapshot may be before a background
// refetch is scheduled on read. Covers the case where every propagation
// path was missed, e.g. the process slept through its poll ticks.
const MaxStaleness = 30 * time.Second

// FetchFunc loads the current dataset from the source of truth.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Region is a self-refreshing holder for one dataset. Safe for
// concurrent use.
type Region[T any] struct {
	name     string
	fetch    FetchFunc[T]
	fallback T
	now      func() time.Time

	mu        sync.RWMutex
	value     T
	fetchedAt time.Time

	refetching sync.Mutex
	unsubs     []func()
	log        logger.Logger
}

// Option configures a Region.
type Option[T any] func(*Region[T])

// WithFallback sets the dataset served when the initial fetch fails.
// Later fetch failures keep the last known value instead.
func WithFallback[T any](fallback T) Option[T] {
	return func(r *Region[T]) { r.fallback = fallback }
}

// WithClock overrides the staleness clock. Used in tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(r *Region[T]) { r.now = now }
}

// NewRegion builds a Region. Call Start to perform the initial fetch and
// attach it to the bus.
func NewRegion[T any](name string, fetch FetchFunc[T], opts ...Option[T]) *Region[T] {
	r := &Region[T]{
		name:  name,
		fetch: fetch,
		now:   time.Now,
		log:   logger.Get().WithComponent("view-region"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start performs the initial fetch and subscribes to the given channels
// on bus. A region watching more than one channel refetches wholesale on
// any of them. If the initial fetch fails the fallback dataset is
// installed so renders never block on a dead backend. Returns the region
// for chaining.
func (r *Region[T]) Start(ctx context.Context, bus *signalbus.Bus, channels ...string) *Region[T] {
	if err := r.refetch(ctx); err != nil {
		r.log.Warn("Initial fetch failed, serving fallback",
			logger.Region(r.name), logger.Err(err))
		r.mu.Lock()
		r.value = r.fallback
		r.fetchedAt = r.now()
		r.mu.Unlock()
	}

	for _, channel := range channels {
		r.unsubs = append(r.unsubs, bus.Subscribe(channel, func(payload signalbus.Payload) {
			if err := r.refetch(context.Background()); err != nil {
				r.log.Warn("Refetch after update signal failed, keeping last known data",
					logger.Region(r.name), logger.Err(err))
			}
		}))
	}
	return r
}

// Snapshot returns the current dataset and its fetch time. If the data
// is older than MaxStaleness a background refetch is kicked off; the
// caller still gets the stale value immediately.
func (r *Region[T]) Snapshot() (T, time.Time) {
	r.mu.RLock()
	value, fetchedAt := r.value, r.fetchedAt
	r.mu.RUnlock()

	if r.now().Sub(fetchedAt) > MaxStaleness {
		go func() {
			if err := r.refetch(context.Background()); err != nil {
				r.log.Warn("Staleness refetch failed, keeping last known data",
					logger.Region(r.name), logger.Err(err))
			}
		}()
	}
	return value, fetchedAt
}

// Close detaches the region from the bus. Safe to call more than once.
func (r *Region[T]) Close() {
	for _, unsub := range r.unsubs {
		unsub()
	}
}

// refetch loads fresh data and installs it. Only one refetch runs at a
// time; concurrent callers coalesce on the mutex rather than stacking
// identical queries.
func (r *Region[T]) refetch(ctx context.Context) error {
	r.refetching.Lock()
	defer r.refetching.Unlock()

	value, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.value = value
	r.fetchedAt = r.now()
	r.mu.Unlock()
	return nil
}
