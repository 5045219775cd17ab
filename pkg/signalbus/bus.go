// Package signalbus propagates "something changed, go refetch" hints from
// admin writes to public view subscribers. A signal travels up to three ways
// to each subscriber: synchronous same-process dispatch, the store's change
// notification, and a polling fallback that compares timestamps. Handlers
// must treat every invocation as a refetch trigger, never as a delta: rapid
// successive emissions overwrite each other and only the latest state is
// guaranteed to be observed.
package signalbus

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"truckshop-platform/pkg/logger"
)

// DefaultPollInterval bounds staleness for subscribers whose store
// notification is lost or suppressed.
const DefaultPollInterval = 750 * time.Millisecond

// Payload is the optional best-effort hint carried by a signal. A nil payload
// means "refresh in full, no hint available".
type Payload map[string]interface{}

// Handler receives signals. Invoked with nil for malformed or payload-less
// signals; implementations must refetch truth from the row store either way.
type Handler func(payload Payload)

type envelope struct {
	Payload   Payload `json:"payload,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// Bus is the update signal bus. One Bus per process; Buses in different
// processes converge through a shared Store.
type Bus struct {
	store Store
	poll  time.Duration
	now   func() time.Time
	log   logger.Logger

	mu     sync.Mutex
	subs   map[string]map[int]*subscription
	nextID int
}

// Option configures a Bus.
type Option func(*Bus)

// WithPollInterval overrides the default polling interval for all
// subscriptions created on the bus.
func WithPollInterval(d time.Duration) Option {
	return func(b *Bus) { b.poll = d }
}

// WithClock injects the time source used for signal timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Bus) { b.now = now }
}

func New(store Store, opts ...Option) *Bus {
	b := &Bus{
		store: store,
		poll:  DefaultPollInterval,
		now:   time.Now,
		log:   logger.Get().WithComponent("signalbus"),
		subs:  make(map[string]map[int]*subscription),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Emit writes the signal to the shared store and synchronously dispatches it
// to subscribers in this process. Fire-and-forget: a store write failure is
// logged, never returned, because polling subscribers in this process have
// already been served and remote ones are covered by their refresh backstop
// on the next emission.
func (b *Bus) Emit(ctx context.Context, channel string, payload Payload) {
	ts := b.now().UnixMilli()
	raw, err := json.Marshal(envelope{Payload: payload, Timestamp: ts})
	if err != nil {
		b.log.Warn("Failed to encode signal", logger.Channel(channel), logger.Err(err))
		raw = nil
	}

	if raw != nil {
		if err := b.store.Put(ctx, channel, raw); err != nil {
			b.log.Warn("Failed to store signal", logger.Channel(channel), logger.Err(err))
		}
	}

	// Same-process dispatch happens regardless of store health, so the
	// emitting process observes its own write immediately.
	for _, sub := range b.snapshot(channel) {
		sub.deliverLocal(ts, raw, payload)
	}
}

// Subscribe registers a handler on a channel across all transports and
// returns an idempotent unsubscribe function. Callers must invoke it on
// teardown: a leaked subscription leaks a polling ticker.
func (b *Bus) Subscribe(channel string, handler Handler) func() {
	pollCtx, cancel := context.WithCancel(context.Background())

	sub := &subscription{
		channel: channel,
		handler: handler,
		cancel:  cancel,
	}

	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[int]*subscription)
	}
	id := b.nextID
	b.nextID++
	b.subs[channel][id] = sub
	b.mu.Unlock()

	// Store change notification. A backend without watch support degrades to
	// polling alone.
	stopWatch, err := b.store.Watch(pollCtx, channel, sub.onStoreValue)
	if err != nil {
		b.log.Warn("Signal watch unavailable, relying on polling", logger.Channel(channel), logger.Err(err))
		stopWatch = func() {}
	}
	sub.stopWatch = stopWatch

	go b.pollLoop(pollCtx, sub)

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.close()
			b.mu.Lock()
			delete(b.subs[channel], id)
			b.mu.Unlock()
		})
	}
}

// Refresh unconditionally invokes every local subscriber on the channel with
// no payload hint. This is the coarse backstop used when a consumer comes
// back to the foreground: a full refetch independent of any timestamp.
func (b *Bus) Refresh(channel string) {
	for _, sub := range b.snapshot(channel) {
		sub.invoke(nil)
	}
}

func (b *Bus) snapshot(channel string) []*subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*subscription, 0, len(b.subs[channel]))
	for _, sub := range b.subs[channel] {
		out = append(out, sub)
	}
	return out
}

func (b *Bus) pollLoop(ctx context.Context, sub *subscription) {
	ticker := time.NewTicker(b.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			raw, err := b.store.Get(ctx, sub.channel)
			if err != nil {
				// Transient store trouble: skip the tick. The next tick or
				// the Refresh backstop converges.
				b.log.Debug("Signal poll read failed", logger.Channel(sub.channel), logger.Err(err))
				continue
			}
			if raw == nil {
				continue
			}
			sub.onStoreValue(raw)
		}
	}
}

type subscription struct {
	channel   string
	handler   Handler
	cancel    context.CancelFunc
	stopWatch func()

	mu       sync.Mutex
	lastSeen int64
	lastRaw  []byte
	closed   bool
}

// deliverLocal handles the same-process fast path: the emitter has the
// decoded payload in hand, so lastSeen advances without reparsing and the
// handler fires synchronously.
func (s *subscription) deliverLocal(ts int64, raw []byte, payload Payload) {
	s.mu.Lock()
	if s.closed || ts <= s.lastSeen {
		s.mu.Unlock()
		return
	}
	s.lastSeen = ts
	s.lastRaw = raw
	s.mu.Unlock()

	s.handler(payload)
}

// onStoreValue handles a value seen via watch or poll. Malformed values are
// swallowed into a nil-payload refresh, fired once per distinct raw value so
// a stuck bad value cannot trigger a refetch storm.
func (s *subscription) onStoreValue(raw []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Timestamp == 0 {
		if bytes.Equal(raw, s.lastRaw) {
			s.mu.Unlock()
			return
		}
		s.lastRaw = append([]byte(nil), raw...)
		s.mu.Unlock()
		s.handler(nil)
		return
	}

	if env.Timestamp <= s.lastSeen {
		s.mu.Unlock()
		return
	}
	s.lastSeen = env.Timestamp
	s.lastRaw = append([]byte(nil), raw...)
	s.mu.Unlock()

	s.handler(env.Payload)
}

func (s *subscription) invoke(payload Payload) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.handler(payload)
}

func (s *subscription) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	if s.stopWatch != nil {
		s.stopWatch()
	}
}
