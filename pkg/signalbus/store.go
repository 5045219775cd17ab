package signalbus

import (
	"context"
	"sync"
)

// Store is the durable shared key-value side-channel signals travel through.
// Put overwrites the current value for a channel and, where the backend
// supports it, notifies watchers in other processes. Get returns (nil, nil)
// for a channel that has never been written.
type Store interface {
	Put(ctx context.Context, channel string, value []byte) error
	Get(ctx context.Context, channel string) ([]byte, error)
	// Watch registers a change notification callback for one channel and
	// returns a stop function. Backends without change notification return a
	// no-op stop; subscribers then converge through polling alone.
	Watch(ctx context.Context, channel string, notify func(value []byte)) (stop func(), err error)
}

// MemoryStore is a process-local Store. It backs single-process deployments
// and tests. Change notifications can be suppressed to exercise the polling
// path the way a throttled runtime would.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers map[string]map[int]func([]byte)
	nextID   int

	// DisableNotify suppresses watch callbacks on Put. Polling still sees
	// the written value.
	DisableNotify bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string][]byte),
		watchers: make(map[string]map[int]func([]byte)),
	}
}

func (s *MemoryStore) Put(_ context.Context, channel string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	s.values[channel] = v
	var notify []func([]byte)
	if !s.DisableNotify {
		for _, fn := range s.watchers[channel] {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		go fn(v)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, channel string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[channel]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Watch(_ context.Context, channel string, notify func(value []byte)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watchers[channel] == nil {
		s.watchers[channel] = make(map[int]func([]byte))
	}
	id := s.nextID
	s.nextID++
	s.watchers[channel][id] = notify

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers[channel], id)
	}, nil
}
