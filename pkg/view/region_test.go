package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"truckshop-platform/pkg/signalbus"
)

func newTestBus() *signalbus.Bus {
	return signalbus.New(signalbus.NewMemoryStore(), signalbus.WithPollInterval(time.Hour))
}

func TestRegionServesFallbackWhenInitialFetchFails(t *testing.T) {
	fetch := func(ctx context.Context) ([]string, error) {
		return nil, errors.New("backend down")
	}

	r := NewRegion("services", fetch, WithFallback[[]string]([]string{"Engine Repair"}))
	r.Start(context.Background(), newTestBus(), signalbus.ChannelServices)
	defer r.Close()

	value, _ := r.Snapshot()
	if len(value) != 1 || value[0] != "Engine Repair" {
		t.Fatalf("expected fallback dataset, got %v", value)
	}
}

func TestRegionRefetchesOnUpdateSignal(t *testing.T) {
	var version atomic.Int64
	fetched := make(chan int64, 8)
	fetch := func(ctx context.Context) (int64, error) {
		v := version.Load()
		fetched <- v
		return v, nil
	}

	bus := newTestBus()
	r := NewRegion("faq", fetch).Start(context.Background(), bus, signalbus.ChannelFAQ)
	defer r.Close()

	<-fetched // initial load
	version.Store(2)
	bus.Emit(context.Background(), signalbus.ChannelFAQ, signalbus.Payload{"id": 7})

	select {
	case v := <-fetched:
		if v != 2 {
			t.Fatalf("refetch saw version %d, want 2", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no refetch after update signal")
	}

	value, _ := r.Snapshot()
	if value != 2 {
		t.Fatalf("snapshot = %d, want 2", value)
	}
}

func TestRegionRefetchesOnAnySubscribedChannel(t *testing.T) {
	fetched := make(chan struct{}, 8)
	fetch := func(ctx context.Context) (int, error) {
		fetched <- struct{}{}
		return 0, nil
	}

	bus := newTestBus()
	r := NewRegion("footer", fetch).Start(context.Background(), bus,
		signalbus.ChannelSettings, signalbus.ChannelTimezone)
	defer r.Close()
	<-fetched

	for _, channel := range []string{signalbus.ChannelSettings, signalbus.ChannelTimezone} {
		bus.Emit(context.Background(), channel, nil)
		select {
		case <-fetched:
		case <-time.After(time.Second):
			t.Fatalf("no refetch after signal on %s", channel)
		}
	}
}

func TestRegionKeepsLastKnownOnFetchFailure(t *testing.T) {
	var fail atomic.Bool
	refetched := make(chan struct{}, 8)
	fetch := func(ctx context.Context) (string, error) {
		if fail.Load() {
			refetched <- struct{}{}
			return "", errors.New("backend down")
		}
		return "good data", nil
	}

	bus := newTestBus()
	r := NewRegion("content", fetch).Start(context.Background(), bus, signalbus.ChannelContent)
	defer r.Close()

	fail.Store(true)
	bus.Emit(context.Background(), signalbus.ChannelContent, nil)

	select {
	case <-refetched:
	case <-time.After(time.Second):
		t.Fatal("no refetch attempt after update signal")
	}

	value, _ := r.Snapshot()
	if value != "good data" {
		t.Fatalf("snapshot = %q, want last known value", value)
	}
}

func TestRegionStalenessTriggersBackgroundRefetch(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	fetched := make(chan struct{}, 8)
	fetch := func(ctx context.Context) (int, error) {
		fetched <- struct{}{}
		return 1, nil
	}

	r := NewRegion("settings", fetch, WithClock[int](clock))
	r.Start(context.Background(), newTestBus(), signalbus.ChannelSettings)
	defer r.Close()
	<-fetched

	// Fresh data does not refetch.
	r.Snapshot()
	select {
	case <-fetched:
		t.Fatal("refetch fired for fresh data")
	case <-time.After(50 * time.Millisecond):
	}

	now = now.Add(MaxStaleness + time.Second)
	r.Snapshot()
	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("no background refetch for stale data")
	}
}

func TestRegionCloseStopsRefetching(t *testing.T) {
	var fetches atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		fetches.Add(1)
		return 0, nil
	}

	bus := newTestBus()
	r := NewRegion("testimonials", fetch).Start(context.Background(), bus, signalbus.ChannelTestimonials)
	r.Close()

	before := fetches.Load()
	bus.Emit(context.Background(), signalbus.ChannelTestimonials, nil)
	time.Sleep(50 * time.Millisecond)

	if fetches.Load() != before {
		t.Fatal("region refetched after Close")
	}
}
