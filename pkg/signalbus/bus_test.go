package signalbus

import (
	"context"
	"testing"
	"time"
)

func TestBus_SameProcessImmediacy(t *testing.T) {
	store := NewMemoryStore()
	store.DisableNotify = true

	// Polling effectively disabled: delivery must happen synchronously.
	bus := New(store, WithPollInterval(time.Hour))

	fired := make(chan Payload, 1)
	unsub := bus.Subscribe(ChannelServices, func(p Payload) {
		fired <- p
	})
	defer unsub()

	bus.Emit(context.Background(), ChannelServices, Payload{"id": "brake-repair"})

	select {
	case p := <-fired:
		if p["id"] != "brake-repair" {
			t.Errorf("Expected payload id brake-repair, got %v", p["id"])
		}
	default:
		t.Fatal("Handler did not fire synchronously on same-process emit")
	}
}

func TestBus_CrossInstanceConvergence_PollingOnly(t *testing.T) {
	store := NewMemoryStore()
	store.DisableNotify = true // simulate suppressed change notifications

	emitter := New(store, WithPollInterval(time.Hour))
	receiver := New(store, WithPollInterval(50*time.Millisecond))

	fired := make(chan Payload, 1)
	unsub := receiver.Subscribe(ChannelFAQ, func(p Payload) {
		fired <- p
	})
	defer unsub()

	emitter.Emit(context.Background(), ChannelFAQ, Payload{"reason": "edited"})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Receiver did not converge via polling")
	}
}

func TestBus_CrossInstanceWatchNotification(t *testing.T) {
	store := NewMemoryStore()

	emitter := New(store, WithPollInterval(time.Hour))
	receiver := New(store, WithPollInterval(time.Hour))

	fired := make(chan Payload, 1)
	unsub := receiver.Subscribe(ChannelContent, func(p Payload) {
		fired <- p
	})
	defer unsub()

	emitter.Emit(context.Background(), ChannelContent, nil)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Receiver did not get the store change notification")
	}
}

func TestBus_EmitterDeliversExactlyOnce(t *testing.T) {
	store := NewMemoryStore()

	// Notifications on, polling fast: all transports active at once. The
	// timestamp dedupe must collapse them to a single handler invocation.
	bus := New(store, WithPollInterval(50*time.Millisecond))

	fired := make(chan struct{}, 10)
	unsub := bus.Subscribe(ChannelSettings, func(Payload) {
		fired <- struct{}{}
	})
	defer unsub()

	bus.Emit(context.Background(), ChannelSettings, Payload{"key": "timezone"})

	count := 0
	deadline := time.After(300 * time.Millisecond)
	for {
		select {
		case <-fired:
			count++
		case <-deadline:
			if count != 1 {
				t.Errorf("Expected exactly 1 delivery, got %d", count)
			}
			return
		}
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	store := NewMemoryStore()
	bus := New(store, WithPollInterval(30*time.Millisecond))

	fired := make(chan struct{}, 10)
	unsub := bus.Subscribe(ChannelTestimonials, func(Payload) {
		fired <- struct{}{}
	})

	unsub()
	unsub() // idempotent

	bus.Emit(context.Background(), ChannelTestimonials, nil)

	select {
	case <-fired:
		t.Error("Handler fired after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestBus_MalformedValueFiresSingleRefresh(t *testing.T) {
	store := NewMemoryStore()
	store.DisableNotify = true

	bus := New(store, WithPollInterval(30*time.Millisecond))

	fired := make(chan Payload, 10)
	unsub := bus.Subscribe(ChannelServices, func(p Payload) {
		fired <- p
	})
	defer unsub()

	// Write garbage under the channel key, bypassing Emit.
	if err := store.Put(context.Background(), ChannelServices, []byte("{not json")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	select {
	case p := <-fired:
		if p != nil {
			t.Errorf("Malformed signal should deliver nil payload, got %v", p)
		}
	case <-time.After(time.Second):
		t.Fatal("Malformed signal did not trigger a refresh")
	}

	// The same stuck value must not refire on subsequent poll ticks.
	select {
	case <-fired:
		t.Error("Malformed signal refired for an unchanged value")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestBus_RefreshInvokesUnconditionally(t *testing.T) {
	store := NewMemoryStore()
	bus := New(store, WithPollInterval(time.Hour))

	fired := make(chan Payload, 2)
	unsub := bus.Subscribe(ChannelTimezone, func(p Payload) {
		fired <- p
	})
	defer unsub()

	bus.Refresh(ChannelTimezone)
	bus.Refresh(ChannelTimezone)

	for i := 0; i < 2; i++ {
		select {
		case p := <-fired:
			if p != nil {
				t.Errorf("Refresh should carry no payload hint, got %v", p)
			}
		case <-time.After(time.Second):
			t.Fatalf("Refresh %d did not invoke the handler", i+1)
		}
	}
}

func TestBus_StaleTimestampIgnored(t *testing.T) {
	store := NewMemoryStore()
	store.DisableNotify = true

	current := time.Now()
	bus := New(store,
		WithPollInterval(30*time.Millisecond),
		WithClock(func() time.Time { return current }),
	)

	fired := make(chan struct{}, 10)
	unsub := bus.Subscribe(ChannelFAQ, func(Payload) {
		fired <- struct{}{}
	})
	defer unsub()

	bus.Emit(context.Background(), ChannelFAQ, nil)
	<-fired

	// Re-emitting with an identical timestamp re-stores the same envelope;
	// poll ticks must not replay it.
	bus.Emit(context.Background(), ChannelFAQ, nil)

	select {
	case <-fired:
		t.Error("Subscriber replayed a signal with a non-advancing timestamp")
	case <-time.After(150 * time.Millisecond):
	}
}
