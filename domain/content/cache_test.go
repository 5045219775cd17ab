package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"truckshop-platform/pkg/signalbus"
)

func TestCache_MergeOverDefaults(t *testing.T) {
	fetch := func(context.Context) (map[string]string, error) {
		return map[string]string{
			"home.hero_title": "24/7 Diesel Repair",
			"custom.banner":   "Winter special",
		}, nil
	}

	cache := NewCache(fetch)
	got := cache.Get(context.Background())

	if got["home.hero_title"] != "24/7 Diesel Repair" {
		t.Errorf("Database value should win, got %q", got["home.hero_title"])
	}
	if got["custom.banner"] != "Winter special" {
		t.Errorf("Database-only key should pass through, got %q", got["custom.banner"])
	}

	// Every key absent from the database resolves to exactly its default.
	for key, def := range Defaults() {
		if key == "home.hero_title" {
			continue
		}
		if got[key] != def {
			t.Errorf("Key %s: expected default %q, got %q", key, def, got[key])
		}
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	fetches := 0
	fetch := func(context.Context) (map[string]string, error) {
		fetches++
		return map[string]string{}, nil
	}

	now := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)
	cache := NewCache(fetch,
		WithTTL(60*time.Second),
		WithClock(func() time.Time { return now }),
	)

	cache.Get(context.Background())
	if fetches != 1 {
		t.Fatalf("Expected 1 fetch after first Get, got %d", fetches)
	}

	// Just inside the TTL: served from cache.
	now = now.Add(59 * time.Second)
	cache.Get(context.Background())
	if fetches != 1 {
		t.Errorf("Get inside TTL should not refetch, got %d fetches", fetches)
	}

	// Just past the TTL: refetched.
	now = now.Add(2 * time.Second)
	cache.Get(context.Background())
	if fetches != 2 {
		t.Errorf("Get past TTL should refetch, got %d fetches", fetches)
	}
}

func TestCache_InvalidateForcesRefetch(t *testing.T) {
	fetches := 0
	fetch := func(context.Context) (map[string]string, error) {
		fetches++
		return map[string]string{}, nil
	}

	cache := NewCache(fetch)

	cache.Get(context.Background())
	cache.Invalidate()
	cache.Get(context.Background())

	if fetches != 2 {
		t.Errorf("Expected refetch after Invalidate, got %d fetches", fetches)
	}
}

func TestCache_FetchFailureFallsBack(t *testing.T) {
	calls := 0
	fetch := func(context.Context) (map[string]string, error) {
		calls++
		if calls == 1 {
			return map[string]string{"home.hero_title": "From DB"}, nil
		}
		return nil, errors.New("connection refused")
	}

	cache := NewCache(fetch)

	cache.Get(context.Background())
	cache.Invalidate()

	got := cache.Get(context.Background())
	if got["home.hero_title"] != "From DB" {
		t.Errorf("Failed refresh should serve last-known map, got %q", got["home.hero_title"])
	}

	// A cache that never fetched successfully serves pure defaults.
	cold := NewCache(func(context.Context) (map[string]string, error) {
		return nil, errors.New("connection refused")
	})
	got = cold.Get(context.Background())
	if got["home.hero_title"] != defaultTable["home.hero_title"] {
		t.Errorf("Cold cache under failure should serve defaults, got %q", got["home.hero_title"])
	}
}

func TestCache_BindInvalidatesOnSignal(t *testing.T) {
	fetches := 0
	fetch := func(context.Context) (map[string]string, error) {
		fetches++
		return map[string]string{}, nil
	}

	cache := NewCache(fetch)
	bus := signalbus.New(signalbus.NewMemoryStore(), signalbus.WithPollInterval(time.Hour))

	unbind := cache.Bind(bus)
	defer unbind()

	cache.Get(context.Background())
	bus.Emit(context.Background(), signalbus.ChannelContent, nil)
	cache.Get(context.Background())

	if fetches != 2 {
		t.Errorf("contentUpdated signal should invalidate the cache, got %d fetches", fetches)
	}
}
