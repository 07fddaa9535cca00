package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/ridesplit/internal/models"
)

// fakeLookup returns fixed distances keyed by "origin|destination".
type fakeLookup struct {
	distances map[string]float64
	calls     int
}

func (f *fakeLookup) Distance(ctx context.Context, origin, destination string) (float64, error) {
	f.calls++
	km, ok := f.distances[origin+"|"+destination]
	if !ok {
		return 0, ErrNoRoute
	}
	return km, nil
}

// memoryCache is an in-process DistanceCache.
type memoryCache struct {
	entries map[string]float64
	failGet bool
}

func (m *memoryCache) Get(ctx context.Context, key string) (float64, bool, error) {
	if m.failGet {
		return 0, false, errors.New("cache down")
	}
	km, ok := m.entries[key]
	return km, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, km float64, ttl time.Duration) error {
	m.entries[key] = km
	return nil
}

func TestLegDistances(t *testing.T) {
	lookup := &fakeLookup{distances: map[string]float64{
		"1 Main St|Office":  4.2,
		"Office|9 Park Ave": 7.5,
	}}
	ctx := context.Background()

	t.Run("uses address, falling back to name", func(t *testing.T) {
		stops := []models.Stop{
			{Name: "Home", Address: "1 Main St"},
			{Name: "Office"},
			{Name: "Gym", Address: "9 Park Ave"},
		}
		got, err := LegDistances(ctx, lookup, stops)
		if err != nil {
			t.Fatalf("LegDistances failed: %v", err)
		}
		if len(got) != 2 || got[0] != 4.2 || got[1] != 7.5 {
			t.Errorf("distances = %v, want [4.2 7.5]", got)
		}
	})

	t.Run("fewer than two stops", func(t *testing.T) {
		got, err := LegDistances(ctx, lookup, []models.Stop{{Name: "Home"}})
		if err != nil || len(got) != 0 {
			t.Errorf("got %v, %v, want empty and nil", got, err)
		}
	})

	t.Run("lookup failure names the leg", func(t *testing.T) {
		_, err := LegDistances(ctx, lookup, []models.Stop{{Name: "Nowhere"}, {Name: "Office"}})
		if !errors.Is(err, ErrNoRoute) {
			t.Fatalf("error = %v, want ErrNoRoute", err)
		}
		if !strings.Contains(err.Error(), "leg 1") {
			t.Errorf("error %q should name the leg", err)
		}
	})

	t.Run("unnamed stop", func(t *testing.T) {
		if _, err := LegDistances(ctx, lookup, []models.Stop{{}, {Name: "Office"}}); err == nil {
			t.Error("expected error for a stop without address or name")
		}
	})
}

func TestCachedLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		inner := &fakeLookup{distances: map[string]float64{"A|B": 3}}
		cache := &memoryCache{entries: map[string]float64{}}
		lookup := NewCachedLookup(inner, cache, time.Hour)

		for i := 0; i < 2; i++ {
			km, err := lookup.Distance(ctx, "A", "B")
			if err != nil || km != 3 {
				t.Fatalf("Distance() = %v, %v, want 3, nil", km, err)
			}
		}
		if inner.calls != 1 {
			t.Errorf("inner lookup called %d times, want 1", inner.calls)
		}
	})

	t.Run("keys ignore case and spacing", func(t *testing.T) {
		inner := &fakeLookup{distances: map[string]float64{"Main  St|Office": 2}}
		cache := &memoryCache{entries: map[string]float64{}}
		lookup := NewCachedLookup(inner, cache, time.Hour)

		if _, err := lookup.Distance(ctx, "Main  St", "Office"); err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if _, ok := cache.entries["7:main st|office"]; !ok {
			t.Errorf("cache keys = %v, want 7:main st|office", cache.entries)
		}
	})

	t.Run("separator inside an address does not collide", func(t *testing.T) {
		// Both pairs reach the fake under the same joined key.
		inner := &fakeLookup{distances: map[string]float64{"a|b|c": 1}}
		cache := &memoryCache{entries: map[string]float64{}}
		lookup := NewCachedLookup(inner, cache, time.Hour)

		if _, err := lookup.Distance(ctx, "a|b", "c"); err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if _, err := lookup.Distance(ctx, "a", "b|c"); err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if inner.calls != 2 {
			t.Errorf("inner lookup called %d times, want 2 (distinct keys)", inner.calls)
		}
		if len(cache.entries) != 2 {
			t.Errorf("cache keys = %v, want 2 entries", cache.entries)
		}
	})

	t.Run("cache errors fall through", func(t *testing.T) {
		inner := &fakeLookup{distances: map[string]float64{"A|B": 3}}
		cache := &memoryCache{entries: map[string]float64{}, failGet: true}
		lookup := NewCachedLookup(inner, cache, time.Hour)

		km, err := lookup.Distance(ctx, "A", "B")
		if err != nil || km != 3 {
			t.Errorf("Distance() = %v, %v, want 3, nil", km, err)
		}
	})

	t.Run("lookup errors are not cached", func(t *testing.T) {
		inner := &fakeLookup{distances: map[string]float64{}}
		cache := &memoryCache{entries: map[string]float64{}}
		lookup := NewCachedLookup(inner, cache, time.Hour)

		if _, err := lookup.Distance(ctx, "A", "B"); !errors.Is(err, ErrNoRoute) {
			t.Errorf("error = %v, want ErrNoRoute", err)
		}
		if len(cache.entries) != 0 {
			t.Errorf("cache = %v, want empty", cache.entries)
		}
	})
}

func newMapsServer(t *testing.T, body func(path string) string) *GoogleMaps {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body(r.URL.Path))
	}))
	t.Cleanup(server.Close)

	g, err := NewGoogleMaps("AIzaTestKey", WithBaseURL(server.URL), WithLanguage("pt-BR"), WithRegion("BR"))
	if err != nil {
		t.Fatalf("NewGoogleMaps failed: %v", err)
	}
	return g
}

func TestGoogleMaps_Distance(t *testing.T) {
	g := newMapsServer(t, func(path string) string {
		return `{
			"status": "OK",
			"origin_addresses": ["Av. Paulista, São Paulo"],
			"destination_addresses": ["Rua Augusta, São Paulo"],
			"rows": [{"elements": [{
				"status": "OK",
				"distance": {"text": "12.3 km", "value": 12345},
				"duration": {"text": "20 mins", "value": 1200}
			}]}]
		}`
	})

	km, err := g.Distance(context.Background(), "Av. Paulista", "Rua Augusta")
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if math.Abs(km-12.345) > 1e-9 {
		t.Errorf("Distance() = %v, want 12.345", km)
	}
}

func TestGoogleMaps_DistanceNotFound(t *testing.T) {
	g := newMapsServer(t, func(path string) string {
		return `{"status": "OK", "rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]}`
	})

	if _, err := g.Distance(context.Background(), "Here", "Atlantis"); !errors.Is(err, ErrNoRoute) {
		t.Errorf("error = %v, want ErrNoRoute", err)
	}
}

func TestGoogleMaps_Geocode(t *testing.T) {
	g := newMapsServer(t, func(path string) string {
		return `{
			"status": "OK",
			"results": [{
				"formatted_address": "Av. Paulista, São Paulo - SP, Brasil",
				"geometry": {"location": {"lat": -23.5614, "lng": -46.6559}}
			}]
		}`
	})

	loc, err := g.Geocode(context.Background(), "Av. Paulista")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if math.Abs(loc.Lat+23.5614) > 1e-9 || math.Abs(loc.Lng+46.6559) > 1e-9 {
		t.Errorf("Geocode() = %+v, want -23.5614, -46.6559", loc)
	}
}

func TestGoogleMaps_GeocodeNoResults(t *testing.T) {
	g := newMapsServer(t, func(path string) string {
		return `{"status": "ZERO_RESULTS", "results": []}`
	})

	if _, err := g.Geocode(context.Background(), "nowhere at all"); err == nil {
		t.Error("expected an error for zero results")
	}
}
