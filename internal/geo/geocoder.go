// Package geo resolves addresses to coordinates via Nominatim and computes
// great-circle distances.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// userAgent identifies Wayfinder to the Nominatim service, which rejects
// anonymous clients.
const userAgent = "wayfinder-geocoder"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// ErrNotFound is returned when Nominatim has no match for an address.
type ErrNotFound struct {
	Address string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("geo: address not found: %s", e.Address)
}

// NominatimOpts configures a Nominatim client.
type NominatimOpts struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Nominatim is a Geocoder backed by the Nominatim search API with an
// in-memory TTL cache keyed by lowercased address.
type Nominatim struct {
	baseURL  string
	client   *http.Client
	cacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	coords  Coordinates
	expires time.Time
}

// NewNominatim builds a Nominatim geocoder.
func NewNominatim(opts NominatimOpts) *Nominatim {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	return &Nominatim{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		client:   &http.Client{Timeout: opts.Timeout},
		cacheTTL: opts.CacheTTL,
		cache:    make(map[string]cacheEntry),
	}
}

// Geocode resolves an address, serving repeats from the cache until the
// entry's TTL passes.
func (n *Nominatim) Geocode(ctx context.Context, address string) (Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(address))
	n.mu.Lock()
	if entry, ok := n.cache[key]; ok && time.Now().Before(entry.expires) {
		n.mu.Unlock()
		return entry.coords, nil
	}
	n.mu.Unlock()

	coords, err := n.lookup(ctx, address)
	if err != nil {
		return Coordinates{}, err
	}

	n.mu.Lock()
	n.cache[key] = cacheEntry{coords: coords, expires: time.Now().Add(n.cacheTTL)}
	n.mu.Unlock()
	return coords, nil
}

func (n *Nominatim) lookup(ctx context.Context, address string) (Coordinates, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: contact nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{"status": resp.StatusCode, "address": address}).
			Error("nominatim returned non-200")
		return Coordinates{}, fmt.Errorf("geo: nominatim status %d", resp.StatusCode)
	}

	// Nominatim returns lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, fmt.Errorf("geo: decode response: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, &ErrNotFound{Address: address}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: parse lon %q: %w", results[0].Lon, err)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// PruneCache drops expired cache entries and returns how many were removed.
// Called periodically by the server janitor.
func (n *Nominatim) PruneCache() int {
	now := time.Now()
	n.mu.Lock()
	defer n.mu.Unlock()
	removed := 0
	for key, entry := range n.cache {
		if now.After(entry.expires) {
			delete(n.cache, key)
			removed++
		}
	}
	return removed
}

// Mock is a Geocoder returning fixed coordinates, used in debug mode to
// avoid hammering the public Nominatim instance.
type Mock struct {
	Source      Coordinates
	Destination Coordinates

	calls int
	mu    sync.Mutex
}

// DebugMock returns the mock pair used when server.debug is set: New Delhi
// and Berlin.
func DebugMock() *Mock {
	return &Mock{
		Source:      Coordinates{Lat: 28.6139, Lon: 77.2090},
		Destination: Coordinates{Lat: 52.542, Lon: 13.366},
	}
}

// Geocode alternates between the source and destination coordinates.
func (m *Mock) Geocode(ctx context.Context, address string) (Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls%2 == 1 {
		return m.Source, nil
	}
	return m.Destination, nil
}
