package models

import "time"

// Coordinates is a resolved geographic position returned to callers.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CacheEntry is one persisted row of the geocoding cache. The key is either a
// raw address string, an osm:<type>:<id> identifier, or a provider display
// name; rows under different keys may describe the same physical location.
type CacheEntry struct {
	Key       string    `json:"key"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Coordinates extracts the coordinate pair from a cache entry.
func (e *CacheEntry) Coordinates() Coordinates {
	return Coordinates{Latitude: e.Latitude, Longitude: e.Longitude}
}
