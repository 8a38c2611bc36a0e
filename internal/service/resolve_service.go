package service

import (
	"context"
	"strconv"
	"strings"

	"geocoding-cache/internal/geokey"
	"geocoding-cache/internal/models"
	"geocoding-cache/internal/nominatim"

	"github.com/rs/zerolog"
)

// ResolveService turns free-text addresses into coordinates, cache first.
type ResolveService struct {
	cache  CacheRepository
	lookup AddressLookup
	logger zerolog.Logger
}

// CacheRepository interface for dependency injection
type CacheRepository interface {
	GetEntry(ctx context.Context, key string) (*models.CacheEntry, error)
	UpsertCoordinates(ctx context.Context, key string, coords models.Coordinates) error
}

// AddressLookup interface for dependency injection
type AddressLookup interface {
	Search(ctx context.Context, query string, limit int) ([]nominatim.Place, error)
}

// NewResolveService creates a new address resolution service
func NewResolveService(cache CacheRepository, lookup AddressLookup, logger zerolog.Logger) *ResolveService {
	return &ResolveService{cache: cache, lookup: lookup, logger: logger}
}

// GeocodeAddress resolves an address to coordinates. It checks the cache
// under the exact input string (entity keys and raw text alike), and only on
// a miss queries the external service, writing the result back under up to
// three keys. nil means no coordinates are available; lookup and cache faults
// are logged here and never surfaced to the caller.
func (s *ResolveService) GeocodeAddress(ctx context.Context, address string) *models.Coordinates {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil
	}

	// Entity-shaped inputs and literal text share verbatim key semantics,
	// so one read of the untrimmed input covers both paths.
	if geokey.IsEntityKey(address) {
		s.logger.Debug().Str("key", address).Msg("resolving entity key")
	}
	if coords := s.cacheRead(ctx, address); coords != nil {
		return coords
	}

	places, err := s.lookup.Search(ctx, trimmed, 1)
	if err != nil {
		s.logger.Warn().Err(err).Str("address", trimmed).Msg("address lookup failed")
		return nil
	}
	if len(places) == 0 {
		s.logger.Info().Str("address", trimmed).Msg("no lookup result for address")
		return nil
	}

	place := places[0]
	lat, latErr := strconv.ParseFloat(place.Lat, 64)
	lon, lonErr := strconv.ParseFloat(place.Lon, 64)
	if latErr != nil || lonErr != nil {
		s.logger.Warn().
			Str("address", trimmed).
			Str("lat", place.Lat).
			Str("lon", place.Lon).
			Msg("lookup result has unparsable coordinates")
		return nil
	}

	coords := models.Coordinates{Latitude: lat, Longitude: lon}

	// Three independent best-effort writes: the caller's literal string, the
	// stable entity key, and the provider's canonical name. A failed write
	// never affects the returned coordinates or the other writes.
	s.cacheWrite(ctx, address, coords)
	if place.OsmType != "" && place.OsmID != 0 {
		s.cacheWrite(ctx, geokey.EntityKey(place.OsmType, place.OsmID), coords)
	}
	if place.DisplayName != "" && place.DisplayName != address {
		s.cacheWrite(ctx, place.DisplayName, coords)
	}

	return &coords
}

// cacheRead treats read faults as misses.
func (s *ResolveService) cacheRead(ctx context.Context, key string) *models.Coordinates {
	entry, err := s.cache.GetEntry(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil
	}
	if entry == nil {
		return nil
	}
	coords := entry.Coordinates()
	return &coords
}

func (s *ResolveService) cacheWrite(ctx context.Context, key string, coords models.Coordinates) {
	if err := s.cache.UpsertCoordinates(ctx, key, coords); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
