package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"geocoding-cache/internal/models"
	"geocoding-cache/internal/nominatim"

	"github.com/rs/zerolog"
)

const (
	// Queries shorter than this never reach the external service, so early
	// keystrokes in autocomplete fields do not flood it.
	minQueryLength = 3

	defaultSuggestionLimit = 5
)

// SuggestionService provides address autocomplete candidates for form fields.
type SuggestionService struct {
	lookup AddressLookup
	logger zerolog.Logger
}

// NewSuggestionService creates a new address suggestion service
func NewSuggestionService(lookup AddressLookup, logger zerolog.Logger) *SuggestionService {
	return &SuggestionService{lookup: lookup, logger: logger}
}

// FetchAddressSuggestions returns autocomplete candidates for a partial
// address. Candidates without parsable coordinates are dropped. Lookup faults
// degrade to an empty list.
func (s *SuggestionService) FetchAddressSuggestions(ctx context.Context, query string, limit int) []models.AddressSuggestion {
	if utf8.RuneCountInString(query) < minQueryLength {
		return []models.AddressSuggestion{}
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	places, err := s.lookup.Search(ctx, query, limit)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("suggestion lookup failed")
		return []models.AddressSuggestion{}
	}

	suggestions := make([]models.AddressSuggestion, 0, len(places))
	for _, place := range places {
		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lon, lonErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		suggestions = append(suggestions, models.AddressSuggestion{
			PlaceID:     place.PlaceID,
			OsmType:     place.OsmType,
			OsmID:       place.OsmID,
			DisplayName: place.DisplayName,
			Label:       FormatFullAddress(place.Address),
			Latitude:    lat,
			Longitude:   lon,
		})
	}

	return suggestions
}

// FormatFullAddress joins the available address components in a fixed
// priority order, comma-separated, skipping absent ones.
func FormatFullAddress(addr nominatim.Address) string {
	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}

	var parts []string
	for _, part := range []string{
		addr.Road,
		addr.HouseNumber,
		addr.Neighbourhood,
		addr.Suburb,
		city,
		addr.County,
		addr.State,
		addr.Postcode,
		addr.Country,
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
