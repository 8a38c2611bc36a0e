package models

// AddressSuggestion is a single autocomplete candidate, normalized from the
// lookup provider's payload and already guaranteed to carry numeric coordinates.
type AddressSuggestion struct {
	PlaceID     int64   `json:"place_id"`
	OsmType     string  `json:"osm_type"`
	OsmID       int64   `json:"osm_id"`
	DisplayName string  `json:"display_name"`
	Label       string  `json:"label"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
