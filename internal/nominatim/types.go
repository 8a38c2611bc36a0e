package nominatim

// Address holds the structured components of a search result. All fields are
// optional in the payload; absent components decode to empty strings.
type Address struct {
	Road          string `json:"road"`
	HouseNumber   string `json:"house_number"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	County        string `json:"county"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Postcode      string `json:"postcode"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
}

// Place mirrors the relevant parts of one row of the OSM search payload.
// Lat and Lon arrive as strings and are parsed by the consumer.
type Place struct {
	PlaceID     int64   `json:"place_id"`
	OsmType     string  `json:"osm_type"`
	OsmID       int64   `json:"osm_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}
