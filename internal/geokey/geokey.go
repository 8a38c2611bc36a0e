// Package geokey derives stable cache keys from OSM entity references.
// Address-text keys are the caller's string used verbatim; only entity keys
// need a derivation.
package geokey

import (
	"fmt"
	"strings"
)

const entityKeyPrefix = "osm:"

// EntityKey formats a stable cache key from an OSM entity reference,
// e.g. EntityKey("way", 12345) == "osm:way:12345".
func EntityKey(osmType string, osmID int64) string {
	return fmt.Sprintf("%s%s:%d", entityKeyPrefix, osmType, osmID)
}

// IsEntityKey reports whether s is shaped like an entity key rather than a
// free-text address.
func IsEntityKey(s string) bool {
	return strings.HasPrefix(s, entityKeyPrefix)
}
