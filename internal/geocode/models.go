// Package geocode resolves free-text place names to geographic coordinates.
package geocode

import (
	"errors"
	"strings"
)

// ErrLocationNotFound is returned when the geocoding provider has no
// candidate for the search term.
var ErrLocationNotFound = errors.New("location not found")

// Candidate is one geocoding result as ranked by the provider.
type Candidate struct {
	// Name is the primary place name (usually a city).
	Name string

	// Admin1 is the first-level administrative region (state/province).
	Admin1 string

	// Country is the country name.
	Country string

	Lat float64
	Lon float64
}

// Location is a resolved, disambiguated place.
type Location struct {
	// Name is the canonical place name chosen by the best-match policy.
	Name string

	Lat float64
	Lon float64
}

// SearchTerm normalizes user-entered location text into a provider query.
// Internal whitespace is collapsed and, when the text is a comma-separated
// hierarchy ("City, Region, Country"), only the first segment is kept —
// the provider matches better on a bare place name.
func SearchTerm(input string) string {
	clean := strings.Join(strings.Fields(input), " ")
	if city, _, found := strings.Cut(clean, ","); found {
		return strings.TrimSpace(city)
	}
	return clean
}
