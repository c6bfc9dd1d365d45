package domain

// PlaceRef identifies one itinerary place to enrich: its name and
// description straight from the generated document plus the day it
// belongs to.
type PlaceRef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DayNumber   int    `json:"dayNumber"`
}

// PlaceDetails is a PlaceRef augmented with resolved geography. It is
// derived data — recomputed per view session, never persisted.
//
// Lat == 0 && Lng == 0 is the designated "could not be resolved"
// sentinel: such entries are kept in the batch result (same length, same
// order as the input) but excluded from map plotting.
type PlaceDetails struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DayNumber   int     `json:"dayNumber"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	PhotoURL    *string `json:"photoUrl"`
	PlaceID     *string `json:"placeId"`
}

// Resolved reports whether the lookup found coordinates for this place.
func (p PlaceDetails) Resolved() bool {
	return p.Lat != 0 || p.Lng != 0
}

// Unresolved returns the sentinel PlaceDetails for a place whose lookup
// failed or matched nothing.
func Unresolved(ref PlaceRef) PlaceDetails {
	return PlaceDetails{
		Name:        ref.Name,
		Description: ref.Description,
		DayNumber:   ref.DayNumber,
	}
}
