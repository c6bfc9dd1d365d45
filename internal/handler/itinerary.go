package handler

import (
	"net/http"
)

// GenerateItinerary handles POST /trips/{tripID}/itinerary. A success
// replaces any previous itinerary for the trip; nothing is persisted on
// failure.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	itinerary, err := s.itineraries.Generate(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, itinerary)
}

// GetItinerary handles GET /trips/{tripID}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	itinerary, err := s.itineraries.GetByTrip(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "itinerary not found")
		return
	}
	writeJSON(w, http.StatusOK, itinerary)
}
