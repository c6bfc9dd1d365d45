package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// enrichPlacesRequest carries the itinerary places the client wants
// resolved to coordinates. Field names follow the itinerary document.
type enrichPlacesRequest struct {
	Places []domain.PlaceRef `json:"places"`
}

type enrichPlacesResponse struct {
	Places []domain.PlaceDetails `json:"places"`
}

// EnrichPlaces handles POST /trips/{tripID}/places. The response always
// has the same length and order as the request; unresolved places come
// back with the (0,0) sentinel rather than being dropped.
func (s *Server) EnrichPlaces(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	var body enrichPlacesRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}

	details, err := s.places.Enrich(r.Context(), userID, tripID, body.Places)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, enrichPlacesResponse{Places: details})
}
