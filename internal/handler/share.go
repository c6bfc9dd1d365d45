package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// shareResponse is returned to the owner when sharing is toggled. The
// token appears here and nowhere else — trip payloads and logs never
// carry it.
type shareResponse struct {
	IsShared   bool   `json:"is_shared"`
	ShareToken string `json:"share_token,omitempty"`
}

// sharedTripResponse is the anonymous read-only view behind a share
// link: the trip snapshot plus its itinerary, if one exists.
type sharedTripResponse struct {
	Trip      domain.Trip       `json:"trip"`
	Itinerary *domain.Itinerary `json:"itinerary,omitempty"`
}

// EnableSharing handles POST /trips/{tripID}/share. Each call mints a
// fresh token, so re-enabling invalidates previously circulated links.
func (s *Server) EnableSharing(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.EnableSharing(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}

	resp := shareResponse{IsShared: trip.IsShared}
	if trip.ShareToken != nil {
		resp.ShareToken = *trip.ShareToken
	}
	writeJSON(w, http.StatusOK, resp)
}

// DisableSharing handles DELETE /trips/{tripID}/share.
func (s *Server) DisableSharing(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.DisableSharing(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{IsShared: trip.IsShared})
}

// GetSharedTrip handles GET /share/{token} — the only anonymous data
// route. A wrong token, an unshared trip, and a missing trip are all the
// same 404; the response never reveals which case occurred.
func (s *Server) GetSharedTrip(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	trip, err := s.trips.GetByShareToken(r.Context(), token)
	if err != nil {
		s.respondServiceError(w, r, err, "not found")
		return
	}

	resp := sharedTripResponse{Trip: trip}
	itinerary, err := s.itineraries.GetByTrip(r.Context(), trip.UserID, trip.ID)
	switch {
	case err == nil:
		resp.Itinerary = &itinerary
	case errors.Is(err, domain.ErrNotFound):
		// Shared trip without a generated itinerary: valid, trip only.
	default:
		s.respondServiceError(w, r, err, "not found")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
