package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/middleware"
)

// tripRequest is the JSON body for trip create and update. Dates travel
// as YYYY-MM-DD strings.
type tripRequest struct {
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      *float64 `json:"budget"`
	TravelStyle string   `json:"travel_style"`
	Pace        string   `json:"pace"`
	Status      string   `json:"status"`
	CoverImage  *string  `json:"cover_image"`
}

// listTripsResponse wraps the paginated trip dashboard payload.
type listTripsResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	trip, err := decodeTripRequest(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	trip.UserID = userID

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.ListByUser(r.Context(), userID, params)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, listTripsResponse{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	trip, err := decodeTripRequest(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	trip.ID = tripID
	trip.UserID = userID

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}. The itinerary and expense
// rows cascade away with the trip.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// decodeTripRequest parses and converts a tripRequest body into a
// domain.Trip. Enum and business-rule validation is the service's job;
// this only rejects bodies that cannot be converted at all.
func decodeTripRequest(r *http.Request) (domain.Trip, error) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return domain.Trip{}, errors.New("request body must be valid JSON")
	}

	start, err := parseDate(body.StartDate, "start_date")
	if err != nil {
		return domain.Trip{}, err
	}
	end, err := parseDate(body.EndDate, "end_date")
	if err != nil {
		return domain.Trip{}, err
	}

	return domain.Trip{
		Title:       body.Title,
		Destination: body.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      body.Budget,
		TravelStyle: domain.TravelStyle(body.TravelStyle),
		Pace:        domain.Pace(body.Pace),
		Status:      domain.TripStatus(body.Status),
		CoverImage:  body.CoverImage,
	}, nil
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

// authedUser pulls the authenticated user from context. The auth
// middleware guarantees it on these routes; the guard is for handlers
// mounted without it by mistake.
func authedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing authentication")
		return uuid.Nil, false
	}
	return userID, true
}

// authedTrip resolves the authenticated user plus the {tripID} path
// parameter.
func authedTrip(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := authedUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		requestError(w, "trip id must be a valid UUID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, true
}

// queryInt parses an optional positive integer query parameter; nil when
// absent or unparseable (the pagination defaults take over).
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		return nil
	}
	return &v
}
