// Package handler implements the HTTP handlers for the Safarnama API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (trip.go, itinerary.go, etc.) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/ai"
	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/middleware"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service
// layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
	EnableSharing(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	DisableSharing(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	GetByShareToken(ctx context.Context, token string) (domain.Trip, error)
}

// ItineraryServicer defines the itinerary operations the handlers use.
type ItineraryServicer interface {
	Generate(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error)
	GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error)
}

// PlaceEnricher resolves itinerary places to map coordinates.
type PlaceEnricher interface {
	Enrich(ctx context.Context, userID, tripID uuid.UUID, refs []domain.PlaceRef) ([]domain.PlaceDetails, error)
}

// ExpenseServicer defines the expense-ledger operations the handlers use.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, userID, tripID, expenseID uuid.UUID) error
	ListWithSummary(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, domain.ExpenseSummary, error)
}

// AssistantServicer streams chat-assistant tokens via the emit callback.
type AssistantServicer interface {
	Chat(ctx context.Context, userID, tripID uuid.UUID, history []ai.Message, emit func(token string) error) error
}

// Exporter renders a trip's itinerary to a downloadable PDF.
type Exporter interface {
	ExportPDF(ctx context.Context, userID, tripID uuid.UUID) ([]byte, string, error)
}

// Server holds all handler dependencies. Wire it in main.go via Routes.
type Server struct {
	trips       TripServicer
	itineraries ItineraryServicer
	places      PlaceEnricher
	expenses    ExpenseServicer
	assistant   AssistantServicer
	exporter    Exporter
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	itineraries ItineraryServicer,
	places PlaceEnricher,
	expenses ExpenseServicer,
	assistant AssistantServicer,
	exporter Exporter,
	log *slog.Logger,
) *Server {
	return &Server{
		trips:       trips,
		itineraries: itineraries,
		places:      places,
		expenses:    expenses,
		assistant:   assistant,
		exporter:    exporter,
		log:         log,
	}
}

// Routes mounts every endpoint on a chi router. The health check and the
// anonymous share view sit outside the auth middleware; everything else
// requires X-User-ID.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/share/{token}", s.GetSharedTrip)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewUserAuth())

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Post("/share", s.EnableSharing)
				r.Delete("/share", s.DisableSharing)

				r.Post("/itinerary", s.GenerateItinerary)
				r.Get("/itinerary", s.GetItinerary)
				r.Get("/itinerary/export", s.ExportItinerary)

				r.Post("/places", s.EnrichPlaces)

				r.Post("/expenses", s.CreateExpense)
				r.Get("/expenses", s.ListExpenses)
				r.Delete("/expenses/{expenseID}", s.DeleteExpense)

				r.Post("/assistant", s.AssistantChat)
			})
		})
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
