package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/ai"
	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/handler"
)

// Function-field test doubles for every service interface the handlers
// consume. Set only the fields a test needs; calling an unset field
// panics, which is a loud signal the handler touched something the test
// did not expect.

type mockTripService struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID         func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listByUser      func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete          func(ctx context.Context, userID, tripID uuid.UUID) error
	enableSharing   func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	disableSharing  func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	getByShareToken func(ctx context.Context, token string) (domain.Trip, error)
}

func (m *mockTripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripService) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockTripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}
func (m *mockTripService) EnableSharing(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.enableSharing(ctx, userID, tripID)
}
func (m *mockTripService) DisableSharing(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.disableSharing(ctx, userID, tripID)
}
func (m *mockTripService) GetByShareToken(ctx context.Context, token string) (domain.Trip, error) {
	return m.getByShareToken(ctx, token)
}

var _ handler.TripServicer = (*mockTripService)(nil)

type mockItineraryService struct {
	generate  func(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error)
	getByTrip func(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error)
}

func (m *mockItineraryService) Generate(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error) {
	return m.generate(ctx, userID, tripID)
}
func (m *mockItineraryService) GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error) {
	return m.getByTrip(ctx, userID, tripID)
}

var _ handler.ItineraryServicer = (*mockItineraryService)(nil)

type mockPlaceService struct {
	enrich func(ctx context.Context, userID, tripID uuid.UUID, refs []domain.PlaceRef) ([]domain.PlaceDetails, error)
}

func (m *mockPlaceService) Enrich(ctx context.Context, userID, tripID uuid.UUID, refs []domain.PlaceRef) ([]domain.PlaceDetails, error) {
	return m.enrich(ctx, userID, tripID, refs)
}

var _ handler.PlaceEnricher = (*mockPlaceService)(nil)

type mockExpenseService struct {
	create          func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	delete          func(ctx context.Context, userID, tripID, expenseID uuid.UUID) error
	listWithSummary func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, domain.ExpenseSummary, error)
}

func (m *mockExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseService) Delete(ctx context.Context, userID, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, userID, tripID, expenseID)
}
func (m *mockExpenseService) ListWithSummary(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, domain.ExpenseSummary, error) {
	return m.listWithSummary(ctx, userID, tripID)
}

var _ handler.ExpenseServicer = (*mockExpenseService)(nil)

type mockAssistantService struct {
	chat func(ctx context.Context, userID, tripID uuid.UUID, history []ai.Message, emit func(token string) error) error
}

func (m *mockAssistantService) Chat(ctx context.Context, userID, tripID uuid.UUID, history []ai.Message, emit func(token string) error) error {
	return m.chat(ctx, userID, tripID, history, emit)
}

var _ handler.AssistantServicer = (*mockAssistantService)(nil)

type mockExporter struct {
	exportPDF func(ctx context.Context, userID, tripID uuid.UUID) ([]byte, string, error)
}

func (m *mockExporter) ExportPDF(ctx context.Context, userID, tripID uuid.UUID) ([]byte, string, error) {
	return m.exportPDF(ctx, userID, tripID)
}

var _ handler.Exporter = (*mockExporter)(nil)

// deps bundles the doubles so tests override only what they exercise.
type deps struct {
	trips       *mockTripService
	itineraries *mockItineraryService
	places      *mockPlaceService
	expenses    *mockExpenseService
	assistant   *mockAssistantService
	exporter    *mockExporter
}

func newDeps() *deps {
	return &deps{
		trips:       &mockTripService{},
		itineraries: &mockItineraryService{},
		places:      &mockPlaceService{},
		expenses:    &mockExpenseService{},
		assistant:   &mockAssistantService{},
		exporter:    &mockExporter{},
	}
}

// newTestRouter builds the full router around the doubles, exactly as
// main.go wires it minus the outer middleware stack.
func newTestRouter(d *deps) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(d.trips, d.itineraries, d.places, d.expenses, d.assistant, d.exporter, log).Routes()
}

// ---- fixtures --------------------------------------------------------------

var (
	testUserID = uuid.MustParse("6d4f7a8e-1f2b-4c3d-9e5f-0a1b2c3d4e5f")
	testTripID = uuid.MustParse("b1e2d3c4-5a6b-7c8d-9e0f-1a2b3c4d5e6f")
)

func floatPtr(v float64) *float64 { return &v }

func sampleTrip() domain.Trip {
	return domain.Trip{
		ID:          testTripID,
		UserID:      testUserID,
		Title:       "Goa Getaway",
		Destination: "Goa",
		StartDate:   time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC),
		Budget:      floatPtr(50000),
		TravelStyle: domain.StyleFriends,
		Pace:        domain.PaceRelaxed,
		Status:      domain.StatusPlanning,
	}
}

// authedRequest builds a request carrying the canonical test user header.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("X-User-ID", testUserID.String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
