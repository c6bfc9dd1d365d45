package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.
type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID         func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listByUser      func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete          func(ctx context.Context, userID, tripID uuid.UUID) error
	updateSharing   func(ctx context.Context, userID, tripID uuid.UUID, isShared bool, token *string) (domain.Trip, error)
	getByShareToken func(ctx context.Context, token string) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}
func (m *mockTripRepo) UpdateSharing(ctx context.Context, userID, tripID uuid.UUID, isShared bool, token *string) (domain.Trip, error) {
	return m.updateSharing(ctx, userID, tripID, isShared, token)
}
func (m *mockTripRepo) GetByShareToken(ctx context.Context, token string) (domain.Trip, error) {
	return m.getByShareToken(ctx, token)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
type mockItineraryRepo struct {
	replace     func(ctx context.Context, tripID uuid.UUID, content domain.ItineraryContent) (domain.Itinerary, error)
	getByTripID func(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

func (m *mockItineraryRepo) Replace(ctx context.Context, tripID uuid.UUID, content domain.ItineraryContent) (domain.Itinerary, error) {
	return m.replace(ctx, tripID, content)
}
func (m *mockItineraryRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	return m.getByTripID(ctx, tripID)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// mockExpenseRepo is a hand-written test double for repo.ExpenseRepo.
type mockExpenseRepo struct {
	create       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

// ---- fixtures --------------------------------------------------------------

var (
	testUserID = uuid.MustParse("6d4f7a8e-1f2b-4c3d-9e5f-0a1b2c3d4e5f")
	testTripID = uuid.MustParse("b1e2d3c4-5a6b-7c8d-9e0f-1a2b3c4d5e6f")
)

func floatPtr(v float64) *float64 { return &v }

// validTrip returns a trip with sensible defaults.
// Callers override individual fields after calling this function.
func validTrip() domain.Trip {
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

// tripRepoReturning returns a mockTripRepo whose GetByID always returns
// the given trip. Most non-trip services only need the ownership check.
func tripRepoReturning(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return trip, nil
		},
	}
}

// validContent returns a minimal two-day itinerary document.
func validContent() domain.ItineraryContent {
	return domain.ItineraryContent{
		Summary:            "Two laid-back days of beaches and forts.",
		TotalEstimatedCost: 18000,
		Days: []domain.Day{
			{
				DayNumber: 1,
				Title:     "North Goa beaches",
				Places: []domain.Place{
					{Name: "Baga Beach", Description: "Busy beach", TimingTip: "Before noon", EstimatedCost: 0},
				},
				Transport: domain.Transport{Mode: "Scooter", Description: "Rent near the beach", EstimatedCost: 400},
				Food: []domain.FoodItem{
					{Meal: "Lunch", Recommendation: "Beach shack", Cuisine: "Goan fish curry", EstimatedCost: 600},
				},
				DailyCostBreakdown: domain.DailyCostBreakdown{
					Sightseeing: 0, Transport: 400, Food: 600, Miscellaneous: 200, Total: 1200,
				},
				Tips: []string{"Carry sunscreen"},
			},
			{
				DayNumber: 2,
				Title:     "Old Goa heritage",
				Places: []domain.Place{
					{Name: "Basilica of Bom Jesus", Description: "UNESCO site", TimingTip: "Early morning", EstimatedCost: 0},
				},
				Transport: domain.Transport{Mode: "Cab", Description: "Shared cab", EstimatedCost: 800},
				Food: []domain.FoodItem{
					{Meal: "Dinner", Recommendation: "Panjim cafe", Cuisine: "Goan", EstimatedCost: 900},
				},
				DailyCostBreakdown: domain.DailyCostBreakdown{
					Sightseeing: 300, Transport: 800, Food: 900, Miscellaneous: 0, Total: 2000,
				},
				Tips: []string{},
			},
		},
		PackingTips: []string{"Light cottons"},
		GeneralTips: []string{"Haggle for scooter rates"},
	}
}
