package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/service"
)

func echoTripRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back — useful for
	// Create/Update tests that only care about validation logic.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Goa Getaway", got.Title)
}

func TestTripService_Create_DefaultsStatusToPlanning(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Status = ""

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlanning, got.Status)
}

func TestTripService_Create_PicksDestinationCover(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Destination = "North Goa"

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	require.NotNil(t, got.CoverImage)
	assert.Contains(t, *got.CoverImage, "unsplash.com")
}

func TestTripService_Create_KeepsProvidedCover(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	cover := "https://example.com/own-photo.jpg"
	trip := validTrip()
	trip.CoverImage = &cover

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	require.NotNil(t, got.CoverImage)
	assert.Equal(t, cover, *got.CoverImage)
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
	}{
		{"missing title", func(tr *domain.Trip) { tr.Title = "   " }},
		{"missing destination", func(tr *domain.Trip) { tr.Destination = "" }},
		{"end before start", func(tr *domain.Trip) { tr.EndDate = tr.StartDate.AddDate(0, 0, -1) }},
		{"zero budget", func(tr *domain.Trip) { tr.Budget = floatPtr(0) }},
		{"negative budget", func(tr *domain.Trip) { tr.Budget = floatPtr(-100) }},
		{"unknown travel style", func(tr *domain.Trip) { tr.TravelStyle = "backpacker" }},
		{"unknown pace", func(tr *domain.Trip) { tr.Pace = "frantic" }},
		{"unknown status", func(tr *domain.Trip) { tr.Status = "cancelled" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewTripService(echoTripRepo())

			trip := validTrip()
			tt.mutate(&trip)

			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_NilBudgetAllowed(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validTrip()
	trip.Budget = nil

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

// ---- ListByUser ------------------------------------------------------------

func TestTripService_ListByUser_NeverNil(t *testing.T) {
	repo := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewTripService(repo)

	trips, total, err := svc.ListByUser(context.Background(), testUserID, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
	assert.Zero(t, total)
}

// ---- Sharing ---------------------------------------------------------------

func TestTripService_EnableSharing_MintsToken(t *testing.T) {
	var gotShared bool
	var gotToken *string
	repo := &mockTripRepo{
		updateSharing: func(_ context.Context, _, _ uuid.UUID, isShared bool, token *string) (domain.Trip, error) {
			gotShared = isShared
			gotToken = token
			trip := validTrip()
			trip.IsShared = isShared
			trip.ShareToken = token
			return trip, nil
		},
	}
	svc := service.NewTripService(repo)

	got, err := svc.EnableSharing(context.Background(), testUserID, testTripID)

	require.NoError(t, err)
	assert.True(t, gotShared)
	require.NotNil(t, gotToken)
	assert.Len(t, *gotToken, 64, "32 random bytes hex encoded")
	assert.True(t, got.IsShared)
}

func TestTripService_EnableSharing_FreshTokenEachTime(t *testing.T) {
	var tokens []string
	repo := &mockTripRepo{
		updateSharing: func(_ context.Context, _, _ uuid.UUID, _ bool, token *string) (domain.Trip, error) {
			tokens = append(tokens, *token)
			return validTrip(), nil
		},
	}
	svc := service.NewTripService(repo)

	_, err := svc.EnableSharing(context.Background(), testUserID, testTripID)
	require.NoError(t, err)
	_, err = svc.EnableSharing(context.Background(), testUserID, testTripID)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1], "re-enabling must invalidate the old link")
}

func TestTripService_DisableSharing_ClearsBoth(t *testing.T) {
	repo := &mockTripRepo{
		updateSharing: func(_ context.Context, _, _ uuid.UUID, isShared bool, token *string) (domain.Trip, error) {
			assert.False(t, isShared)
			assert.Nil(t, token)
			return validTrip(), nil
		},
	}
	svc := service.NewTripService(repo)

	_, err := svc.DisableSharing(context.Background(), testUserID, testTripID)

	assert.NoError(t, err)
}

func TestTripService_GetByShareToken_EmptyToken(t *testing.T) {
	// The repo must not even be consulted for a blank token.
	svc := service.NewTripService(&mockTripRepo{})

	_, err := svc.GetByShareToken(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_GetByShareToken_RepoNotFoundPassesThrough(t *testing.T) {
	repo := &mockTripRepo{
		getByShareToken: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(repo)

	_, err := svc.GetByShareToken(context.Background(), "deadbeef")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- error wrapping --------------------------------------------------------

func TestTripService_GetByID_WrapsRepoError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, boom
		},
	}
	svc := service.NewTripService(repo)

	_, err := svc.GetByID(context.Background(), testUserID, testTripID)

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service.TripService.GetByID")
}
