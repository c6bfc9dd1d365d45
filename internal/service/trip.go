// Package service contains the business logic for the Safarnama API.
// Services validate inputs, enforce business rules, and orchestrate repo
// and external-client calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// destinationImages maps well-known destination substrings to a stock
// cover photo, with a generic fallback. Matches the reference app's
// dashboard treatment for trips without an uploaded cover.
var destinationImages = map[string]string{
	"goa":      "https://images.unsplash.com/photo-1512343879784-a960bf40e7f2?w=1200&h=400&fit=crop",
	"jaipur":   "https://images.unsplash.com/photo-1477587458883-47145ed94245?w=1200&h=400&fit=crop",
	"kerala":   "https://images.unsplash.com/photo-1602216056096-3b40cc0c9944?w=1200&h=400&fit=crop",
	"manali":   "https://images.unsplash.com/photo-1626621341517-bbf3d9990a23?w=1200&h=400&fit=crop",
	"mumbai":   "https://images.unsplash.com/photo-1570168007204-dfb528c6958f?w=1200&h=400&fit=crop",
	"delhi":    "https://images.unsplash.com/photo-1587474260584-136574528ed5?w=1200&h=400&fit=crop",
	"agra":     "https://images.unsplash.com/photo-1564507592333-c60657eea523?w=1200&h=400&fit=crop",
	"udaipur":  "https://images.unsplash.com/photo-1568495248636-6432b97bd949?w=1200&h=400&fit=crop",
	"varanasi": "https://images.unsplash.com/photo-1561361513-2d000a50f0dc?w=1200&h=400&fit=crop",
}

const defaultCoverImage = "https://images.unsplash.com/photo-1524492412937-b28074a5d7da?w=1200&h=400&fit=crop"

// TripService implements business logic for Trip operations, including
// the share-token lifecycle.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip for the given user.
// A missing status defaults to planning; a missing cover image falls back
// to a stock photo keyed on the destination.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == "" {
		trip.Status = domain.StatusPlanning
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if trip.CoverImage == nil {
		cover := coverImageFor(trip.Destination)
		trip.CoverImage = &cover
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by userID.
func (s *TripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns one page of the user's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip.
// Sharing state is managed through EnableSharing/DisableSharing only.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip; its itinerary and expenses cascade in the DB.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// EnableSharing mints a fresh unguessable token and enables public read
// access in a single atomic update. Re-enabling always yields a new
// token — a previously leaked link never becomes valid again.
func (s *TripService) EnableSharing(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	token, err := newShareToken()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.EnableSharing: %w", err)
	}
	result, err := s.repo.UpdateSharing(ctx, userID, tripID, true, &token)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.EnableSharing: %w", err)
	}
	return result, nil
}

// DisableSharing clears both sharing fields in a single atomic update.
// The old token is gone for good.
func (s *TripService) DisableSharing(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.UpdateSharing(ctx, userID, tripID, false, nil)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DisableSharing: %w", err)
	}
	return result, nil
}

// GetByShareToken resolves a trip for an anonymous viewer. Any failure —
// unknown token, revoked token, disabled sharing — surfaces as the same
// domain.ErrNotFound so callers cannot probe which case occurred.
func (s *TripService) GetByShareToken(ctx context.Context, token string) (domain.Trip, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByShareToken: %w", domain.ErrNotFound)
	}
	result, err := s.repo.GetByShareToken(ctx, token)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByShareToken: %w", err)
	}
	return result, nil
}

// newShareToken returns 32 bytes of crypto randomness, hex encoded.
func newShareToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// coverImageFor picks a stock cover photo by destination substring.
func coverImageFor(destination string) string {
	key := strings.ToLower(destination)
	for city, url := range destinationImages {
		if strings.Contains(key, city) {
			return url
		}
	}
	return defaultCoverImage
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title and destination must be non-empty (whitespace-only rejected).
//   - End date must not be before the start date.
//   - Budget, when set, must be positive.
//   - Style, pace, and status must be known enum values.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.Budget != nil && *trip.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", domain.ErrValidation)
	}
	if !domain.ValidTravelStyle(trip.TravelStyle) {
		return fmt.Errorf("%w: unknown travel_style %q", domain.ErrValidation, trip.TravelStyle)
	}
	if !domain.ValidPace(trip.Pace) {
		return fmt.Errorf("%w: unknown pace %q", domain.ErrValidation, trip.Pace)
	}
	if !domain.ValidTripStatus(trip.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	return nil
}
