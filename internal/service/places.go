package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/places"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// PlaceSearcher is the slice of the places client the enrichment service
// depends on.
type PlaceSearcher interface {
	TextSearch(ctx context.Context, query string) (places.Result, error)
}

// PlaceService resolves itinerary place names to coordinates and imagery,
// best-effort. Results are derived data: cached briefly in memory to
// spare the external quota, never persisted.
type PlaceService struct {
	trips   repo.TripRepo
	search  PlaceSearcher
	cache   *gocache.Cache
	delay   time.Duration
	log     *slog.Logger
	sleepFn func(ctx context.Context, d time.Duration) // test seam for pacing
}

// NewPlaceService constructs a PlaceService. delay is the pause between
// consecutive external lookups in one batch.
func NewPlaceService(trips repo.TripRepo, search PlaceSearcher, delay time.Duration, log *slog.Logger) *PlaceService {
	return &PlaceService{
		trips:   trips,
		search:  search,
		cache:   gocache.New(15*time.Minute, 30*time.Minute),
		delay:   delay,
		log:     log,
		sleepFn: sleepCtx,
	}
}

// Enrich resolves each place in refs against "<name>, <destination>" for
// the given trip. The result always has exactly len(refs) entries in
// input order. A failed lookup yields the (0,0) sentinel for that entry
// and never aborts its siblings.
func (s *PlaceService) Enrich(ctx context.Context, userID, tripID uuid.UUID, refs []domain.PlaceRef) ([]domain.PlaceDetails, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.Enrich: %w", err)
	}
	if len(refs) == 0 {
		return []domain.PlaceDetails{}, nil
	}

	if cached, ok := s.cache.Get(batchKey(tripID, refs)); ok {
		return cached.([]domain.PlaceDetails), nil
	}

	details := make([]domain.PlaceDetails, 0, len(refs))
	for i, ref := range refs {
		details = append(details, s.lookup(ctx, ref, trip.Destination))

		// Pace external requests; no pause after the last item.
		if i < len(refs)-1 {
			s.sleepFn(ctx, s.delay)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("service.PlaceService.Enrich: %w", ctx.Err())
		}
	}

	s.cache.Set(batchKey(tripID, refs), details, gocache.DefaultExpiration)

	resolved := lo.CountBy(details, domain.PlaceDetails.Resolved)
	s.log.Info("place enrichment finished",
		"trip_id", tripID,
		"requested", len(refs),
		"resolved", resolved,
	)
	return details, nil
}

// lookup resolves one place, converting every failure into the sentinel.
func (s *PlaceService) lookup(ctx context.Context, ref domain.PlaceRef, destination string) domain.PlaceDetails {
	query := fmt.Sprintf("%s, %s", ref.Name, destination)

	result, err := s.search.TextSearch(ctx, query)
	if err != nil {
		s.log.Debug("place lookup unresolved", "place", ref.Name, "error", err)
		return domain.Unresolved(ref)
	}

	return domain.PlaceDetails{
		Name:        ref.Name,
		Description: ref.Description,
		DayNumber:   ref.DayNumber,
		Lat:         result.Lat,
		Lng:         result.Lng,
		PhotoURL:    result.PhotoURL,
		PlaceID:     result.PlaceID,
	}
}

// MappablePlaces filters out sentinel entries so only resolved places are
// plotted. List views may still show the full batch.
func MappablePlaces(details []domain.PlaceDetails) []domain.PlaceDetails {
	return lo.Filter(details, func(d domain.PlaceDetails, _ int) bool {
		return d.Resolved()
	})
}

// batchKey builds a cache key from the trip and the exact input batch.
func batchKey(tripID uuid.UUID, refs []domain.PlaceRef) string {
	var b strings.Builder
	b.WriteString(tripID.String())
	for _, r := range refs {
		fmt.Fprintf(&b, "|%d:%s", r.DayNumber, r.Name)
	}
	return b.String()
}

// sleepCtx waits d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
