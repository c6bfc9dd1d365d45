package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/places"
	"github.com/adhingra/safarnama/backend/internal/service"
)

// mockSearcher resolves place queries from a canned table. Queries absent
// from the table fail with ErrNotFound.
type mockSearcher struct {
	results map[string]places.Result
	queries []string
}

func (m *mockSearcher) TextSearch(_ context.Context, query string) (places.Result, error) {
	m.queries = append(m.queries, query)
	if r, ok := m.results[query]; ok {
		return r, nil
	}
	return places.Result{}, domain.ErrNotFound
}

var _ service.PlaceSearcher = (*mockSearcher)(nil)

func newPlaceService(t *testing.T, search service.PlaceSearcher) *service.PlaceService {
	t.Helper()
	// Zero delay keeps unit tests instant; pacing is covered separately.
	return service.NewPlaceService(tripRepoReturning(validTrip()), search, 0, discardLogger())
}

func sampleRefs() []domain.PlaceRef {
	return []domain.PlaceRef{
		{Name: "Baga Beach", Description: "Busy beach", DayNumber: 1},
		{Name: "Atlantis Castle", Description: "Does not exist", DayNumber: 1},
		{Name: "Basilica of Bom Jesus", Description: "UNESCO site", DayNumber: 2},
	}
}

func sampleResults() map[string]places.Result {
	photo := "https://maps.example/photo?ref=abc"
	placeID := "ChIJbaga"
	return map[string]places.Result{
		"Baga Beach, Goa": {Lat: 15.5553, Lng: 73.7517, PhotoURL: &photo, PlaceID: &placeID},
		"Basilica of Bom Jesus, Goa": {Lat: 15.5009, Lng: 73.9116},
	}
}

func TestPlaceService_Enrich_PreservesLengthAndOrder(t *testing.T) {
	search := &mockSearcher{results: sampleResults()}
	svc := newPlaceService(t, search)

	got, err := svc.Enrich(context.Background(), testUserID, testTripID, sampleRefs())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Baga Beach", got[0].Name)
	assert.Equal(t, "Atlantis Castle", got[1].Name)
	assert.Equal(t, "Basilica of Bom Jesus", got[2].Name)
}

func TestPlaceService_Enrich_FailedLookupYieldsSentinel(t *testing.T) {
	search := &mockSearcher{results: sampleResults()}
	svc := newPlaceService(t, search)

	got, err := svc.Enrich(context.Background(), testUserID, testTripID, sampleRefs())

	require.NoError(t, err)
	assert.True(t, got[0].Resolved())
	assert.False(t, got[1].Resolved(), "unknown place comes back as the (0,0) sentinel")
	assert.True(t, got[2].Resolved())
	// The failure did not abort the rest of the batch.
	assert.Len(t, search.queries, 3)
}

func TestPlaceService_Enrich_QueriesNameCommaDestination(t *testing.T) {
	search := &mockSearcher{results: sampleResults()}
	svc := newPlaceService(t, search)

	_, err := svc.Enrich(context.Background(), testUserID, testTripID, sampleRefs()[:1])

	require.NoError(t, err)
	require.Len(t, search.queries, 1)
	assert.Equal(t, "Baga Beach, Goa", search.queries[0])
}

func TestPlaceService_Enrich_EmptyBatch(t *testing.T) {
	search := &mockSearcher{}
	svc := newPlaceService(t, search)

	got, err := svc.Enrich(context.Background(), testUserID, testTripID, nil)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, search.queries, "no external calls for an empty batch")
}

func TestPlaceService_Enrich_CachesBatch(t *testing.T) {
	search := &mockSearcher{results: sampleResults()}
	svc := newPlaceService(t, search)

	first, err := svc.Enrich(context.Background(), testUserID, testTripID, sampleRefs())
	require.NoError(t, err)
	second, err := svc.Enrich(context.Background(), testUserID, testTripID, sampleRefs())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, search.queries, 3, "the second identical batch must be served from cache")
}

func TestPlaceService_Enrich_CancelledContextAborts(t *testing.T) {
	search := &mockSearcher{results: sampleResults()}
	svc := newPlaceService(t, search)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Enrich(ctx, testUserID, testTripID, sampleRefs())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlaceService_Enrich_PacesBetweenLookupsOnly(t *testing.T) {
	search := &mockSearcher{results: sampleResults()}
	svc := service.NewPlaceService(tripRepoReturning(validTrip()), search, 100*time.Millisecond, discardLogger())

	var pauses int
	svc.SetSleepFn(func(_ context.Context, d time.Duration) {
		assert.Equal(t, 100*time.Millisecond, d)
		pauses++
	})

	_, err := svc.Enrich(context.Background(), testUserID, testTripID, sampleRefs())

	require.NoError(t, err)
	// Three lookups, two gaps: no pause after the last item.
	assert.Equal(t, 2, pauses)
}

func TestMappablePlaces_FiltersSentinels(t *testing.T) {
	details := []domain.PlaceDetails{
		{Name: "A", Lat: 1, Lng: 2},
		{Name: "B"},
		{Name: "C", Lat: 3, Lng: 4},
	}

	got := service.MappablePlaces(details)

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
}
