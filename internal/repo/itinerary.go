package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itineraries.
// There is at most one itinerary per trip; Replace enforces that with an
// upsert, so a regeneration atomically swaps the whole document.
type ItineraryRepo interface {
	// Replace inserts the itinerary for a trip, or fully overwrites the
	// existing one. The prior document is gone after this returns.
	Replace(ctx context.Context, tripID uuid.UUID, content domain.ItineraryContent) (domain.Itinerary, error)

	// GetByTripID retrieves the itinerary for a trip.
	// Returns domain.ErrNotFound if the trip has no itinerary yet.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
// The document is stored as a single jsonb column — the itinerary is
// always read and replaced whole, never patched field by field.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

func (r *pgItineraryRepo) Replace(ctx context.Context, tripID uuid.UUID, content domain.ItineraryContent) (domain.Itinerary, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Replace: marshal: %w", err)
	}

	const q = `
		INSERT INTO itineraries (trip_id, content)
		VALUES (@trip_id, @content)
		ON CONFLICT (trip_id)
		DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		RETURNING id, trip_id, content, created_at, updated_at`

	args := pgx.NamedArgs{"trip_id": tripID, "content": raw}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Replace: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT id, trip_id, content, created_at, updated_at
		FROM itineraries
		WHERE trip_id = @trip_id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByTripID: %w", err)
	}
	return result, nil
}

// scanItinerary maps a single database row into a domain.Itinerary,
// unmarshalling the jsonb document.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it     domain.Itinerary
		id     pgtype.UUID
		tripID pgtype.UUID
		raw    []byte
	)

	err := s.Scan(&id, &tripID, &raw, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)
	if err := json.Unmarshal(raw, &it.Content); err != nil {
		return domain.Itinerary{}, fmt.Errorf("unmarshal content: %w", err)
	}

	return it, nil
}
