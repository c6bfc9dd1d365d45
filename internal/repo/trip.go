// Package repo contains all database access logic for the Safarnama API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const tripColumns = `id, user_id, title, destination, start_date, end_date, budget,
	travel_style, pace, status, is_shared, share_token, cover_image, created_at`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
// All single-trip reads and writes except GetByShareToken are scoped by
// userID to enforce ownership.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	// Returns domain.ErrNotFound if no such trip exists for that user.
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of the user's trips ordered by
	// start_date descending, plus the total count for that user.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Sharing fields are not touched here — use
	// UpdateSharing. Returns domain.ErrNotFound if the trip does not exist
	// for that user.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip; the itinerary and expenses cascade.
	// Returns domain.ErrNotFound if the trip does not exist for that user.
	Delete(ctx context.Context, userID, tripID uuid.UUID) error

	// UpdateSharing sets is_shared and share_token in a single UPDATE so
	// the two fields can never be observed out of sync.
	// Returns domain.ErrNotFound if the trip does not exist for that user.
	UpdateSharing(ctx context.Context, userID, tripID uuid.UUID, isShared bool, token *string) (domain.Trip, error)

	// GetByShareToken resolves a trip by its share token, only when sharing
	// is enabled. A wrong token, a revoked token, and a token that never
	// existed all return domain.ErrNotFound — deliberately
	// indistinguishable to anonymous callers.
	GetByShareToken(ctx context.Context, token string) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (user_id, title, destination, start_date, end_date, budget,
		                   travel_style, pace, status, cover_image)
		VALUES (@user_id, @title, @destination, @start_date, @end_date, @budget,
		        @travel_style, @pace, @status, @cover_image)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":      trip.UserID,
		"title":        trip.Title,
		"destination":  trip.Destination,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"budget":       trip.Budget, // nil becomes NULL
		"travel_style": string(trip.TravelStyle),
		"pace":         string(trip.Pace),
		"status":       string(trip.Status),
		"cover_image":  trip.CoverImage,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM trips WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID},
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: count: %w", err)
	}

	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET title        = @title,
		    destination  = @destination,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    budget       = @budget,
		    travel_style = @travel_style,
		    pace         = @pace,
		    status       = @status,
		    cover_image  = @cover_image
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":           trip.ID,
		"user_id":      trip.UserID,
		"title":        trip.Title,
		"destination":  trip.Destination,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"budget":       trip.Budget,
		"travel_style": string(trip.TravelStyle),
		"pace":         string(trip.Pace),
		"status":       string(trip.Status),
		"cover_image":  trip.CoverImage,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": tripID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) UpdateSharing(ctx context.Context, userID, tripID uuid.UUID, isShared bool, token *string) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET is_shared   = @is_shared,
		    share_token = @share_token
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          tripID,
		"user_id":     userID,
		"is_shared":   isShared,
		"share_token": token,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateSharing: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByShareToken(ctx context.Context, token string) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE share_token = @token AND is_shared = true`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByShareToken: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, date, and nullable column conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id, userID pgtype.UUID
		start, end pgtype.Date
		budget     pgtype.Float8
		style      string
		pace       string
		status     string
		token      pgtype.Text
		cover      pgtype.Text
	)

	err := s.Scan(&id, &userID, &t.Title, &t.Destination, &start, &end, &budget,
		&style, &pace, &status, &t.IsShared, &token, &cover, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	t.TravelStyle = domain.TravelStyle(style)
	t.Pace = domain.Pace(pace)
	t.Status = domain.TripStatus(status)
	if budget.Valid {
		b := budget.Float64
		t.Budget = &b
	}
	if token.Valid {
		tok := token.String
		t.ShareToken = &tok
	}
	if cover.Valid {
		c := cover.String
		t.CoverImage = &c
	}

	return t, nil
}
