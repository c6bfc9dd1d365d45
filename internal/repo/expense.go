package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for the expense ledger.
// The ledger is append/delete only — there is deliberately no Update.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// ListByTripID returns all expenses for a trip, most recent expense
	// date first; rows sharing a date keep their insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Delete removes a single expense by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no such expense exists under that trip.
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, user_id, category, amount, description, expense_date)
		VALUES (@trip_id, @user_id, @category, @amount, @description, @expense_date)
		RETURNING id, trip_id, user_id, category, amount, description, expense_date, created_at`

	args := pgx.NamedArgs{
		"trip_id":      expense.TripID,
		"user_id":      expense.UserID,
		"category":     string(expense.Category),
		"amount":       expense.Amount,
		"description":  expense.Description, // nil becomes NULL
		"expense_date": expense.ExpenseDate,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	// seq keeps insertion order stable within a date. created_at would
	// not: now() is the transaction timestamp, identical for every row
	// inserted in one transaction.
	const q = `
		SELECT id, trip_id, user_id, category, amount, description, expense_date, created_at
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY expense_date DESC, seq ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: rows: %w", err)
	}

	return expenses, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e        domain.Expense
		id       pgtype.UUID
		tripID   pgtype.UUID
		userID   pgtype.UUID
		category string
		amount   pgtype.Float8
		desc     pgtype.Text
		date     pgtype.Date
	)

	err := s.Scan(&id, &tripID, &userID, &category, &amount, &desc, &date, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.UserID = uuid.UUID(userID.Bytes)
	e.Category = domain.ExpenseCategory(category)
	e.Amount = amount.Float64
	e.ExpenseDate = date.Time
	if desc.Valid {
		d := desc.String
		e.Description = &d
	}

	return e, nil
}
