package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// ExpenseService implements the append/delete-only expense ledger and its
// live aggregates. It holds the trip repo because every operation must
// verify the parent trip belongs to the caller.
//
// The ledger tracks actual spend only; the itinerary's planned costs are
// a separate source that is never merged in here.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates the expense, verifies the parent trip exists for this
// user, then persists. There is no partial write: a missing required
// field rejects the whole operation.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, expense.UserID, expense.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// Delete removes a single expense by ID, scoped to the user's trip.
// No cascading effects.
func (s *ExpenseService) Delete(ctx context.Context, userID, tripID, expenseID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// ListWithSummary returns the trip's expenses (most recent date first)
// together with the computed aggregates.
func (s *ExpenseService) ListWithSummary(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, domain.ExpenseSummary, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.ListWithSummary: %w", err)
	}
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.ListWithSummary: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, Summarize(expenses, trip.Budget), nil
}

// Summarize computes the ledger aggregates: total spent, remaining budget
// (nil when the trip has no budget), and the per-category breakdown with
// percentages. When nothing has been spent the breakdown is empty — no
// divide-by-zero percentages.
func Summarize(expenses []domain.Expense, budget *float64) domain.ExpenseSummary {
	summary := domain.ExpenseSummary{
		TotalSpent: lo.SumBy(expenses, func(e domain.Expense) float64 { return e.Amount }),
		Breakdown:  []domain.CategoryTotal{},
	}

	if budget != nil {
		remaining := *budget - summary.TotalSpent
		summary.Remaining = &remaining
	}

	if summary.TotalSpent == 0 {
		return summary
	}

	byCategory := lo.GroupBy(expenses, func(e domain.Expense) domain.ExpenseCategory { return e.Category })
	for _, cat := range domain.ExpenseCategories {
		group, ok := byCategory[cat]
		if !ok {
			continue
		}
		amount := lo.SumBy(group, func(e domain.Expense) float64 { return e.Amount })
		summary.Breakdown = append(summary.Breakdown, domain.CategoryTotal{
			Category:   cat,
			Amount:     amount,
			Percentage: amount / summary.TotalSpent * 100,
		})
	}

	return summary
}

// validateExpense enforces the ledger's creation rules.
//   - Category must be one of the fixed enum.
//   - Amount must be positive.
//   - Expense date is required; description stays optional.
func validateExpense(expense domain.Expense) error {
	if !domain.ValidExpenseCategory(expense.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, expense.Category)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if expense.ExpenseDate.IsZero() {
		return fmt.Errorf("%w: expense_date is required", domain.ErrValidation)
	}
	return nil
}
