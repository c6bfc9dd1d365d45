package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory is the closed set of spend categories.
type ExpenseCategory string

const (
	CategoryFood       ExpenseCategory = "Food"
	CategoryTravel     ExpenseCategory = "Travel"
	CategoryStay       ExpenseCategory = "Stay"
	CategoryActivities ExpenseCategory = "Activities"
)

// ExpenseCategories lists all categories in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood, CategoryTravel, CategoryStay, CategoryActivities,
}

// ValidExpenseCategory reports whether c is one of the known categories.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryStay, CategoryActivities:
		return true
	}
	return false
}

// Expense is one actual-spend entry against a trip. The ledger is
// append/delete only — edits are delete + recreate. Expenses are never
// derived from the itinerary's planned costs; planned and actual are
// independent sources that views present side by side without merging.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	TripID      uuid.UUID       `json:"trip_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Category    ExpenseCategory `json:"category"`
	Amount      float64         `json:"amount"`
	Description *string         `json:"description,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CategoryTotal is one slice of the category breakdown in an
// ExpenseSummary.
type CategoryTotal struct {
	Category   ExpenseCategory `json:"category"`
	Amount     float64         `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// ExpenseSummary carries the live aggregates for a trip's ledger.
// Remaining is nil when the trip has no budget. Breakdown is empty when
// nothing has been spent (no divide-by-zero percentages).
type ExpenseSummary struct {
	TotalSpent float64         `json:"total_spent"`
	Remaining  *float64        `json:"remaining,omitempty"`
	Breakdown  []CategoryTotal `json:"breakdown"`
}
