package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// expenseRequest is the JSON body for recording a spend entry.
type expenseRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
	ExpenseDate string  `json:"expense_date"`
}

// listExpensesResponse pairs the ledger rows with their live summary so
// the budget view renders from a single request.
type listExpensesResponse struct {
	Expenses []domain.Expense      `json:"expenses"`
	Summary  domain.ExpenseSummary `json:"summary"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	var body expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}
	date, err := parseDate(body.ExpenseDate, "expense_date")
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.expenses.Create(r.Context(), domain.Expense{
		TripID:      tripID,
		UserID:      userID,
		Category:    domain.ExpenseCategory(body.Category),
		Amount:      body.Amount,
		Description: body.Description,
		ExpenseDate: date,
	})
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListExpenses handles GET /trips/{tripID}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	expenses, summary, err := s.expenses.ListWithSummary(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, listExpensesResponse{Expenses: expenses, Summary: summary})
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}
	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		requestError(w, "expense id must be a valid UUID")
		return
	}

	if err := s.expenses.Delete(r.Context(), userID, tripID, expenseID); err != nil {
		s.respondServiceError(w, r, err, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
