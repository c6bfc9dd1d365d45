package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is the structured day-by-day plan generated for a trip.
// Exactly one itinerary exists per trip; regeneration fully replaces the
// document rather than merging into it.
type Itinerary struct {
	ID        uuid.UUID        `json:"id"`
	TripID    uuid.UUID        `json:"trip_id"`
	Content   ItineraryContent `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ItineraryContent is the document the model produces and every dependent
// view (budget overlay, map, assistant context, PDF export, public share)
// reads from. The JSON field names are the model's output contract — they
// must stay exactly as the prompt specifies them.
type ItineraryContent struct {
	Summary            string   `json:"summary"`
	TotalEstimatedCost float64  `json:"totalEstimatedCost"`
	Days               []Day    `json:"days"`
	PackingTips        []string `json:"packingTips"`
	GeneralTips        []string `json:"generalTips"`
}

// Day is one calendar day's plan. DayNumber is 1-based and contiguous
// across the itinerary after validation.
type Day struct {
	DayNumber          int                `json:"dayNumber"`
	Title              string             `json:"title"`
	Places             []Place            `json:"places"`
	Transport          Transport          `json:"transport"`
	Food               []FoodItem         `json:"food"`
	DailyCostBreakdown DailyCostBreakdown `json:"dailyCostBreakdown"`
	Tips               []string           `json:"tips"`
}

// Place is a sight or activity within a day.
type Place struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TimingTip     string  `json:"timingTip"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// Transport describes how to get around on a given day.
type Transport struct {
	Mode          string  `json:"mode"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// FoodItem is a meal recommendation for a day.
type FoodItem struct {
	Meal           string  `json:"meal"`
	Recommendation string  `json:"recommendation"`
	Cuisine        string  `json:"cuisine"`
	EstimatedCost  float64 `json:"estimatedCost"`
}

// DailyCostBreakdown holds the model's per-day cost estimate split into
// four categories plus a total. The total is model-sourced and accepted
// as-is by validation; consumers that recompute it must surface a
// mismatch instead of silently preferring either value.
type DailyCostBreakdown struct {
	Sightseeing   float64 `json:"sightseeing"`
	Transport     float64 `json:"transport"`
	Food          float64 `json:"food"`
	Miscellaneous float64 `json:"miscellaneous"`
	Total         float64 `json:"total"`
}

// CategorySum returns the sum of the four category amounts.
func (d DailyCostBreakdown) CategorySum() float64 {
	return d.Sightseeing + d.Transport + d.Food + d.Miscellaneous
}

// Reconciled reports whether the model's total agrees with the category
// sum within half a rupee. Views that recompute the sum use this to flag
// (never fix) a discrepancy.
func (d DailyCostBreakdown) Reconciled() bool {
	diff := d.Total - d.CategorySum()
	return diff < 0.5 && diff > -0.5
}
