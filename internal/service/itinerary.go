package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/adhingra/safarnama/backend/internal/ai"
	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// Completer is the slice of the AI client the generator depends on.
// Defining it here (in the consumer package) lets tests inject a canned
// model without touching the gateway.
type Completer interface {
	Complete(ctx context.Context, system string, msgs []ai.Message, temperature float64) (string, error)
}

// generationTemperature matches the reference pipeline's setting.
const generationTemperature = 0.7

var travelStyleDescriptions = map[domain.TravelStyle]string{
	domain.StyleSolo:    "solo traveler looking for authentic experiences and flexibility",
	domain.StyleCouple:  "romantic couple seeking memorable experiences together",
	domain.StyleFamily:  "family with mixed ages, needs comfortable and family-friendly options",
	domain.StyleFriends: "group of friends looking for fun, adventure, and social experiences",
}

var paceDescriptions = map[domain.Pace]string{
	domain.PaceRelaxed: "prefer a relaxed pace with fewer activities but more time to enjoy each place",
	domain.PacePacked:  "want to maximize sightseeing and cover as many attractions as possible",
}

// codeFence matches a markdown code block, with or without a language
// label, anywhere in the model's answer.
var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// inr prints whole-rupee amounts with en-IN digit grouping for prompts.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// ItineraryService runs the generation pipeline: trip parameters → prompt
// → model → de-fence → parse → validate → persist. Either the whole
// document lands, or nothing does.
type ItineraryService struct {
	trips repo.TripRepo
	itins repo.ItineraryRepo
	model Completer
	log   *slog.Logger
}

// NewItineraryService constructs an ItineraryService.
func NewItineraryService(trips repo.TripRepo, itins repo.ItineraryRepo, model Completer, log *slog.Logger) *ItineraryService {
	return &ItineraryService{trips: trips, itins: itins, model: model, log: log}
}

// Generate produces and persists the itinerary for a trip, fully
// replacing any prior document. It is deliberately not idempotent: the
// model is non-deterministic and repeated calls yield different content.
//
// Input is validated before any external call; every model-side failure
// maps to one of the domain sentinels and leaves the stored itinerary
// untouched.
func (s *ItineraryService) Generate(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}
	if err := validateGenerationInput(trip); err != nil {
		return domain.Itinerary{}, err
	}

	dayCount := trip.DayCount()
	system, user := buildGenerationPrompt(trip, dayCount)

	raw, err := s.model.Complete(ctx, system, []ai.Message{{Role: "user", Content: user}}, generationTemperature)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	content, err := parseItinerary(raw)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	// The model may not hit the requested span exactly; that is a
	// recoverable warning, not a failure.
	if len(content.Days) != dayCount {
		s.log.Warn("generated day count differs from trip span",
			"trip_id", tripID,
			"requested", dayCount,
			"generated", len(content.Days),
		)
	}

	result, err := s.itins.Replace(ctx, tripID, content)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}
	return result, nil
}

// GetByTrip returns the stored itinerary for a trip the user owns.
func (s *ItineraryService) GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.Itinerary, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByTrip: %w", err)
	}
	result, err := s.itins.GetByTripID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByTrip: %w", err)
	}
	return result, nil
}

// validateGenerationInput rejects bad trip parameters before any model
// call is made.
func validateGenerationInput(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.Budget == nil || *trip.Budget <= 0 {
		return fmt.Errorf("%w: a positive budget is required to generate an itinerary", domain.ErrValidation)
	}
	return nil
}

// buildGenerationPrompt assembles the system and user prompts from the
// trip parameters and derived values (season, day count, per-day budget).
func buildGenerationPrompt(trip domain.Trip, dayCount int) (system, user string) {
	season := domain.SeasonOf(trip.StartDate)
	dailyBudget := math.Floor(*trip.Budget / float64(dayCount))

	style, ok := travelStyleDescriptions[trip.TravelStyle]
	if !ok {
		style = string(trip.TravelStyle)
	}
	pace, ok := paceDescriptions[trip.Pace]
	if !ok {
		pace = string(trip.Pace)
	}

	system = "You are an expert India travel planner. Create detailed, practical " +
		"day-by-day itineraries with accurate local knowledge. Always provide realistic " +
		"cost estimates in INR. Consider local weather, festivals, and seasonal factors."

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day travel itinerary for %s, India.\n\n", dayCount, trip.Destination)
	b.WriteString("Travel Details:\n")
	fmt.Fprintf(&b, "- Season: %s\n", season)
	fmt.Fprintf(&b, "- Travel Style: %s\n", style)
	fmt.Fprintf(&b, "- Pace: %s\n", pace)
	fmt.Fprintf(&b, "- Total Budget: %s\n", formatINR(*trip.Budget))
	fmt.Fprintf(&b, "- Daily Budget: %s per day\n\n", formatINR(dailyBudget))
	b.WriteString(`Please provide a JSON response with this exact structure:
{
  "summary": "Brief 2-3 sentence overview of the trip",
  "totalEstimatedCost": number,
  "days": [
    {
      "dayNumber": 1,
      "title": "Day title/theme",
      "places": [
        {
          "name": "Place name",
          "description": "Brief description",
          "timingTip": "Best time to visit",
          "estimatedCost": number
        }
      ],
      "transport": {
        "mode": "Auto/Metro/Cab/etc",
        "description": "How to get around",
        "estimatedCost": number
      },
      "food": [
        {
          "meal": "Breakfast/Lunch/Dinner",
          "recommendation": "Restaurant or food type",
          "cuisine": "Local specialty",
          "estimatedCost": number
        }
      ],
      "dailyCostBreakdown": {
        "sightseeing": number,
        "transport": number,
        "food": number,
        "miscellaneous": number,
        "total": number
      },
      "tips": ["Practical tip 1", "Practical tip 2"]
    }
  ],
  "packingTips": ["Season-specific packing suggestion"],
  "generalTips": ["Local customs", "Safety tips", "Money-saving tips"]
}

`)
	fmt.Fprintf(&b, "Ensure costs are realistic for %s and stay within the daily budget of %s. Include local gems and must-visit spots.",
		trip.Destination, formatINR(dailyBudget))

	return system, b.String()
}

// parseItinerary is the parse-then-validate boundary between raw model
// output and the typed document. Nothing past this function ever sees
// untrusted generation output.
func parseItinerary(raw string) (domain.ItineraryContent, error) {
	jsonText := raw
	if m := codeFence.FindStringSubmatch(raw); m != nil {
		jsonText = m[1]
	}

	var content domain.ItineraryContent
	if err := json.Unmarshal([]byte(jsonText), &content); err != nil {
		return domain.ItineraryContent{}, fmt.Errorf("%w: %v", domain.ErrBadModelOutput, err)
	}

	if strings.TrimSpace(content.Summary) == "" {
		return domain.ItineraryContent{}, fmt.Errorf("%w: missing summary", domain.ErrBadModelOutput)
	}
	if len(content.Days) == 0 {
		return domain.ItineraryContent{}, fmt.Errorf("%w: missing days", domain.ErrBadModelOutput)
	}
	for i, day := range content.Days {
		if day.DayNumber != i+1 {
			return domain.ItineraryContent{}, fmt.Errorf("%w: day %d carries dayNumber %d", domain.ErrBadModelOutput, i+1, day.DayNumber)
		}
	}

	normalizeContent(&content)
	return content, nil
}

// normalizeContent replaces nil optional lists with empty ones so every
// consumer can range without nil checks.
func normalizeContent(c *domain.ItineraryContent) {
	if c.PackingTips == nil {
		c.PackingTips = []string{}
	}
	if c.GeneralTips == nil {
		c.GeneralTips = []string{}
	}
	for i := range c.Days {
		if c.Days[i].Places == nil {
			c.Days[i].Places = []domain.Place{}
		}
		if c.Days[i].Food == nil {
			c.Days[i].Food = []domain.FoodItem{}
		}
		if c.Days[i].Tips == nil {
			c.Days[i].Tips = []string{}
		}
	}
}

// formatINR prints a whole-rupee amount like "₹50,000".
func formatINR(v float64) string {
	return inr.Sprintf("₹%v", number.Decimal(int64(v)))
}
