package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/ai"
	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// Streamer is the slice of the AI client the assistant depends on.
type Streamer interface {
	Stream(ctx context.Context, system string, msgs []ai.Message, emit func(token string) error) error
}

// historyLimit caps how much conversation history is resent per call.
// The assistant is stateless — every call carries its own history.
const historyLimit = 20

// AssistantService answers trip-scoped questions as a token stream. Each
// call rebuilds the full advisory context from the trip snapshot; nothing
// is stored between calls, so cancelling a stream has no side effects.
type AssistantService struct {
	trips    repo.TripRepo
	itins    repo.ItineraryRepo
	expenses repo.ExpenseRepo
	model    Streamer
}

// NewAssistantService constructs an AssistantService.
func NewAssistantService(trips repo.TripRepo, itins repo.ItineraryRepo, expenses repo.ExpenseRepo, model Streamer) *AssistantService {
	return &AssistantService{trips: trips, itins: itins, expenses: expenses, model: model}
}

// Chat streams the assistant's answer token by token through emit.
// The trip, its itinerary (if any), and total spend are loaded fresh and
// prepended as system context; the caller's history rides along after it.
func (a *AssistantService) Chat(ctx context.Context, userID, tripID uuid.UUID, history []ai.Message, emit func(token string) error) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: at least one message is required", domain.ErrValidation)
	}

	trip, err := a.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return fmt.Errorf("service.AssistantService.Chat: %w", err)
	}

	// A trip without an itinerary is normal; any other lookup failure
	// must not be reported to the model as "no itinerary yet".
	var itinerary *domain.ItineraryContent
	switch it, err := a.itins.GetByTripID(ctx, tripID); {
	case err == nil:
		itinerary = &it.Content
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("service.AssistantService.Chat: %w", err)
	}

	expenses, err := a.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.AssistantService.Chat: %w", err)
	}
	totalSpent := Summarize(expenses, nil).TotalSpent

	system := buildAssistantPrompt(trip, itinerary, totalSpent)

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	if err := a.model.Stream(ctx, system, history, emit); err != nil {
		return fmt.Errorf("service.AssistantService.Chat: %w", err)
	}
	return nil
}

// festivalContext is the static festival-calendar briefing prepended to
// every assistant call.
const festivalContext = `
MAJOR INDIAN FESTIVALS TO CONSIDER:
- Diwali (Oct/Nov): Best time to experience local celebrations, but shops may close, prices surge
- Holi (March): Colorful but be prepared for crowds and color play
- Durga Puja (Oct): Best experienced in Kolkata
- Ganesh Chaturthi (Aug/Sept): Best in Mumbai and Pune
- Navratri/Garba (Oct): Best in Gujarat
- Pushkar Mela (Nov): Famous camel fair in Rajasthan
- Kumbh Mela: Massive pilgrim gathering (check dates)
- Republic Day (26 Jan): Delhi parade, tight security
- Independence Day (15 Aug): Celebrations but tight security at monuments
Note: During major festivals, transport and hotels book up fast. Plan accordingly.`

// seasonAdvisory returns destination-class advice keyed on the start
// month. Monsoon wins the June overlap with summer, matching the
// reference behavior.
func seasonAdvisory(start time.Time) string {
	switch m := start.Month(); {
	case m >= time.June && m <= time.September:
		return `
MONSOON SEASON ALERT (June-September):
- AVOID outdoor activities like trekking, beach visits, and wildlife safaris during heavy rain
- Roads may be slippery or flooded in hilly areas
- Suggest indoor activities: museums, temples, cooking classes, spa treatments
- Recommend waterproof gear and umbrellas
- Some hill stations like Munnar, Coorg get very heavy rainfall`
	case m >= time.April && m <= time.June:
		return `
SUMMER SEASON (April-June):
- STRONGLY RECOMMEND hill stations: Manali, Shimla, Ooty, Darjeeling, Munnar, Mount Abu, Mussoorie
- Avoid plains of North India (Delhi, Jaipur, Varanasi) - temperatures exceed 45°C
- Best time for Ladakh and Spiti Valley (May-June)
- Suggest early morning activities (before 10 AM) or evening plans
- Recommend AC accommodations and staying hydrated`
	case m >= time.October || m <= time.February:
		return `
PEAK TOURIST SEASON (October-February):
- Best weather across most of India
- Expect higher prices and crowds at popular destinations
- Book accommodations and trains well in advance
- Perfect for Rajasthan, Goa, Kerala, and wildlife safaris`
	default:
		return `
SHOULDER SEASON (March):
- Good weather in most places before summer heat
- Holi festival celebrations (if in March)
- Wildlife safaris still good before parks close`
	}
}

// weekendAdvisory returns the crowd warning when the trip starts on a
// Friday, Saturday, or Sunday, and an empty string otherwise.
func weekendAdvisory(start time.Time) string {
	switch start.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return `
WEEKEND CROWD ALERT:
- Popular tourist spots will be very crowded
- Suggest visiting major attractions early morning (before 8 AM) or late afternoon
- Local hill stations near metros (Lonavala, Mahabaleshwar, Matheran, Nandi Hills) extremely crowded
- Restaurant wait times longer; consider reservations
- Traffic on highways will be heavy; plan extra travel time`
	}
	return ""
}

// buildAssistantPrompt assembles the full system prompt: trip snapshot,
// seasonal and weekend advisories, festival briefing, itinerary document,
// and role instructions.
func buildAssistantPrompt(trip domain.Trip, itinerary *domain.ItineraryContent, totalSpent float64) string {
	budget := "Not set"
	remaining := "Not set"
	if trip.Budget != nil {
		budget = formatINR(*trip.Budget)
		remaining = formatINR(*trip.Budget - totalSpent)
	}

	itinerarySection := "No itinerary generated yet."
	if itinerary != nil {
		if doc, err := json.MarshalIndent(itinerary, "", "  "); err == nil {
			itinerarySection = "CURRENT ITINERARY:\n" + string(doc)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful travel assistant specializing in India travel for a trip to %s.\n\n", trip.Destination)
	b.WriteString("TRIP DETAILS:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", trip.Destination)
	fmt.Fprintf(&b, "- Dates: %s to %s\n", trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Budget: %s\n", budget)
	fmt.Fprintf(&b, "- Travel Style: %s\n", trip.TravelStyle)
	fmt.Fprintf(&b, "- Pace: %s\n", trip.Pace)
	fmt.Fprintf(&b, "- Amount Spent So Far: %s\n", formatINR(totalSpent))
	fmt.Fprintf(&b, "- Remaining Budget: %s\n", remaining)
	b.WriteString(seasonAdvisory(trip.StartDate))
	b.WriteString("\n")
	if w := weekendAdvisory(trip.StartDate); w != "" {
		b.WriteString(w)
		b.WriteString("\n")
	}
	b.WriteString(festivalContext)
	b.WriteString("\n\n")
	b.WriteString(itinerarySection)
	b.WriteString(`

Your role is to:
1. Help users find cheaper alternatives (hotels, transport, food)
2. Suggest things they can skip to save money
3. Recommend hidden gems and local spots near their destinations
4. Provide budget-saving tips specific to India
5. Answer questions about their trip using the context provided
6. PROACTIVELY WARN about weather/season issues based on trip dates
7. Suggest festival experiences if timing aligns
8. Warn about peak crowds and suggest off-peak timing
9. Recommend season-appropriate destinations (hill stations in summer, beaches in winter)

INDIA-SPECIFIC TIPS TO SHARE:
- Use IRCTC Tatkal for last-minute train bookings (opens 10 AM, one day before)
- Sleeper buses are cheaper than trains for overnight travel
- Street food is safe at busy stalls with high turnover
- Negotiate auto-rickshaw fares or use Ola/Uber
- Government tourism hotels (ITDC, state tourism) offer good value
- Dharamshalas and ashrams offer budget accommodation in religious cities

Keep responses concise, friendly, and actionable. Use ₹ for prices. Focus on practical advice for traveling in India.`)

	return b.String()
}
