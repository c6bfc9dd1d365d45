// Package domain contains the core data types for the Safarnama trip
// planner. This package has no SQL and no HTTP — it is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelStyle describes who is travelling. The set is closed; the
// generator maps each value to a prompt description.
type TravelStyle string

const (
	StyleSolo    TravelStyle = "solo"
	StyleCouple  TravelStyle = "couple"
	StyleFamily  TravelStyle = "family"
	StyleFriends TravelStyle = "friends"
)

// ValidTravelStyle reports whether s is one of the known travel styles.
func ValidTravelStyle(s TravelStyle) bool {
	switch s {
	case StyleSolo, StyleCouple, StyleFamily, StyleFriends:
		return true
	}
	return false
}

// Pace describes how densely days should be scheduled.
type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PacePacked  Pace = "packed"
)

// ValidPace reports whether p is one of the known paces.
func ValidPace(p Pace) bool {
	return p == PaceRelaxed || p == PacePacked
}

// TripStatus tracks where a trip is in its lifecycle.
type TripStatus string

const (
	StatusPlanning  TripStatus = "planning"
	StatusBooked    TripStatus = "booked"
	StatusCompleted TripStatus = "completed"
)

// ValidTripStatus reports whether s is one of the known statuses.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case StatusPlanning, StatusBooked, StatusCompleted:
		return true
	}
	return false
}

// Trip is the top-level aggregate: a planned journey with dates,
// destination, and budget, owned by exactly one user.
//
// Sharing invariant: ShareToken is non-nil iff IsShared is true. The token
// is a bearer secret — it grants anonymous read access and must never be
// written to logs. Both fields always change together in a single update.
type Trip struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Title       string      `json:"title"`
	Destination string      `json:"destination"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Budget      *float64    `json:"budget,omitempty"` // nil when the user skipped it
	TravelStyle TravelStyle `json:"travel_style"`
	Pace        Pace        `json:"pace"`
	Status      TripStatus  `json:"status"`
	IsShared    bool        `json:"is_shared"`
	ShareToken  *string     `json:"-"` // never serialized to owners or logs
	CoverImage  *string     `json:"cover_image,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DayCount returns the inclusive number of calendar days the trip spans:
// (end − start) + 1. A same-day trip counts as one day.
func (t Trip) DayCount() int {
	return DaySpan(t.StartDate, t.EndDate)
}

// DaySpan returns the inclusive day count between two calendar dates.
// Times of day are ignored; only the date parts matter.
func DaySpan(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Season is the four-bucket Indian travel calendar used by the generator
// prompt. Buckets are keyed on the trip's start month.
type Season string

const (
	SeasonSpring  Season = "Spring (March-May)"
	SeasonMonsoon Season = "Monsoon (June-September)"
	SeasonAutumn  Season = "Autumn (October-November)"
	SeasonWinter  Season = "Winter (December-February)"
)

// SeasonOf maps a date to its season bucket.
func SeasonOf(date time.Time) Season {
	switch m := date.Month(); {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.September:
		return SeasonMonsoon
	case m >= time.October && m <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
