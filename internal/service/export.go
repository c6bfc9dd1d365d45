package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/adhingra/safarnama/backend/internal/domain"
	"github.com/adhingra/safarnama/backend/internal/repo"
)

// ExportService renders a trip's itinerary to a paginated A4 PDF.
// Every day section is rendered expanded; page breaks are automatic and
// contiguous, so nothing is lost or duplicated at a boundary.
type ExportService struct {
	trips repo.TripRepo
	itins repo.ItineraryRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, itins repo.ItineraryRepo) *ExportService {
	return &ExportService{trips: trips, itins: itins}
}

// ExportPDF renders the itinerary of the user's trip and returns the PDF
// bytes plus a download filename derived from the trip title.
func (s *ExportService) ExportPDF(ctx context.Context, userID, tripID uuid.UUID) ([]byte, string, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, "", fmt.Errorf("service.ExportService.ExportPDF: %w", err)
	}
	itinerary, err := s.itins.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, "", fmt.Errorf("service.ExportService.ExportPDF: %w", err)
	}

	pdf, err := renderItineraryPDF(trip, itinerary.Content)
	if err != nil {
		return nil, "", fmt.Errorf("service.ExportService.ExportPDF: %w", err)
	}

	filename := strings.ReplaceAll(strings.TrimSpace(trip.Title), " ", "_") + "_itinerary.pdf"
	return pdf, filename, nil
}

// renderItineraryPDF lays the document out top to bottom on A4 pages.
// The core PDF fonts are latin-1, so rupee amounts are printed as "Rs".
func renderItineraryPDF(trip domain.Trip, content domain.ItineraryContent) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(trip.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s | %s to %s",
		trip.Destination,
		trip.StartDate.Format("2 Jan 2006"),
		trip.EndDate.Format("2 Jan 2006"),
	)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, tr(content.Summary), "", "L", false)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Total estimated cost: %s", rupees(content.TotalEstimatedCost))), "", "L", false)
	pdf.Ln(3)

	for _, day := range content.Days {
		renderDay(pdf, tr, day)
	}

	renderTipList(pdf, tr, "Packing Tips", content.PackingTips)
	renderTipList(pdf, tr, "General Tips", content.GeneralTips)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDay(pdf *fpdf.Fpdf, tr func(string) string, day domain.Day) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, tr(fmt.Sprintf("Day %d: %s", day.DayNumber, day.Title)), "", "L", false)

	for _, place := range day.Places {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s (%s)", place.Name, rupees(place.EstimatedCost))), "", "L", false)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 4.5, tr(place.Description), "", "L", false)
		if place.TimingTip != "" {
			pdf.MultiCell(0, 4.5, tr("Timing: "+place.TimingTip), "", "L", false)
		}
		pdf.Ln(1)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4.5, tr(fmt.Sprintf("Transport: %s - %s (%s)",
		day.Transport.Mode, day.Transport.Description, rupees(day.Transport.EstimatedCost))), "", "L", false)

	for _, food := range day.Food {
		pdf.MultiCell(0, 4.5, tr(fmt.Sprintf("%s: %s - %s (%s)",
			food.Meal, food.Recommendation, food.Cuisine, rupees(food.EstimatedCost))), "", "L", false)
	}

	renderBreakdown(pdf, tr, day.DailyCostBreakdown)

	for _, tip := range day.Tips {
		pdf.MultiCell(0, 4.5, tr("- "+tip), "", "L", false)
	}
	pdf.Ln(3)
}

// renderBreakdown prints the model's per-day cost table. When the
// recomputed category sum disagrees with the model's total, both numbers
// are shown — the discrepancy is surfaced, never silently resolved.
func renderBreakdown(pdf *fpdf.Fpdf, tr func(string) string, b domain.DailyCostBreakdown) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4.5, tr(fmt.Sprintf(
		"Daily costs - sightseeing %s, transport %s, food %s, misc %s, total %s",
		rupees(b.Sightseeing), rupees(b.Transport), rupees(b.Food), rupees(b.Miscellaneous), rupees(b.Total))),
		"", "L", false)
	if !b.Reconciled() {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(0, 4, tr(fmt.Sprintf(
			"Note: category sum %s differs from stated total %s",
			rupees(b.CategorySum()), rupees(b.Total))), "", "L", false)
	}
}

func renderTipList(pdf *fpdf.Fpdf, tr func(string) string, title string, tips []string) {
	if len(tips) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 6, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	for _, tip := range tips {
		pdf.MultiCell(0, 4.5, tr("- "+tip), "", "L", false)
	}
	pdf.Ln(2)
}

// rupees prints an amount for the latin-1 PDF fonts.
func rupees(v float64) string {
	return fmt.Sprintf("Rs %.0f", v)
}
