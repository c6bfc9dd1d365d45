package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

// ExportItinerary handles GET /trips/{tripID}/itinerary/export. The
// whole PDF is rendered before the first byte is written, so errors can
// still produce a JSON status.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	pdf, filename, err := s.exporter.ExportPDF(r.Context(), userID, tripID)
	if err != nil {
		s.respondServiceError(w, r, err, "itinerary not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
