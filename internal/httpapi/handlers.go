package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mobil-koeln/railhop/internal/models"
)

// BookingRequest is the body of POST /api/bookings
type BookingRequest struct {
	ConnectionID     string                  `json:"connectionId"`
	PassengerDetails models.PassengerDetails `json:"passengerDetails"`
}

// CacheStats is the body of GET /api/cache/stats
type CacheStats struct {
	Entries int `json:"entries"`
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch handles POST /api/search.
// Upstream failures never surface here; the search degrades to sample data.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var params models.SearchParams
	if err := decodeBody(w, r, &params); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return
	}
	if err := params.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody(err))
		return
	}

	result := s.search.Search(r.Context(), params)
	writeJSON(w, http.StatusOK, result)
}

// handleBook handles POST /api/bookings
func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return
	}
	if req.ConnectionID == "" {
		writeJSON(w, http.StatusBadRequest, validationBody(models.NewValidationError("connectionId", "field is required")))
		return
	}
	if err := req.PassengerDetails.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody(err))
		return
	}

	booking, err := s.booking.Book(r.Context(), req.ConnectionID, req.PassengerDetails)
	if err != nil {
		s.logger.Error("booking failed",
			zap.String("connection_id", req.ConnectionID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    CodeBookingFailed,
			Message: "booking could not be completed",
		}})
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// handleCacheStats handles GET /api/cache/stats
func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CacheStats{Entries: s.cache.Len()})
}

// handleCacheClear handles DELETE /api/cache
func (s *Server) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	s.cache.Clear()
	s.logger.Info("cache cleared")
	w.WriteHeader(http.StatusNoContent)
}
