package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/services/summary"
)

// SummaryHandler serves the daily summary and monthly dashboard.
type SummaryHandler struct {
	summary *summary.Service
	logger  arbor.ILogger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService *summary.Service, logger arbor.ILogger) *SummaryHandler {
	return &SummaryHandler{
		summary: summaryService,
		logger:  logger,
	}
}

// GetSummaryHandler serves GET /api/summary?date=YYYY-MM-DD.
func (h *SummaryHandler) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	daySummary, err := h.summary.DailySummary(date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteData(w, daySummary)
}

// GetMonthlyHandler serves GET /api/monthly?days=N.
func (h *SummaryHandler) GetMonthlyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	days := QueryInt(r, "days", 30)
	overview, err := h.summary.Monthly(days)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build monthly overview")
		WriteError(w, http.StatusInternalServerError, "Failed to build monthly overview")
		return
	}
	WriteData(w, overview)
}
