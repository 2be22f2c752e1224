package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/services/pipeline"
)

// AnalysisHandler serves stored analyses and the analysis triggers.
type AnalysisHandler struct {
	analysis interfaces.AnalysisStorage
	pipeline *pipeline.Service
	logger   arbor.ILogger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysis interfaces.AnalysisStorage, pipelineService *pipeline.Service, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		pipeline: pipelineService,
		logger:   logger,
	}
}

// GetAnalysisHandler serves GET /api/analysis?date=YYYY-MM-DD.
func (h *AnalysisHandler) GetAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	analyses, err := h.analysis.GetAnalysisByDate(date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteData(w, analyses)
}

// StatusHandler serves GET /api/analysis/status?date=YYYY-MM-DD.
func (h *AnalysisHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	status, err := h.pipeline.Status(date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteData(w, status)
}

type analyzeRequest struct {
	Date string `json:"date"`
}

// AnalyzeHandler serves POST /api/analyze {date}. It drives the cache
// gate: already-analyzed dates return cached results without LLM
// calls.
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	date, ok := h.decodeDate(w, r)
	if !ok {
		return
	}

	run, err := h.pipeline.EnsureAnalyzed(r.Context(), date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", date).Msg("Analysis request failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteData(w, run)
}

// ForceAnalyzeHandler serves POST /api/analyze/force {date}. It
// deletes stored analyses for the date and re-runs the batch.
func (h *AnalysisHandler) ForceAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	date, ok := h.decodeDate(w, r)
	if !ok {
		return
	}

	run, err := h.pipeline.Reanalyze(r.Context(), date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", date).Msg("Forced analysis request failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteData(w, run)
}

func (h *AnalysisHandler) decodeDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if req.Date == "" {
		WriteError(w, http.StatusBadRequest, "date is required")
		return "", false
	}
	return req.Date, true
}
