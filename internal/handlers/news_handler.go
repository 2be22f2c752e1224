package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/services/pipeline"
)

// NewsHandler serves stored news and the scrape trigger.
type NewsHandler struct {
	news     interfaces.NewsStorage
	pipeline *pipeline.Service
	logger   arbor.ILogger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(news interfaces.NewsStorage, pipelineService *pipeline.Service, logger arbor.ILogger) *NewsHandler {
	return &NewsHandler{
		news:     news,
		pipeline: pipelineService,
		logger:   logger,
	}
}

// GetNewsHandler serves GET /api/news?date=YYYY-MM-DD or ?days=N.
func (h *NewsHandler) GetNewsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if date := r.URL.Query().Get("date"); date != "" {
		items, err := h.news.GetNewsByDate(date)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteData(w, items)
		return
	}

	days := QueryInt(r, "days", 7)
	items, err := h.news.GetRecentNews(days)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load recent news")
		WriteError(w, http.StatusInternalServerError, "Failed to load news")
		return
	}
	WriteData(w, items)
}

type scrapeRequest struct {
	Date  string `json:"date"`
	Force bool   `json:"force"`
}

// ScrapeHandler serves POST /api/scrape {date, force}.
func (h *NewsHandler) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Date == "" {
		WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	count, err := h.pipeline.ScrapeDay(r.Context(), req.Date, req.Force)
	if err != nil {
		h.logger.Error().Err(err).Str("date", req.Date).Msg("Scrape request failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteData(w, map[string]interface{}{
		"date":  req.Date,
		"count": count,
	})
}
