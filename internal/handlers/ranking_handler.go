package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/services/ranking"
)

// RankingHandler serves the daily stock ranking view.
type RankingHandler struct {
	analysis interfaces.AnalysisStorage
	logger   arbor.ILogger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(analysis interfaces.AnalysisStorage, logger arbor.ILogger) *RankingHandler {
	return &RankingHandler{
		analysis: analysis,
		logger:   logger,
	}
}

// GetRankingHandler serves GET /api/stock-ranking?date=YYYY-MM-DD. The
// ranking is computed on demand from stored analyses.
func (h *RankingHandler) GetRankingHandler(w http.ResponseWriter, r *http.Request) {
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

	dailyRanking := ranking.BuildDailyRanking(date, analyses)
	WriteData(w, map[string]interface{}{
		"ranking": dailyRanking,
		"stats":   ranking.Stats(dailyRanking),
	})
}
