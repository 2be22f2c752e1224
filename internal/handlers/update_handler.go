package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/services/pipeline"
)

// UpdateHandler exposes the daily update pipeline as a manual trigger,
// mirroring what the scheduler runs on cron.
type UpdateHandler struct {
	pipeline *pipeline.Service
	logger   arbor.ILogger
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(pipelineService *pipeline.Service, logger arbor.ILogger) *UpdateHandler {
	return &UpdateHandler{
		pipeline: pipelineService,
		logger:   logger,
	}
}

// TriggerUpdateHandler serves POST /api/update: scrape and analyze
// the previous Beijing day.
func (h *UpdateHandler) TriggerUpdateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	result, err := h.pipeline.DailyUpdate(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Manual daily update failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteData(w, result)
}
