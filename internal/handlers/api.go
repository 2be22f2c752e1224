package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
)

// APIHandler serves system endpoints (health, version, API 404s).
type APIHandler struct {
	logger arbor.ILogger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(logger arbor.ILogger) *APIHandler {
	return &APIHandler{logger: logger}
}

// HealthHandler reports service liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteData(w, map[string]string{"status": "ok"})
}

// VersionHandler reports build version information.
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteData(w, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetFullVersion(),
	})
}

// NotFoundHandler handles unmatched API routes.
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}
