package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - News
	mux.HandleFunc("/api/news", s.app.NewsHandler.GetNewsHandler)
	mux.HandleFunc("/api/scrape", s.app.NewsHandler.ScrapeHandler)

	// API routes - Analysis
	mux.HandleFunc("/api/analyze", s.app.AnalysisHandler.AnalyzeHandler)
	mux.HandleFunc("/api/analyze/force", s.app.AnalysisHandler.ForceAnalyzeHandler)
	mux.HandleFunc("/api/analysis", s.app.AnalysisHandler.GetAnalysisHandler)
	mux.HandleFunc("/api/analysis/status", s.app.AnalysisHandler.StatusHandler)

	// API routes - Views
	mux.HandleFunc("/api/stock-ranking", s.app.RankingHandler.GetRankingHandler)
	mux.HandleFunc("/api/summary", s.app.SummaryHandler.GetSummaryHandler)
	mux.HandleFunc("/api/monthly", s.app.SummaryHandler.GetMonthlyHandler)

	// API routes - Pipeline
	mux.HandleFunc("/api/update", s.app.UpdateHandler.TriggerUpdateHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
