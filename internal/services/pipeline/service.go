package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/models"
)

// RunStatus is the outcome class of an analysis run for a date.
type RunStatus string

const (
	// StatusCached means analyses already existed and were returned
	// without new LLM calls.
	StatusCached RunStatus = "cached"

	// StatusAnalyzed means new analyses were produced and stored.
	StatusAnalyzed RunStatus = "analyzed"

	// StatusNoNews means the date has no stored news to analyze.
	StatusNoNews RunStatus = "no_news"

	// StatusFailed means news existed but every item's analysis
	// failed.
	StatusFailed RunStatus = "failed"
)

// AnalysisRun is the result of driving the cache gate for one date.
type AnalysisRun struct {
	Date      string                       `json:"date"`
	Status    RunStatus                    `json:"status"`
	NewsCount int                          `json:"newsCount"`
	Analyses  []*models.InvestmentAnalysis `json:"analyses"`
}

// DateStatus reports what is stored for a date.
type DateStatus struct {
	Date          string `json:"date"`
	HasNews       bool   `json:"hasNews"`
	HasAnalysis   bool   `json:"hasAnalysis"`
	NewsCount     int    `json:"newsCount"`
	AnalysisCount int    `json:"analysisCount"`
}

// UpdateResult summarizes a daily update run.
type UpdateResult struct {
	RunID         string      `json:"runId"`
	Date          string      `json:"date"`
	NewsCount     int         `json:"newsCount"`
	Status        RunStatus   `json:"status"`
	AnalysisCount int         `json:"analysisCount"`
	Statistics    *Statistics `json:"statistics,omitempty"`
	Duration      string      `json:"duration"`
}

// Statistics counts impact entries across a run's analyses.
type Statistics struct {
	Industries int                      `json:"industries"`
	Companies  int                      `json:"companies"`
	Futures    int                      `json:"futures"`
	Bonds      int                      `json:"bonds"`
	Sentiments map[models.Sentiment]int `json:"sentiments"`
}

// NewsScraper is the slice of the scraper the pipeline needs.
type NewsScraper interface {
	ScrapeDay(ctx context.Context, date string) ([]*models.NewsItem, error)
}

// NewsAnalyzer is the slice of the analyzer the pipeline needs.
type NewsAnalyzer interface {
	AnalyzeBatch(ctx context.Context, newsList []*models.NewsItem, interval time.Duration) []*models.InvestmentAnalysis
}

// Service orchestrates scrape, analyze and persist for a date.
type Service struct {
	news     interfaces.NewsStorage
	analysis interfaces.AnalysisStorage
	scraper  NewsScraper
	analyzer NewsAnalyzer
	interval time.Duration
	logger   arbor.ILogger
}

// NewService creates a pipeline service. interval paces the sequential
// LLM calls of a batch.
func NewService(news interfaces.NewsStorage, analysis interfaces.AnalysisStorage, scraper NewsScraper, analyzer NewsAnalyzer, interval time.Duration, logger arbor.ILogger) *Service {
	return &Service{
		news:     news,
		analysis: analysis,
		scraper:  scraper,
		analyzer: analyzer,
		interval: interval,
		logger:   logger,
	}
}

// Status reports what is stored for a date.
func (s *Service) Status(date string) (*DateStatus, error) {
	news, err := s.news.GetNewsByDate(date)
	if err != nil {
		return nil, err
	}
	analyses, err := s.analysis.GetAnalysisByDate(date)
	if err != nil {
		return nil, err
	}

	return &DateStatus{
		Date:          date,
		HasNews:       len(news) > 0,
		HasAnalysis:   len(analyses) > 0,
		NewsCount:     len(news),
		AnalysisCount: len(analyses),
	}, nil
}

// EnsureAnalyzed runs the analysis cache gate for a date:
//
//	existing analyses        -> cached, no LLM calls
//	no stored news           -> no_news
//	all item analyses failed -> failed
//	otherwise                -> analyzed, results persisted
//
// The gate is check-then-act without a lock. Concurrent callers can
// both run the batch, but upserts keyed by news id make the duplicate
// work harmless.
func (s *Service) EnsureAnalyzed(ctx context.Context, date string) (*AnalysisRun, error) {
	if _, err := common.ParseDate(date); err != nil {
		return nil, err
	}

	existing, err := s.analysis.GetAnalysisByDate(date)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		s.logger.Info().Str("date", date).Int("count", len(existing)).Msg("Analyses already cached")
		return &AnalysisRun{Date: date, Status: StatusCached, NewsCount: len(existing), Analyses: existing}, nil
	}

	news, err := s.news.GetNewsByDate(date)
	if err != nil {
		return nil, err
	}
	if len(news) == 0 {
		s.logger.Info().Str("date", date).Msg("No news stored for date")
		return &AnalysisRun{Date: date, Status: StatusNoNews, Analyses: []*models.InvestmentAnalysis{}}, nil
	}

	analyses := s.analyzer.AnalyzeBatch(ctx, news, s.interval)
	if len(analyses) == 0 {
		s.logger.Warn().Str("date", date).Int("news", len(news)).Msg("All analyses failed for date")
		return &AnalysisRun{Date: date, Status: StatusFailed, NewsCount: len(news), Analyses: []*models.InvestmentAnalysis{}}, nil
	}

	if err := s.analysis.SaveAnalyses(analyses); err != nil {
		return nil, fmt.Errorf("failed to persist analyses for %s: %w", date, err)
	}

	s.logger.Info().
		Str("date", date).
		Int("news", len(news)).
		Int("analyzed", len(analyses)).
		Msg("Analyses stored")

	return &AnalysisRun{Date: date, Status: StatusAnalyzed, NewsCount: len(news), Analyses: analyses}, nil
}

// Reanalyze bypasses the cache gate: it deletes any stored analyses
// for the date and runs the batch again.
func (s *Service) Reanalyze(ctx context.Context, date string) (*AnalysisRun, error) {
	if _, err := common.ParseDate(date); err != nil {
		return nil, err
	}

	deleted, err := s.analysis.DeleteAnalysesByDate(date)
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		s.logger.Info().Str("date", date).Int("deleted", deleted).Msg("Cleared existing analyses for re-run")
	}

	return s.EnsureAnalyzed(ctx, date)
}

// ScrapeDay scrapes and stores one date's news. When the date already
// has stored news the scrape is skipped unless force is set.
func (s *Service) ScrapeDay(ctx context.Context, date string, force bool) (int, error) {
	if _, err := common.ParseDate(date); err != nil {
		return 0, err
	}

	if !force {
		existing, err := s.news.GetNewsByDate(date)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			s.logger.Info().Str("date", date).Int("count", len(existing)).Msg("News already stored, skipping scrape")
			return len(existing), nil
		}
	}

	items, err := s.scraper.ScrapeDay(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("scrape of %s failed: %w", date, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := s.news.SaveNewsItems(items); err != nil {
		return 0, fmt.Errorf("failed to persist news for %s: %w", date, err)
	}

	return len(items), nil
}

// DailyUpdate runs the full pipeline for the previous Beijing day:
// scrape, persist, analyze through the cache gate.
func (s *Service) DailyUpdate(ctx context.Context) (*UpdateResult, error) {
	runID := common.NewRunID()
	date := common.BeijingYesterday(time.Now())
	startTime := time.Now()

	s.logger.Info().Str("run_id", runID).Str("date", date).Msg("Starting daily update")

	newsCount, err := s.ScrapeDay(ctx, date, false)
	if err != nil {
		return nil, err
	}

	run, err := s.EnsureAnalyzed(ctx, date)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{
		RunID:         runID,
		Date:          date,
		NewsCount:     newsCount,
		Status:        run.Status,
		AnalysisCount: len(run.Analyses),
		Statistics:    ComputeStatistics(run.Analyses),
		Duration:      time.Since(startTime).Round(time.Millisecond).String(),
	}

	s.logger.Info().
		Str("run_id", runID).
		Str("date", date).
		Str("status", string(run.Status)).
		Int("news", newsCount).
		Int("analyses", result.AnalysisCount).
		Dur("duration", time.Since(startTime)).
		Msg("Daily update completed")

	return result, nil
}

// ComputeStatistics counts impact entries across analyses.
func ComputeStatistics(analyses []*models.InvestmentAnalysis) *Statistics {
	stats := &Statistics{
		Sentiments: make(map[models.Sentiment]int),
	}
	for _, analysis := range analyses {
		stats.Industries += len(analysis.IndustryImpacts)
		stats.Companies += len(analysis.CompanyImpacts)
		stats.Futures += len(analysis.FuturesImpacts)
		stats.Bonds += len(analysis.BondImpacts)
		stats.Sentiments[analysis.OverallSentiment]++
	}
	return stats
}
