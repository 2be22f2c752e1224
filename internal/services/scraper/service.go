package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/models"
)

// Service scrapes a calendar day's news: collect links from category
// feeds, extract article bodies, assemble ordered news items.
type Service struct {
	config    *common.ScraperConfig
	collector *LinkCollector
	extractor *ContentExtractor
	logger    arbor.ILogger
}

// NewService creates the scraper from configuration. List and detail
// fetchers are paced independently since list pages are cheap and
// article pages are fetched in batches.
func NewService(config *common.ScraperConfig, logger arbor.ILogger) (*Service, error) {
	timeout, err := time.ParseDuration(config.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid request_timeout %q: %w", config.RequestTimeout, err)
	}
	pageDelay, err := time.ParseDuration(config.PageDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid page_delay %q: %w", config.PageDelay, err)
	}
	batchDelay, err := time.ParseDuration(config.DetailBatchDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid detail_batch_delay %q: %w", config.DetailBatchDelay, err)
	}

	listFetcher := NewFetcher(config.UserAgent, timeout, pageDelay, logger)
	detailFetcher := NewFetcher(config.UserAgent, timeout, 0, logger)

	return &Service{
		config:    config,
		collector: NewLinkCollector(listFetcher, config.SiteOrigin, config.MaxPages, logger),
		extractor: NewContentExtractor(detailFetcher, config.MinContentLength, config.DetailBatchSize, batchDelay, logger),
		logger:    logger,
	}, nil
}

// ScrapeDay scrapes all configured category feeds for one date
// (YYYY-MM-DD) and returns the assembled news items. An empty result
// with nil error means the date had no publishable news.
func (s *Service) ScrapeDay(ctx context.Context, date string) ([]*models.NewsItem, error) {
	if _, err := common.ParseDate(date); err != nil {
		return nil, err
	}

	startTime := time.Now()
	s.logger.Info().Str("date", date).Msg("Starting scrape run")

	links := s.collector.Collect(ctx, date, s.config.CategoryURLs)
	if len(links) == 0 {
		s.logger.Info().Str("date", date).Msg("No links found for date")
		return nil, nil
	}

	articles := s.extractor.ExtractAll(ctx, links)
	items := assemble(date, articles)

	s.logger.Info().
		Str("date", date).
		Int("links", len(links)).
		Int("items", len(items)).
		Dur("duration", time.Since(startTime)).
		Msg("Scrape run completed")

	return items, nil
}
