package interfaces

import (
	"github.com/ternarybob/newslens/internal/models"
)

// NewsStorage persists scraped news items keyed by id. Writes are
// idempotent upserts, so re-saving a scrape run is safe.
type NewsStorage interface {
	// SaveNews upserts a single news item.
	SaveNews(item *models.NewsItem) error

	// SaveNewsItems upserts a batch of news items.
	SaveNewsItems(items []*models.NewsItem) error

	// GetNewsByDate returns all news items for a date (YYYY-MM-DD),
	// ordered by id ascending. Empty slice when the date has no news.
	GetNewsByDate(date string) ([]*models.NewsItem, error)

	// GetRecentNews returns news items from the last N days, newest
	// first.
	GetRecentNews(days int) ([]*models.NewsItem, error)
}

// AnalysisStorage persists investment analyses keyed by news id.
type AnalysisStorage interface {
	// SaveAnalysis upserts a single analysis.
	SaveAnalysis(analysis *models.InvestmentAnalysis) error

	// SaveAnalyses upserts a batch of analyses.
	SaveAnalyses(analyses []*models.InvestmentAnalysis) error

	// GetAnalysisByDate returns all analyses for a date (YYYY-MM-DD),
	// ordered by news id ascending. Empty slice when none exist.
	GetAnalysisByDate(date string) ([]*models.InvestmentAnalysis, error)

	// GetRecentAnalyses returns analyses from the last N days, newest
	// first.
	GetRecentAnalyses(days int) ([]*models.InvestmentAnalysis, error)

	// DeleteAnalysesByDate removes all analyses for a date and returns
	// the number deleted. Used by the forced re-analysis path.
	DeleteAnalysesByDate(date string) (int, error)
}

// StorageManager provides access to all storage backends and owns
// their lifecycle.
type StorageManager interface {
	NewsStorage() NewsStorage
	AnalysisStorage() AnalysisStorage
	Close() error
}
