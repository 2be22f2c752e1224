package analyzer

import (
	"context"
	"time"

	"github.com/ternarybob/newslens/internal/models"
)

// AnalyzeBatch analyzes news items strictly sequentially with a pacing
// interval between calls, respecting provider rate limits. Failed
// items are logged and skipped; the batch never aborts early unless
// the context is canceled. An empty result signals total failure to
// the caller.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, newsList []*models.NewsItem, interval time.Duration) []*models.InvestmentAnalysis {
	analyses := make([]*models.InvestmentAnalysis, 0, len(newsList))

	for i, news := range newsList {
		if ctx.Err() != nil {
			a.logger.Warn().
				Int("completed", i).
				Int("total", len(newsList)).
				Msg("Batch analysis canceled")
			break
		}

		a.logger.Info().
			Int("index", i+1).
			Int("total", len(newsList)).
			Str("news_id", news.ID).
			Msg("Analyzing news item")

		analysis, err := a.Analyze(ctx, news)
		if err != nil {
			a.logger.Warn().Err(err).Str("news_id", news.ID).Msg("Skipping failed analysis")
		} else {
			analyses = append(analyses, analysis)
		}

		if i < len(newsList)-1 && interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(interval):
			}
		}
	}

	a.logger.Info().
		Int("analyzed", len(analyses)).
		Int("total", len(newsList)).
		Msg("Batch analysis completed")

	return analyses
}
