package summary

import (
	"sort"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/models"
)

// DayOverview is one date's row in the monthly dashboard.
type DayOverview struct {
	Date          string             `json:"date"`
	NewsCount     int                `json:"newsCount"`
	AnalysisCount int                `json:"analysisCount"`
	AvgScore      float64            `json:"avgScore"`
	Sentiment     models.Sentiment   `json:"sentiment"`
	TopIndustries []string           `json:"topIndustries"`
	News          []*models.NewsItem `json:"news,omitempty"`
}

// MonthlyOverview aggregates recent days for the dashboard view.
type MonthlyOverview struct {
	Days                  []DayOverview            `json:"days"`
	TotalNews             int                      `json:"totalNews"`
	TotalAnalyses         int                      `json:"totalAnalyses"`
	AvgOpportunityScore   float64                  `json:"avgOpportunityScore"`
	SentimentDistribution map[models.Sentiment]int `json:"sentimentDistribution"`
	TopIndustries         []string                 `json:"topIndustries"`
	GeneratedAt           time.Time                `json:"generatedAt"`
}

// Service produces daily and monthly digest views from stored news
// and analyses.
type Service struct {
	news     interfaces.NewsStorage
	analysis interfaces.AnalysisStorage
	logger   arbor.ILogger
}

// NewService creates a summary service.
func NewService(news interfaces.NewsStorage, analysis interfaces.AnalysisStorage, logger arbor.ILogger) *Service {
	return &Service{
		news:     news,
		analysis: analysis,
		logger:   logger,
	}
}

// DailySummary builds the per-date digest: top-scored impacts per
// asset class and the majority sentiment.
func (s *Service) DailySummary(date string) (*models.AnalysisSummary, error) {
	news, err := s.news.GetNewsByDate(date)
	if err != nil {
		return nil, err
	}
	analyses, err := s.analysis.GetAnalysisByDate(date)
	if err != nil {
		return nil, err
	}

	summary := &models.AnalysisSummary{
		Date:             date,
		TotalNews:        len(news),
		AnalyzedNews:     len(analyses),
		TopIndustries:    []models.IndustryImpact{},
		TopCompanies:     []models.CompanyImpact{},
		TopFutures:       []models.FuturesImpact{},
		TopBonds:         []models.BondImpact{},
		OverallSentiment: models.SentimentNeutral,
		GeneratedAt:      time.Now(),
	}

	sentimentCounts := make(map[models.Sentiment]int)
	for _, analysis := range analyses {
		summary.TopIndustries = append(summary.TopIndustries, analysis.IndustryImpacts...)
		summary.TopCompanies = append(summary.TopCompanies, analysis.CompanyImpacts...)
		summary.TopFutures = append(summary.TopFutures, analysis.FuturesImpacts...)
		summary.TopBonds = append(summary.TopBonds, analysis.BondImpacts...)
		sentimentCounts[analysis.OverallSentiment]++
	}

	sort.SliceStable(summary.TopIndustries, func(i, j int) bool {
		return summary.TopIndustries[i].ImpactScore > summary.TopIndustries[j].ImpactScore
	})
	sort.SliceStable(summary.TopCompanies, func(i, j int) bool {
		return summary.TopCompanies[i].ImpactScore > summary.TopCompanies[j].ImpactScore
	})
	sort.SliceStable(summary.TopFutures, func(i, j int) bool {
		return summary.TopFutures[i].ImpactScore > summary.TopFutures[j].ImpactScore
	})
	sort.SliceStable(summary.TopBonds, func(i, j int) bool {
		return summary.TopBonds[i].ImpactScore > summary.TopBonds[j].ImpactScore
	})

	summary.TopIndustries = truncateIndustries(summary.TopIndustries, 10)
	summary.TopCompanies = truncateCompanies(summary.TopCompanies, 10)
	summary.TopFutures = truncateFutures(summary.TopFutures, 10)
	summary.TopBonds = truncateBonds(summary.TopBonds, 5)
	summary.OverallSentiment = majoritySentiment(sentimentCounts)

	return summary, nil
}

// Monthly groups the last N days of news and analyses into the
// dashboard overview.
func (s *Service) Monthly(days int) (*MonthlyOverview, error) {
	if days < 1 {
		days = 30
	}

	news, err := s.news.GetRecentNews(days)
	if err != nil {
		return nil, err
	}
	analyses, err := s.analysis.GetRecentAnalyses(days)
	if err != nil {
		return nil, err
	}

	newsByDate := make(map[string][]*models.NewsItem)
	for _, item := range news {
		newsByDate[item.Date] = append(newsByDate[item.Date], item)
	}
	analysesByDate := make(map[string][]*models.InvestmentAnalysis)
	for _, analysis := range analyses {
		analysesByDate[analysis.NewsDate] = append(analysesByDate[analysis.NewsDate], analysis)
	}

	dates := make([]string, 0, len(newsByDate))
	for date := range newsByDate {
		dates = append(dates, date)
	}
	for date := range analysesByDate {
		if _, ok := newsByDate[date]; !ok {
			dates = append(dates, date)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	overview := &MonthlyOverview{
		Days:                  make([]DayOverview, 0, len(dates)),
		TotalNews:             len(news),
		TotalAnalyses:         len(analyses),
		SentimentDistribution: make(map[models.Sentiment]int),
		TopIndustries:         []string{},
		GeneratedAt:           time.Now(),
	}

	industryScores := make(map[string]int)
	scoreSum := 0

	for _, date := range dates {
		dayAnalyses := analysesByDate[date]

		daySentiments := make(map[models.Sentiment]int)
		dayIndustries := make(map[string]int)
		dayScoreSum := 0
		for _, analysis := range dayAnalyses {
			daySentiments[analysis.OverallSentiment]++
			overview.SentimentDistribution[analysis.OverallSentiment]++
			dayScoreSum += analysis.InvestmentOpportunityScore
			scoreSum += analysis.InvestmentOpportunityScore
			for _, impact := range analysis.IndustryImpacts {
				dayIndustries[impact.IndustryName] += impact.ImpactScore
				industryScores[impact.IndustryName] += impact.ImpactScore
			}
		}

		day := DayOverview{
			Date:          date,
			NewsCount:     len(newsByDate[date]),
			AnalysisCount: len(dayAnalyses),
			Sentiment:     majoritySentiment(daySentiments),
			TopIndustries: topKeys(dayIndustries, 3),
			News:          newsByDate[date],
		}
		if len(dayAnalyses) > 0 {
			day.AvgScore = float64(dayScoreSum) / float64(len(dayAnalyses))
		}

		overview.Days = append(overview.Days, day)
	}

	if len(analyses) > 0 {
		overview.AvgOpportunityScore = float64(scoreSum) / float64(len(analyses))
	}
	overview.TopIndustries = topKeys(industryScores, 10)

	return overview, nil
}

// majoritySentiment returns the most frequent sentiment, neutral when
// there are no analyses.
func majoritySentiment(counts map[models.Sentiment]int) models.Sentiment {
	best := models.SentimentNeutral
	bestCount := 0
	for sentiment, count := range counts {
		if count > bestCount {
			best = sentiment
			bestCount = count
		}
	}
	return best
}

// topKeys returns the n highest-valued map keys, descending by value
// with key order as tiebreak for determinism.
func topKeys(values map[string]int, n int) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if values[keys[i]] != values[keys[j]] {
			return values[keys[i]] > values[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func truncateIndustries(impacts []models.IndustryImpact, n int) []models.IndustryImpact {
	if len(impacts) > n {
		return impacts[:n]
	}
	return impacts
}

func truncateCompanies(impacts []models.CompanyImpact, n int) []models.CompanyImpact {
	if len(impacts) > n {
		return impacts[:n]
	}
	return impacts
}

func truncateFutures(impacts []models.FuturesImpact, n int) []models.FuturesImpact {
	if len(impacts) > n {
		return impacts[:n]
	}
	return impacts
}

func truncateBonds(impacts []models.BondImpact, n int) []models.BondImpact {
	if len(impacts) > n {
		return impacts[:n]
	}
	return impacts
}
