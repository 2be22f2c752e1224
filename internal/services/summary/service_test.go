package summary

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/models"
	"github.com/ternarybob/newslens/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.NewsStorage, *memory.AnalysisStorage) {
	t.Helper()
	news := memory.NewNewsStorage()
	analysis := memory.NewAnalysisStorage()
	return NewService(news, analysis, common.GetLogger()), news, analysis
}

func saveNews(t *testing.T, store *memory.NewsStorage, date string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, store.SaveNews(&models.NewsItem{
			ID:        fmt.Sprintf("%s-%03d", date, i),
			Date:      date,
			Title:     "新闻",
			Content:   "内容",
			ScrapedAt: time.Now(),
		}))
	}
}

func TestDailySummaryEmptyDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.DailySummary("2025-12-06")
	require.NoError(t, err)

	assert.Equal(t, "2025-12-06", summary.Date)
	assert.Zero(t, summary.TotalNews)
	assert.Zero(t, summary.AnalyzedNews)
	assert.NotNil(t, summary.TopIndustries)
	assert.Empty(t, summary.TopIndustries)
	assert.Equal(t, models.SentimentNeutral, summary.OverallSentiment)
}

func TestDailySummaryRanksImpactsByScore(t *testing.T) {
	svc, news, analysis := newTestService(t)
	saveNews(t, news, "2025-12-06", 2)

	require.NoError(t, analysis.SaveAnalyses([]*models.InvestmentAnalysis{
		{
			NewsID:   "2025-12-06-001",
			NewsDate: "2025-12-06",
			IndustryImpacts: []models.IndustryImpact{
				{IndustryName: "半导体", ImpactScore: 70},
			},
			OverallSentiment: models.SentimentBullish,
			AnalyzedAt:       time.Now(),
		},
		{
			NewsID:   "2025-12-06-002",
			NewsDate: "2025-12-06",
			IndustryImpacts: []models.IndustryImpact{
				{IndustryName: "新能源", ImpactScore: 90},
			},
			OverallSentiment: models.SentimentBullish,
			AnalyzedAt:       time.Now(),
		},
	}))

	summary, err := svc.DailySummary("2025-12-06")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalNews)
	assert.Equal(t, 2, summary.AnalyzedNews)
	require.Len(t, summary.TopIndustries, 2)
	assert.Equal(t, "新能源", summary.TopIndustries[0].IndustryName)
	assert.Equal(t, "半导体", summary.TopIndustries[1].IndustryName)
	assert.Equal(t, models.SentimentBullish, summary.OverallSentiment)
}

func TestDailySummaryTruncatesTopLists(t *testing.T) {
	svc, _, analysis := newTestService(t)

	industries := make([]models.IndustryImpact, 0, 12)
	for i := 0; i < 12; i++ {
		industries = append(industries, models.IndustryImpact{
			IndustryName: fmt.Sprintf("行业%02d", i),
			ImpactScore:  i,
		})
	}
	bonds := make([]models.BondImpact, 0, 7)
	for i := 0; i < 7; i++ {
		bonds = append(bonds, models.BondImpact{BondType: fmt.Sprintf("债券%d", i), ImpactScore: i})
	}

	require.NoError(t, analysis.SaveAnalysis(&models.InvestmentAnalysis{
		NewsID:           "2025-12-06-001",
		NewsDate:         "2025-12-06",
		IndustryImpacts:  industries,
		BondImpacts:      bonds,
		OverallSentiment: models.SentimentNeutral,
		AnalyzedAt:       time.Now(),
	}))

	summary, err := svc.DailySummary("2025-12-06")
	require.NoError(t, err)

	assert.Len(t, summary.TopIndustries, 10)
	assert.Len(t, summary.TopBonds, 5)
	// Highest score first after truncation
	assert.Equal(t, 11, summary.TopIndustries[0].ImpactScore)
}

func TestMajoritySentiment(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, majoritySentiment(nil))
	assert.Equal(t, models.SentimentBearish, majoritySentiment(map[models.Sentiment]int{
		models.SentimentBullish: 1,
		models.SentimentBearish: 3,
		models.SentimentNeutral: 2,
	}))
}

func TestTopKeys(t *testing.T) {
	keys := topKeys(map[string]int{"甲": 10, "乙": 30, "丙": 20, "丁": 30}, 3)

	// Descending by value, key order breaks the tie
	assert.Equal(t, []string{"丁", "乙", "丙"}, keys)
}

func TestMonthlyGroupsByDate(t *testing.T) {
	svc, news, analysis := newTestService(t)

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	saveNews(t, news, today, 2)
	saveNews(t, news, yesterday, 1)

	require.NoError(t, analysis.SaveAnalyses([]*models.InvestmentAnalysis{
		{
			NewsID:                     today + "-001",
			NewsDate:                   today,
			InvestmentOpportunityScore: 80,
			OverallSentiment:           models.SentimentBullish,
			IndustryImpacts: []models.IndustryImpact{
				{IndustryName: "新能源", ImpactScore: 90},
			},
			AnalyzedAt: time.Now(),
		},
		{
			NewsID:                     today + "-002",
			NewsDate:                   today,
			InvestmentOpportunityScore: 60,
			OverallSentiment:           models.SentimentBullish,
			AnalyzedAt:                 time.Now(),
		},
		{
			NewsID:                     yesterday + "-001",
			NewsDate:                   yesterday,
			InvestmentOpportunityScore: 40,
			OverallSentiment:           models.SentimentBearish,
			AnalyzedAt:                 time.Now(),
		},
	}))

	overview, err := svc.Monthly(7)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalNews)
	assert.Equal(t, 3, overview.TotalAnalyses)
	require.Len(t, overview.Days, 2)

	// Newest date first
	assert.Equal(t, today, overview.Days[0].Date)
	assert.Equal(t, 2, overview.Days[0].NewsCount)
	assert.Equal(t, 2, overview.Days[0].AnalysisCount)
	assert.InDelta(t, 70.0, overview.Days[0].AvgScore, 0.001)
	assert.Equal(t, models.SentimentBullish, overview.Days[0].Sentiment)
	assert.Equal(t, []string{"新能源"}, overview.Days[0].TopIndustries)

	assert.Equal(t, yesterday, overview.Days[1].Date)
	assert.Equal(t, models.SentimentBearish, overview.Days[1].Sentiment)

	assert.InDelta(t, 60.0, overview.AvgOpportunityScore, 0.001)
	assert.Equal(t, 2, overview.SentimentDistribution[models.SentimentBullish])
	assert.Equal(t, 1, overview.SentimentDistribution[models.SentimentBearish])
	assert.Equal(t, []string{"新能源"}, overview.TopIndustries)
}

func TestMonthlyEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	overview, err := svc.Monthly(30)
	require.NoError(t, err)

	assert.Empty(t, overview.Days)
	assert.Zero(t, overview.TotalNews)
	assert.Zero(t, overview.AvgOpportunityScore)
	assert.NotNil(t, overview.TopIndustries)
}
