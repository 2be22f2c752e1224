package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/models"
)

func company(name, code string, score int) models.CompanyImpact {
	return models.CompanyImpact{
		CompanyName: name,
		StockCode:   code,
		ImpactScore: score,
		ImpactType:  models.ImpactPositive,
	}
}

func analysisWith(newsID string, impacts ...models.CompanyImpact) *models.InvestmentAnalysis {
	return &models.InvestmentAnalysis{
		NewsID:         newsID,
		NewsDate:       "2025-12-06",
		CompanyImpacts: impacts,
	}
}

func TestRecommendationLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  models.RecommendationLevel
	}{
		{100, models.RecommendationStrongBuy},
		{85, models.RecommendationStrongBuy},
		{84, models.RecommendationBuy},
		{75, models.RecommendationBuy},
		{74, models.RecommendationNeutral},
		{50, models.RecommendationNeutral},
		{49, models.RecommendationNotRecommended},
		{0, models.RecommendationNotRecommended},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.RecommendationLevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestBuildDailyRankingEmpty(t *testing.T) {
	ranking := BuildDailyRanking("2025-12-06", nil)

	assert.Equal(t, 0, ranking.TotalStocks)
	assert.NotNil(t, ranking.StrongBuy)
	assert.Empty(t, ranking.StrongBuy)
	assert.Empty(t, ranking.NotRecommended)

	stats := Stats(ranking)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.StrongBuyPercent)
}

func TestBuildDailyRankingDedupeKeepsHigherScore(t *testing.T) {
	analyses := []*models.InvestmentAnalysis{
		analysisWith("2025-12-06-001", company("平安银行", "000001", 70)),
		analysisWith("2025-12-06-002", company("平安银行", "000001", 90)),
	}

	ranking := BuildDailyRanking("2025-12-06", analyses)

	require.Equal(t, 1, ranking.TotalStocks)
	require.Len(t, ranking.StrongBuy, 1)
	assert.Equal(t, 90, ranking.StrongBuy[0].ImpactScore)
	assert.Equal(t, "2025-12-06-002", ranking.StrongBuy[0].NewsID)
}

func TestBuildDailyRankingDedupeFirstWinsTies(t *testing.T) {
	analyses := []*models.InvestmentAnalysis{
		analysisWith("2025-12-06-001", company("平安银行", "000001", 80)),
		analysisWith("2025-12-06-002", company("平安银行", "000001", 80)),
	}

	ranking := BuildDailyRanking("2025-12-06", analyses)

	require.Equal(t, 1, ranking.TotalStocks)
	assert.Equal(t, "2025-12-06-001", ranking.Buy[0].NewsID)
}

func TestBuildDailyRankingDedupeFallsBackToCompanyName(t *testing.T) {
	// No stock code: company name is the dedup key
	analyses := []*models.InvestmentAnalysis{
		analysisWith("2025-12-06-001",
			company("某新能源公司", "", 60),
			company("某新能源公司", "", 88),
			company("另一家公司", "", 55),
		),
	}

	ranking := BuildDailyRanking("2025-12-06", analyses)

	assert.Equal(t, 2, ranking.TotalStocks)
	require.Len(t, ranking.StrongBuy, 1)
	assert.Equal(t, 88, ranking.StrongBuy[0].ImpactScore)
}

func TestBuildDailyRankingOrderAndBuckets(t *testing.T) {
	analyses := []*models.InvestmentAnalysis{
		analysisWith("2025-12-06-001",
			company("甲", "600001", 92),
			company("乙", "600002", 85),
			company("丙", "600003", 80),
			company("丁", "600004", 75),
			company("戊", "600005", 60),
			company("己", "600006", 50),
			company("庚", "600007", 49),
			company("辛", "600008", 10),
		),
	}

	ranking := BuildDailyRanking("2025-12-06", analyses)

	assert.Equal(t, 8, ranking.TotalStocks)
	assert.Len(t, ranking.StrongBuy, 2)
	assert.Len(t, ranking.Buy, 2)
	assert.Len(t, ranking.Neutral, 2)
	assert.Len(t, ranking.NotRecommended, 2)

	// Dense ranks across all tiers, preserved inside buckets
	assert.Equal(t, 1, ranking.StrongBuy[0].Rank)
	assert.Equal(t, 2, ranking.StrongBuy[1].Rank)
	assert.Equal(t, 3, ranking.Buy[0].Rank)
	assert.Equal(t, 7, ranking.NotRecommended[0].Rank)
	assert.Equal(t, 8, ranking.NotRecommended[1].Rank)

	// Chinese tier labels
	assert.Equal(t, "强烈推荐", ranking.StrongBuy[0].RecommendationLabel)
	assert.Equal(t, "推荐", ranking.Buy[0].RecommendationLabel)
	assert.Equal(t, "中性", ranking.Neutral[0].RecommendationLabel)
	assert.Equal(t, "不推荐", ranking.NotRecommended[0].RecommendationLabel)
}

func TestBuildDailyRankingStableSortPreservesInputOrderOnTies(t *testing.T) {
	analyses := []*models.InvestmentAnalysis{
		analysisWith("2025-12-06-001", company("甲", "600001", 80)),
		analysisWith("2025-12-06-002", company("乙", "600002", 80)),
	}

	ranking := BuildDailyRanking("2025-12-06", analyses)

	require.Len(t, ranking.Buy, 2)
	assert.Equal(t, "甲", ranking.Buy[0].CompanyName)
	assert.Equal(t, "乙", ranking.Buy[1].CompanyName)
}

func TestStats(t *testing.T) {
	analyses := []*models.InvestmentAnalysis{
		analysisWith("2025-12-06-001",
			company("甲", "600001", 90),
			company("乙", "600002", 80),
			company("丙", "600003", 60),
			company("丁", "600004", 30),
		),
	}

	stats := Stats(BuildDailyRanking("2025-12-06", analyses))

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.StrongBuyCount)
	assert.Equal(t, 1, stats.BuyCount)
	assert.Equal(t, 1, stats.NeutralCount)
	assert.Equal(t, 1, stats.NotRecommendedCount)
	assert.Equal(t, 25, stats.StrongBuyPercent)
	assert.Equal(t, 25, stats.BuyPercent)
}
