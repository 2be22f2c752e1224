package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/ternarybob/newslens/internal/models"
)

// BuildDailyRanking flattens the company impacts of a day's analyses
// into a deduplicated, ranked, tier-bucketed view.
//
// Dedup key is stock code when present, else company name. On key
// collision the strictly higher score wins; ties keep the first
// occurrence. Sorting is stable descending by score, so equal-score
// stocks keep their flattening order. Ranks are dense (1..N) and the
// tier buckets preserve rank order.
func BuildDailyRanking(date string, analyses []*models.InvestmentAnalysis) *models.DailyStockRanking {
	stocks := dedupeStocks(flattenStocks(analyses))

	sort.SliceStable(stocks, func(i, j int) bool {
		return stocks[i].ImpactScore > stocks[j].ImpactScore
	})

	ranking := &models.DailyStockRanking{
		Date:           date,
		TotalStocks:    len(stocks),
		StrongBuy:      []models.RankedStock{},
		Buy:            []models.RankedStock{},
		Neutral:        []models.RankedStock{},
		NotRecommended: []models.RankedStock{},
		UpdatedAt:      time.Now(),
	}

	for i := range stocks {
		stocks[i].Rank = i + 1
		level := models.RecommendationLevelForScore(stocks[i].ImpactScore)
		stocks[i].RecommendationLevel = level
		stocks[i].RecommendationLabel = models.RecommendationLabel(level)

		switch level {
		case models.RecommendationStrongBuy:
			ranking.StrongBuy = append(ranking.StrongBuy, stocks[i])
		case models.RecommendationBuy:
			ranking.Buy = append(ranking.Buy, stocks[i])
		case models.RecommendationNeutral:
			ranking.Neutral = append(ranking.Neutral, stocks[i])
		default:
			ranking.NotRecommended = append(ranking.NotRecommended, stocks[i])
		}
	}

	return ranking
}

// Stats computes tier counts and rounded percentages for a ranking.
func Stats(ranking *models.DailyStockRanking) *models.RankingStats {
	stats := &models.RankingStats{
		Total:               ranking.TotalStocks,
		StrongBuyCount:      len(ranking.StrongBuy),
		BuyCount:            len(ranking.Buy),
		NeutralCount:        len(ranking.Neutral),
		NotRecommendedCount: len(ranking.NotRecommended),
	}

	if stats.Total == 0 {
		return stats
	}

	stats.StrongBuyPercent = percent(stats.StrongBuyCount, stats.Total)
	stats.BuyPercent = percent(stats.BuyCount, stats.Total)
	stats.NeutralPercent = percent(stats.NeutralCount, stats.Total)
	stats.NotRecommendedPercent = percent(stats.NotRecommendedCount, stats.Total)

	return stats
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// flattenStocks collects every company impact across the analyses,
// carrying the source news id and title for display.
func flattenStocks(analyses []*models.InvestmentAnalysis) []models.RankedStock {
	var stocks []models.RankedStock
	for _, analysis := range analyses {
		for _, impact := range analysis.CompanyImpacts {
			stocks = append(stocks, models.RankedStock{
				CompanyImpact: impact,
				NewsID:        analysis.NewsID,
				NewsTitle:     analysis.NewsTitle,
			})
		}
	}
	return stocks
}

// dedupeStocks keeps one entry per stock, preferring a strictly higher
// score. The first occurrence wins ties, preserving input order.
func dedupeStocks(stocks []models.RankedStock) []models.RankedStock {
	index := make(map[string]int)
	result := make([]models.RankedStock, 0, len(stocks))

	for _, stock := range stocks {
		key := stock.StockCode
		if key == "" {
			key = stock.CompanyName
		}

		if pos, ok := index[key]; ok {
			if stock.ImpactScore > result[pos].ImpactScore {
				result[pos] = stock
			}
			continue
		}

		index[key] = len(result)
		result = append(result, stock)
	}

	return result
}
