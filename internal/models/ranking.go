package models

import "time"

// RecommendationLevel is the tier a ranked stock falls into based on
// its impact score.
type RecommendationLevel string

const (
	RecommendationStrongBuy      RecommendationLevel = "strong_buy"
	RecommendationBuy            RecommendationLevel = "buy"
	RecommendationNeutral        RecommendationLevel = "neutral"
	RecommendationNotRecommended RecommendationLevel = "not_recommended"
)

// RecommendationLevelForScore maps an impact score to its tier:
// >=85 strong_buy, >=75 buy, >=50 neutral, otherwise not_recommended.
func RecommendationLevelForScore(score int) RecommendationLevel {
	switch {
	case score >= 85:
		return RecommendationStrongBuy
	case score >= 75:
		return RecommendationBuy
	case score >= 50:
		return RecommendationNeutral
	default:
		return RecommendationNotRecommended
	}
}

// RecommendationLabel returns the Chinese display label for a tier.
func RecommendationLabel(level RecommendationLevel) string {
	switch level {
	case RecommendationStrongBuy:
		return "强烈推荐"
	case RecommendationBuy:
		return "推荐"
	case RecommendationNeutral:
		return "中性"
	default:
		return "不推荐"
	}
}

// RankedStock is a company impact placed in a day's ranking. Rank is
// dense (1..N) across the whole day, not per tier.
type RankedStock struct {
	CompanyImpact
	Rank                int                 `json:"rank"`
	RecommendationLevel RecommendationLevel `json:"recommendationLevel"`
	RecommendationLabel string              `json:"recommendationLabel"`
	NewsID              string              `json:"newsId,omitempty"`
	NewsTitle           string              `json:"newsTitle,omitempty"`
}

// DailyStockRanking buckets a day's ranked stocks by recommendation
// tier. Each bucket preserves overall rank order.
type DailyStockRanking struct {
	Date           string        `json:"date"`
	TotalStocks    int           `json:"totalStocks"`
	StrongBuy      []RankedStock `json:"strongBuy"`
	Buy            []RankedStock `json:"buy"`
	Neutral        []RankedStock `json:"neutral"`
	NotRecommended []RankedStock `json:"notRecommended"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// RankingStats summarizes tier counts and rounded percentages for a
// ranking. Percentages are 0 when the ranking is empty.
type RankingStats struct {
	Total                 int `json:"total"`
	StrongBuyCount        int `json:"strongBuyCount"`
	BuyCount              int `json:"buyCount"`
	NeutralCount          int `json:"neutralCount"`
	NotRecommendedCount   int `json:"notRecommendedCount"`
	StrongBuyPercent      int `json:"strongBuyPercent"`
	BuyPercent            int `json:"buyPercent"`
	NeutralPercent        int `json:"neutralPercent"`
	NotRecommendedPercent int `json:"notRecommendedPercent"`
}
