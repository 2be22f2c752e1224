package models

import "time"

// ImpactType classifies the direction of an impact on an asset.
type ImpactType string

const (
	ImpactPositive ImpactType = "positive"
	ImpactNegative ImpactType = "negative"
	ImpactNeutral  ImpactType = "neutral"
)

// Sentiment is the overall market read of a news item.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
	SentimentMixed   Sentiment = "mixed"
)

// IndustryImpact scores the effect of a news item on one industry.
// ImpactScore is 0-100, Confidence is 0-1.
type IndustryImpact struct {
	IndustryName string     `json:"industryName"`
	IndustryCode string     `json:"industryCode,omitempty"`
	ImpactScore  int        `json:"impactScore"`
	ImpactType   ImpactType `json:"impactType"`
	Reasoning    string     `json:"reasoning"`
	Keywords     []string   `json:"keywords"`
	Confidence   float64    `json:"confidence"`
}

// CompanyImpact scores the effect on one listed company. StockCode is
// the exchange ticker (e.g. "600519") when the model can identify it.
type CompanyImpact struct {
	CompanyName          string     `json:"companyName"`
	StockCode            string     `json:"stockCode,omitempty"`
	Exchange             string     `json:"exchange,omitempty"`
	ImpactScore          int        `json:"impactScore"`
	ImpactType           ImpactType `json:"impactType"`
	Reasoning            string     `json:"reasoning"`
	RelatedIndustries    []string   `json:"relatedIndustries"`
	Confidence           float64    `json:"confidence"`
	EstimatedPriceImpact string     `json:"estimatedPriceImpact,omitempty"`
}

// FuturesImpact scores the effect on one futures commodity.
type FuturesImpact struct {
	Commodity      string     `json:"commodity"`
	CommodityCode  string     `json:"commodityCode,omitempty"`
	Exchange       string     `json:"exchange,omitempty"`
	ImpactScore    int        `json:"impactScore"`
	ImpactType     ImpactType `json:"impactType"`
	Reasoning      string     `json:"reasoning"`
	PriceDirection string     `json:"priceDirection,omitempty"`
	Confidence     float64    `json:"confidence"`
}

// BondImpact scores the effect on one bond category.
type BondImpact struct {
	BondType       string     `json:"bondType"`
	ImpactScore    int        `json:"impactScore"`
	ImpactType     ImpactType `json:"impactType"`
	Reasoning      string     `json:"reasoning"`
	YieldDirection string     `json:"yieldDirection,omitempty"`
	RiskLevel      string     `json:"riskLevel,omitempty"`
	Confidence     float64    `json:"confidence"`
}

// InvestmentAnalysis is the full four-dimension impact assessment of
// one news item, keyed by the news id.
type InvestmentAnalysis struct {
	NewsID                     string           `json:"newsId"`
	NewsDate                   string           `json:"newsDate"`
	NewsTitle                  string           `json:"newsTitle"`
	NewsContent                string           `json:"newsContent,omitempty"`
	IndustryImpacts            []IndustryImpact `json:"industryImpacts"`
	CompanyImpacts             []CompanyImpact  `json:"companyImpacts"`
	FuturesImpacts             []FuturesImpact  `json:"futuresImpacts"`
	BondImpacts                []BondImpact     `json:"bondImpacts"`
	OverallSentiment           Sentiment        `json:"overallSentiment"`
	InvestmentOpportunityScore int              `json:"investmentOpportunityScore"`
	Summary                    string           `json:"summary"`
	AnalyzedAt                 time.Time        `json:"analyzedAt"`
	ModelVersion               string           `json:"modelVersion,omitempty"`
}

// AnalysisSummary is the per-date digest served on the daily dashboard:
// top-scored impacts per asset class and the majority sentiment.
type AnalysisSummary struct {
	Date             string           `json:"date"`
	TotalNews        int              `json:"totalNews"`
	AnalyzedNews     int              `json:"analyzedNews"`
	TopIndustries    []IndustryImpact `json:"topIndustries"`
	TopCompanies     []CompanyImpact  `json:"topCompanies"`
	TopFutures       []FuturesImpact  `json:"topFutures"`
	TopBonds         []BondImpact     `json:"topBonds"`
	OverallSentiment Sentiment        `json:"overallSentiment"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
