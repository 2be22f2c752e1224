package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/models"
)

// analysisPayload is the decode target for model output. Pointer
// fields distinguish missing values from zero values so defaults only
// apply when the model omitted a field.
type analysisPayload struct {
	IndustryImpacts            []models.IndustryImpact `json:"industryImpacts"`
	CompanyImpacts             []models.CompanyImpact  `json:"companyImpacts"`
	FuturesImpacts             []models.FuturesImpact  `json:"futuresImpacts"`
	BondImpacts                []models.BondImpact     `json:"bondImpacts"`
	OverallSentiment           models.Sentiment        `json:"overallSentiment"`
	InvestmentOpportunityScore *int                    `json:"investmentOpportunityScore"`
	Summary                    string                  `json:"summary"`
}

// Analyzer scores the investment impact of news items via an LLM.
type Analyzer struct {
	completion interfaces.CompletionService
	logger     arbor.ILogger
}

// New creates an analyzer on top of a completion service.
func New(completion interfaces.CompletionService, logger arbor.ILogger) *Analyzer {
	return &Analyzer{
		completion: completion,
		logger:     logger,
	}
}

// Analyze scores one news item across the four asset classes. Errors
// are terminal for the item; the batch layer decides whether to skip.
func (a *Analyzer) Analyze(ctx context.Context, news *models.NewsItem) (*models.InvestmentAnalysis, error) {
	startTime := time.Now()
	a.logger.Debug().Str("news_id", news.ID).Str("title", news.Title).Msg("Starting news analysis")

	response, err := a.completion.Complete(ctx, systemPrompt, buildPrompt(news))
	if err != nil {
		return nil, fmt.Errorf("analysis of %s failed: %w", news.ID, err)
	}
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("analysis of %s failed: model returned empty response", news.ID)
	}

	candidate := extractJSON(response)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		// Second attempt after structural repair.
		if err2 := json.Unmarshal([]byte(repairJSON(candidate)), &payload); err2 != nil {
			a.logger.Warn().
				Str("news_id", news.ID).
				Int("response_length", len(response)).
				Msg("Model response was not valid JSON")
			return nil, fmt.Errorf("analysis of %s failed: unparseable model output: %w", news.ID, err)
		}
	}

	analysis := buildAnalysis(news, &payload, a.completion.ModelVersion())

	a.logger.Debug().
		Str("news_id", news.ID).
		Int("industries", len(analysis.IndustryImpacts)).
		Int("companies", len(analysis.CompanyImpacts)).
		Int("futures", len(analysis.FuturesImpacts)).
		Int("bonds", len(analysis.BondImpacts)).
		Dur("duration", time.Since(startTime)).
		Msg("News analysis completed")

	return analysis, nil
}

// buildAnalysis applies defaults for fields the model omitted: empty
// impact slices, neutral sentiment, opportunity score 50.
func buildAnalysis(news *models.NewsItem, payload *analysisPayload, modelVersion string) *models.InvestmentAnalysis {
	analysis := &models.InvestmentAnalysis{
		NewsID:           news.ID,
		NewsDate:         news.Date,
		NewsTitle:        news.Title,
		NewsContent:      news.Content,
		IndustryImpacts:  payload.IndustryImpacts,
		CompanyImpacts:   payload.CompanyImpacts,
		FuturesImpacts:   payload.FuturesImpacts,
		BondImpacts:      payload.BondImpacts,
		OverallSentiment: payload.OverallSentiment,
		Summary:          payload.Summary,
		AnalyzedAt:       time.Now(),
		ModelVersion:     modelVersion,
	}

	if analysis.IndustryImpacts == nil {
		analysis.IndustryImpacts = []models.IndustryImpact{}
	}
	if analysis.CompanyImpacts == nil {
		analysis.CompanyImpacts = []models.CompanyImpact{}
	}
	if analysis.FuturesImpacts == nil {
		analysis.FuturesImpacts = []models.FuturesImpact{}
	}
	if analysis.BondImpacts == nil {
		analysis.BondImpacts = []models.BondImpact{}
	}
	if analysis.OverallSentiment == "" {
		analysis.OverallSentiment = models.SentimentNeutral
	}
	if payload.InvestmentOpportunityScore != nil {
		analysis.InvestmentOpportunityScore = *payload.InvestmentOpportunityScore
	} else {
		analysis.InvestmentOpportunityScore = 50
	}

	return analysis
}
