package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
)

// ClaudeService implements CompletionService using the Anthropic API.
type ClaudeService struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    anthropic.Client
	timeout   time.Duration
	maxTokens int
}

// NewClaudeService creates a new Claude completion service.
func NewClaudeService(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set via ANTHROPIC_API_KEY, NEWSLENS_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "claude-sonnet-4-20250514"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.APIKey),
	)

	service := &ClaudeService{
		config:    config,
		logger:    logger,
		client:    client,
		timeout:   timeout,
		maxTokens: maxTokens,
	}

	logger.Debug().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Float32("temperature", config.Temperature).
		Int("max_tokens", maxTokens).
		Msg("Claude LLM service initialized")

	return service, nil
}

// Complete generates a completion for the given prompts.
func (s *ClaudeService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("user prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	startTime := time.Now()
	s.logger.Debug().
		Str("model", s.config.Model).
		Int("prompt_length", len(userPrompt)).
		Msg("Starting Claude chat completion")

	resp, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	// Extract text from response
	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	s.logger.Debug().
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Claude chat completion completed")

	return response.String(), nil
}

// ModelVersion returns the configured model identifier.
func (s *ClaudeService) ModelVersion() string {
	return s.config.Model
}

// Close releases resources.
func (s *ClaudeService) Close() error {
	return nil
}
