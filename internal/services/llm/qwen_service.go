package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
)

// QwenService implements CompletionService against the DashScope
// OpenAI-compatible chat completions endpoint.
type QwenService struct {
	config     *common.QwenConfig
	logger     arbor.ILogger
	httpClient *http.Client
	timeout    time.Duration
}

type qwenChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type qwenChatRequest struct {
	Model       string            `json:"model"`
	Messages    []qwenChatMessage `json:"messages"`
	Temperature float32           `json:"temperature,omitempty"`
}

type qwenChatResponse struct {
	Choices []struct {
		Message qwenChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewQwenService creates a new Qwen completion service.
func NewQwenService(config *common.QwenConfig, logger arbor.ILogger) (*QwenService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Qwen API key is required (set via DASHSCOPE_API_KEY, NEWSLENS_QWEN_API_KEY, or qwen.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "qwen-max"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	service := &QwenService{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}

	logger.Debug().
		Str("model", config.Model).
		Str("base_url", config.BaseURL).
		Dur("timeout", timeout).
		Msg("Qwen LLM service initialized")

	return service, nil
}

// Complete generates a completion for the given prompts.
func (s *QwenService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("user prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := make([]qwenChatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, qwenChatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, qwenChatMessage{Role: "user", Content: userPrompt})

	payload, err := json.Marshal(qwenChatRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimSuffix(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	startTime := time.Now()
	s.logger.Debug().
		Str("model", s.config.Model).
		Int("prompt_length", len(userPrompt)).
		Msg("Starting Qwen chat completion")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Qwen API call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Qwen response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Qwen API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp qwenChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode Qwen response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("Qwen API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response generated from Qwen API")
	}

	response := chatResp.Choices[0].Message.Content
	s.logger.Debug().
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Qwen chat completion completed")

	return response, nil
}

// ModelVersion returns the configured model identifier.
func (s *QwenService) ModelVersion() string {
	return s.config.Model
}

// Close releases resources.
func (s *QwenService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
