package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/interfaces"
)

// NewCompletionService creates the completion provider selected by
// llm.default_provider.
func NewCompletionService(config *common.Config, logger arbor.ILogger) (interfaces.CompletionService, error) {
	switch config.LLM.DefaultProvider {
	case "qwen":
		return NewQwenService(&config.Qwen, logger)
	case "claude":
		return NewClaudeService(&config.Claude, logger)
	case "gemini":
		return NewGeminiService(&config.Gemini, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.LLM.DefaultProvider)
	}
}
