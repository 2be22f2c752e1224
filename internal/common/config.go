package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Scraper     ScraperConfig   `toml:"scraper"`
	Analyzer    AnalyzerConfig  `toml:"analyzer"`
	LLM         LLMConfig       `toml:"llm"`
	Qwen        QwenConfig      `toml:"qwen"`
	Claude      ClaudeConfig    `toml:"claude"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Type   string       `toml:"type" validate:"oneof=badger memory"` // "badger" or "memory"
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// ScraperConfig controls category feed collection and article
// extraction. Delay and timeout values are duration strings ("200ms").
type ScraperConfig struct {
	UserAgent        string   `toml:"user_agent"`
	CategoryURLs     []string `toml:"category_urls" validate:"min=1"`
	SiteOrigin       string   `toml:"site_origin" validate:"required,url"`
	MaxPages         int      `toml:"max_pages" validate:"min=1"`       // List pages scanned per category
	PageDelay        string   `toml:"page_delay"`                       // Pacing between list page fetches
	DetailBatchSize  int      `toml:"detail_batch_size" validate:"min=1"`
	DetailBatchDelay string   `toml:"detail_batch_delay"` // Pacing between detail batches
	RequestTimeout   string   `toml:"request_timeout"`
	MinContentLength int      `toml:"min_content_length"` // Fallback extraction threshold
}

// AnalyzerConfig controls LLM batch analysis pacing.
type AnalyzerConfig struct {
	RequestInterval string `toml:"request_interval"` // Pacing between sequential LLM calls
}

type LLMConfig struct {
	DefaultProvider string `toml:"default_provider" validate:"oneof=qwen claude gemini"`
}

// QwenConfig configures the DashScope OpenAI-compatible endpoint.
type QwenConfig struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

// SchedulerConfig controls the daily update cron job.
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// NewDefaultConfig returns a config with production-ready defaults.
// The defaults target the NDRC news feeds the original deployment
// scraped.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Type: "badger",
			Badger: BadgerConfig{
				Path:           "./data/newslens",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Scraper: ScraperConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			CategoryURLs: []string{
				"https://www.ndrc.gov.cn/xxgk/jd/jd/",
				"https://www.ndrc.gov.cn/xwdt/xwfb/",
				"https://www.ndrc.gov.cn/xwdt/ztzl/",
			},
			SiteOrigin:       "https://www.ndrc.gov.cn",
			MaxPages:         10,
			PageDelay:        "200ms",
			DetailBatchSize:  5,
			DetailBatchDelay: "500ms",
			RequestTimeout:   "30s",
			MinContentLength: 100,
		},
		Analyzer: AnalyzerConfig{
			RequestInterval: "2s",
		},
		LLM: LLMConfig{
			DefaultProvider: "qwen",
		},
		Qwen: QwenConfig{
			BaseURL:     "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Model:       "qwen-max",
			Temperature: 0.3,
			Timeout:     "120s",
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   8192,
			Temperature: 0.3,
			Timeout:     "120s",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.3,
			Timeout:     "120s",
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Schedule: "0 1 * * *", // 01:00 daily, analyzes the previous Beijing day
		},
	}
}

// LoadFromFiles loads configuration from defaults, then merges each
// config file in order (later files override earlier ones), then
// applies environment variable overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies NEWSLENS_* environment variables on top of
// file configuration.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NEWSLENS_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("NEWSLENS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("NEWSLENS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if storageType := os.Getenv("NEWSLENS_STORAGE_TYPE"); storageType != "" {
		config.Storage.Type = storageType
	}
	if badgerPath := os.Getenv("NEWSLENS_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("NEWSLENS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// LLM provider configuration
	if provider := os.Getenv("NEWSLENS_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = provider
	}
	if key := os.Getenv("NEWSLENS_QWEN_API_KEY"); key != "" {
		config.Qwen.APIKey = key
	} else if key := os.Getenv("DASHSCOPE_API_KEY"); key != "" {
		config.Qwen.APIKey = key
	}
	if key := os.Getenv("NEWSLENS_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("NEWSLENS_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}

	// Scheduler configuration
	if enabled := os.Getenv("NEWSLENS_SCHEDULER_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Scheduler.Enabled = b
		}
	}
	if schedule := os.Getenv("NEWSLENS_SCHEDULER_SCHEDULE"); schedule != "" {
		config.Scheduler.Schedule = schedule
	}
}

// ApplyFlagOverrides applies command-line flag values (highest
// priority). Zero values mean the flag was not set.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration for structural errors using
// struct tags, then verifies the cron schedule parses.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Scheduler.Schedule != "" {
		if _, err := cron.ParseStandard(c.Scheduler.Schedule); err != nil {
			return fmt.Errorf("invalid scheduler schedule %q: %w", c.Scheduler.Schedule, err)
		}
	}

	return nil
}
