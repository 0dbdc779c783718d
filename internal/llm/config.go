package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Provider selects the wire protocol used to reach the model.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskAnalysis TaskType = "analysis"
	TaskPlan     TaskType = "plan"
	TaskIdeas    TaskType = "ideas"
	TaskChat     TaskType = "chat"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider      Provider
	LogCalls      bool
	Endpoint      string
	Model         string
	APIKey        string
	TimeoutMs     int
	MaxRetries    int
	RatePerMinute int // 0 disables throttling
	Tasks         map[TaskType]TaskConfig
}

const (
	defaultOpenAIEndpoint = "https://api.openai.com"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
)

// apiKeyEnv lists the variables consulted for the API key, in order.
var apiKeyEnv = []string{"PAUTA_LLM_API_KEY", "OPENAI_API_KEY", "API_KEY"}

// DefaultConfig returns an LLMConfig for the OpenAI provider without a key.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:      ProviderOpenAI,
		LogCalls:      false,
		Endpoint:      defaultOpenAIEndpoint,
		Model:         defaultOpenAIModel,
		TimeoutMs:     60000,
		MaxRetries:    1,
		RatePerMinute: 30,
		Tasks: map[TaskType]TaskConfig{
			TaskAnalysis: {Temperature: 0.7, MaxTokens: 4096, TimeoutMs: 90000},
			TaskPlan:     {Temperature: 0.7, MaxTokens: 6144, TimeoutMs: 120000},
			TaskIdeas:    {Temperature: 0.9, MaxTokens: 512, TimeoutMs: 30000},
			TaskChat:     {Temperature: 0.6, MaxTokens: 1024, TimeoutMs: 45000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("PAUTA_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if cfg.Provider == ProviderOllama {
		cfg.Endpoint = defaultOllamaEndpoint
		cfg.Model = defaultOllamaModel
	}
	if v := os.Getenv("PAUTA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PAUTA_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("PAUTA_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			cfg.APIKey = v
			break
		}
	}
	if v := os.Getenv("PAUTA_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PAUTA_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("PAUTA_LLM_RATE_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RatePerMinute = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskAnalysis, "PAUTA_LLM_ANALYSIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskPlan, "PAUTA_LLM_PLAN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskIdeas, "PAUTA_LLM_IDEAS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskChat, "PAUTA_LLM_CHAT_TIMEOUT_MS")

	return cfg
}

// Validate reports configuration that would make every call fail.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("%w: set PAUTA_LLM_API_KEY or OPENAI_API_KEY", ErrMissingAPIKey)
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unknown llm provider %q (want %s or %s)", c.Provider, ProviderOpenAI, ProviderOllama)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("llm endpoint is empty")
	}
	return nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
