package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskInsight TaskType = "insight"
	TaskCompare TaskType = "compare"
)

// Provider selects the transport used for generation.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
	TimeoutMs   int     `yaml:"timeoutMs"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool                    `yaml:"enabled"`
	LogCalls   bool                    `yaml:"logCalls"`
	Provider   Provider                `yaml:"provider" validate:"oneof=ollama openai"`
	Endpoint   string                  `yaml:"endpoint"`
	Model      string                  `yaml:"model" validate:"required"`
	APIKey     string                  `yaml:"apiKey"`
	TimeoutMs  int                     `yaml:"timeoutMs" validate:"gt=0"`
	MaxRetries int                     `yaml:"maxRetries" validate:"gte=0"`
	Tasks      map[TaskType]TaskConfig `yaml:"tasks"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default. Calls are not retried.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskInsight: {Temperature: 0.4, MaxTokens: 2048, TimeoutMs: 60000},
			TaskCompare: {Temperature: 0.3, MaxTokens: 4096, TimeoutMs: 90000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays ENVIOSCAN_LLM_* environment variables onto cfg.
// Malformed values are ignored.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("ENVIOSCAN_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ENVIOSCAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ENVIOSCAN_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if v := os.Getenv("ENVIOSCAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ENVIOSCAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ENVIOSCAN_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("ENVIOSCAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ENVIOSCAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskInsight, "ENVIOSCAN_LLM_INSIGHT_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskCompare, "ENVIOSCAN_LLM_COMPARE_TIMEOUT_MS")
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
	if cfg.Tasks == nil {
		cfg.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
