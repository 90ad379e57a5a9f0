package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// Schema, when set, asks the provider to constrain output to this shape.
	Schema      *jsonschema.Definition
	SchemaName  string
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// resolved holds the effective per-call parameters.
type resolved struct {
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

func resolve(cfg LLMConfig, req GenerateRequest) resolved {
	taskCfg := cfg.Tasks[req.Task]
	r := resolved{
		temperature: taskCfg.Temperature,
		maxTokens:   taskCfg.MaxTokens,
		timeout:     time.Duration(cfg.TaskTimeout(req.Task)) * time.Millisecond,
	}
	if req.Temperature != nil {
		r.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		r.maxTokens = *req.MaxTokens
	}
	return r
}

// attemptFunc performs one provider round trip and returns text and model.
type attemptFunc func(ctx context.Context) (string, string, error)

// runAttempts executes do up to 1+MaxRetries times under a single deadline and
// reports the outcome to the observer.
func runAttempts(ctx context.Context, cfg LLMConfig, observer Observer, req GenerateRequest, do attemptFunc) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, resolve(cfg, req).timeout)
	defer cancel()

	var lastErr error
	attempts := 1 + cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, model, err := do(ctx)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     cfg.Model,
				LatencyMs: latency,
				Success:   true,
				Attempts:  i + 1,
			})
			return &GenerateResponse{
				Text:      text,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	var finalErr error
	switch {
	case ctx.Err() != nil:
		finalErr = ErrTimeout
	case isConnectionError(lastErr):
		finalErr = ErrUnavailable
	default:
		finalErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(finalErr),
		Attempts:  attempts,
	})
	return nil, finalErr
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "UPSTREAM"
	default:
		return "UNKNOWN"
	}
}
