package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient against the OpenAI chat completions API
// or any gateway that speaks it.
type openAIClient struct {
	cfg      LLMConfig
	api      *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by go-openai. A non-empty
// cfg.Endpoint replaces the default base URL and must include the /v1 suffix.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" && cfg.Endpoint != DefaultConfig().Endpoint {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}
	return &openAIClient{
		cfg:      cfg,
		api:      openai.NewClientWithConfig(clientCfg),
		observer: observer,
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	p := resolve(c.cfg, req)

	chat := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(p.temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}
	// Reasoning models take MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(c.cfg.Model) {
		chat.MaxCompletionTokens = p.maxTokens
		chat.Temperature = 0
	} else {
		chat.MaxTokens = p.maxTokens
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = string(req.Task)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: req.Schema,
			},
		}
	} else {
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return runAttempts(ctx, c.cfg, c.observer, req, func(ctx context.Context) (string, string, error) {
		resp, err := c.api.CreateChatCompletion(ctx, chat)
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", "", errors.New("chat completion returned no choices")
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := c.api.ListModels(ctx)
	return err == nil
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
