// Package insight asks a language model to critique one worksheet or compare
// a batch of them. A failed call is reported as such; there is no synthetic
// fallback result.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/llm"
)

var (
	// ErrTransport wraps any failure to obtain a model response.
	ErrTransport = errors.New("ai service request failed")

	// ErrEmptyBatch is returned by Compare when there is nothing to compare.
	ErrEmptyBatch = errors.New("no reports to compare")
)

// Service produces AI insight for worksheets.
type Service interface {
	// Generate critiques one worksheet.
	Generate(ctx context.Context, state *domain.AnalysisState, mode domain.InsightMode) (*domain.Insight, error)

	// Compare analyses a batch of worksheets together.
	Compare(ctx context.Context, states []*domain.AnalysisState) (*domain.ComparativeReport, error)
}

type service struct {
	client llm.LLMClient
}

// NewService creates a Service backed by an LLM client.
func NewService(client llm.LLMClient) Service {
	return &service{client: client}
}

func (s *service) Generate(ctx context.Context, state *domain.AnalysisState, mode domain.InsightMode) (*domain.Insight, error) {
	if state == nil {
		return nil, errors.New("no worksheet to analyze")
	}
	if mode == "" {
		mode = domain.ModeStandard
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding worksheet: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskInsight,
		SystemPrompt: systemPromptFor(mode),
		UserPrompt:   "Worksheet data:\n\n" + string(data),
		Schema:       insightSchema(mode == domain.ModePrototype),
		SchemaName:   "environment_insight",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	ins, err := llm.ExtractJSON(resp.Text, validateInsight(mode))
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (s *service) Compare(ctx context.Context, states []*domain.AnalysisState) (*domain.ComparativeReport, error) {
	if len(states) == 0 {
		return nil, ErrEmptyBatch
	}

	data, err := json.MarshalIndent(compactBatch(states), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding batch: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCompare,
		SystemPrompt: compareSystemPrompt,
		UserPrompt:   fmt.Sprintf("%d datasets:\n\n%s", len(states), data),
		Schema:       compareSchema(),
		SchemaName:   "comparative_report",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	report, err := llm.ExtractJSON(resp.Text, validateReport)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func systemPromptFor(mode domain.InsightMode) string {
	switch mode {
	case domain.ModeCritical:
		return insightSystemBase + criticalAddendum
	case domain.ModePrototype:
		return insightSystemBase + prototypeAddendum
	default:
		return insightSystemBase
	}
}

// batchEntry is the per-report shape sent for comparison.
type batchEntry struct {
	ID          int                          `json:"id"`
	Author      string                       `json:"author"`
	Description string                       `json:"description"`
	Data        map[string]map[string]string `json:"data"`
}

// compactBatch numbers reports from 1 and drops blank and non-catalog
// fields to keep the prompt small.
func compactBatch(states []*domain.AnalysisState) []batchEntry {
	out := make([]batchEntry, 0, len(states))
	for i, st := range states {
		e := batchEntry{
			ID:          i + 1,
			Author:      st.Author,
			Description: st.Description,
			Data:        make(map[string]map[string]string, len(domain.AllCategories)),
		}
		for _, spec := range domain.Categories() {
			fields := make(map[string]string)
			for _, f := range spec.Fields {
				if v := strings.TrimSpace(st.Field(spec.ID, f.ID)); v != "" {
					fields[f.ID] = v
				}
			}
			e.Data[string(spec.ID)] = fields
		}
		out = append(out, e)
	}
	return out
}
