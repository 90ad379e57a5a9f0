package testutil

import (
	"time"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/google/uuid"
)

// State options
type StateOption func(*domain.AnalysisState)

func WithAuthor(a string) StateOption {
	return func(s *domain.AnalysisState) {
		s.Author = a
	}
}

func WithDescription(d string) StateOption {
	return func(s *domain.AnalysisState) {
		s.Description = d
	}
}

func WithField(c domain.Category, field, value string) StateOption {
	return func(s *domain.AnalysisState) {
		s.SetField(c, field, value)
	}
}

// NewTestState returns a catalog-shaped state with a few fields filled in.
func NewTestState(opts ...StateOption) *domain.AnalysisState {
	s := domain.NewAnalysisState()
	s.Author = "Test Author"
	s.Description = "Regional bakery chain planning a delivery service."
	s.SetField(domain.CategoryKeyTrends, "technology", "Ordering apps")
	s.SetField(domain.CategoryMarketForces, "segments", "Office workers")
	s.SetField(domain.CategoryIndustryForces, "competitors", "Supermarket bakeries")
	s.SetField(domain.CategoryMacroEconomic, "resources", "Flour prices rising")
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchReport options
type BatchOption func(*domain.BatchReport)

func WithSource(src string) BatchOption {
	return func(b *domain.BatchReport) {
		b.Source = src
	}
}

func WithState(s *domain.AnalysisState) BatchOption {
	return func(b *domain.BatchReport) {
		b.State = s
	}
}

func NewTestBatchReport(opts ...BatchOption) *domain.BatchReport {
	b := &domain.BatchReport{
		ID:      uuid.New().String(),
		Source:  "report.pdf",
		Format:  "pdf",
		State:   NewTestState(),
		AddedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
