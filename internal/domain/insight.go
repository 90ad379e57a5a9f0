package domain

import "fmt"

// InsightMode selects the tone and structure of a generated critique.
type InsightMode string

const (
	ModeStandard  InsightMode = "standard"
	ModeCritical  InsightMode = "critical"
	ModePrototype InsightMode = "prototype"
)

var validModes = map[InsightMode]bool{ModeStandard: true, ModeCritical: true, ModePrototype: true}

// String implements pflag.Value.
func (m *InsightMode) String() string {
	if m == nil || *m == "" {
		return string(ModeStandard)
	}
	return string(*m)
}

// Set implements pflag.Value.
func (m *InsightMode) Set(v string) error {
	mode := InsightMode(v)
	if !validModes[mode] {
		return fmt.Errorf("invalid mode %q (expected standard, critical or prototype)", v)
	}
	*m = mode
	return nil
}

// Type implements pflag.Value.
func (m *InsightMode) Type() string { return "mode" }

// PrototypingExperiment is a suggested low-cost test of a strategic assumption.
type PrototypingExperiment struct {
	Hypothesis string `json:"hypothesis" validate:"required"`
	Method     string `json:"method" validate:"required"`
	Metric     string `json:"metric" validate:"required"`
}

// Insight is the AI critique of one worksheet.
type Insight struct {
	Opportunities          []string                `json:"opportunities" validate:"required,dive,required"`
	Threats                []string                `json:"threats" validate:"required,dive,required"`
	StrategicAdvice        string                  `json:"strategicAdvice" validate:"required"`
	DataQualityScore       int                     `json:"dataQualityScore" validate:"min=0,max=100"`
	DataQualityFeedback    string                  `json:"dataQualityFeedback"`
	PrototypingExperiments []PrototypingExperiment `json:"prototypingExperiments,omitempty" validate:"omitempty,dive"`
}

// AggregatedStat is one topic frequency line in a comparative report.
type AggregatedStat struct {
	Label       string `json:"label" validate:"required"`
	Count       int    `json:"count" validate:"min=0"`
	Description string `json:"description"`
}

// ComparativeReport is the AI analysis of a batch of worksheets.
type ComparativeReport struct {
	ExecutiveSummary string           `json:"executiveSummary" validate:"required"`
	CommonPatterns   []string         `json:"commonPatterns" validate:"required"`
	Outliers         []string         `json:"outliers" validate:"required"`
	AggregatedStats  []AggregatedStat `json:"aggregatedStats" validate:"required,dive"`
	AggregateScore   int              `json:"aggregateScore" validate:"min=0,max=100"`
}

// ScoreBand labels a 0-100 data quality score.
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "Excellent Data Depth"
	case score >= 50:
		return "Moderate Data Depth"
	default:
		return "Insufficient Data"
	}
}
