package domain

import "time"

// BatchReport is one previously exported worksheet queued for comparison.
type BatchReport struct {
	ID      string
	Source  string // file name or object key the report came from
	Format  string // "pdf" or "json"
	State   *AnalysisState
	AddedAt time.Time
}

// Author returns the worksheet author, or "" when the state is missing.
func (b *BatchReport) Author() string {
	if b == nil || b.State == nil {
		return ""
	}
	return b.State.Author
}

// States returns the worksheet states of a batch in order.
func States(batch []*BatchReport) []*AnalysisState {
	out := make([]*AnalysisState, 0, len(batch))
	for _, b := range batch {
		if b != nil && b.State != nil {
			out = append(out, b.State)
		}
	}
	return out
}
