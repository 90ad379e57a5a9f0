package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/envioscan/internal/domain"
)

// MarshalProgress renders state as a standalone, pretty-printed progress file.
func MarshalProgress(state *domain.AnalysisState) ([]byte, error) {
	if state == nil {
		return nil, errors.New("marshaling nil analysis state")
	}
	s := state.Clone()
	s.Normalize()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling progress file: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalProgress parses a progress file. The whole file must be JSON.
func UnmarshalProgress(data []byte) (*domain.AnalysisState, error) {
	return DecodeStrict(string(data))
}

// ProgressFileName is the default save name for the given day.
func ProgressFileName(t time.Time) string {
	return fmt.Sprintf("envioscan_progress_%s.json", t.Format("2006-01-02"))
}
