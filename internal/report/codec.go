// Package report encodes worksheet state into the text payload carried in an
// exported document's Subject metadata, and decodes such payloads back out of
// untrusted files.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
)

// Kind classifies a decode failure.
type Kind string

const (
	KindParse         Kind = "parse_error"
	KindShapeMismatch Kind = "shape_mismatch"
)

var (
	// ErrParse matches decode failures where no JSON could be recovered.
	ErrParse = errors.New("payload is not valid JSON")

	// ErrShapeMismatch matches decode failures where the JSON lacks the
	// category keys of an analysis state.
	ErrShapeMismatch = errors.New("payload is not an analysis state")
)

// DecodeError is returned for every Decode failure.
type DecodeError struct {
	Kind    Kind
	Missing []string // category keys absent, for KindShapeMismatch
	Err     error    // underlying JSON error, for KindParse
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindShapeMismatch:
		if len(e.Missing) > 0 {
			return fmt.Sprintf("%s: missing %s", ErrShapeMismatch, strings.Join(e.Missing, ", "))
		}
		return ErrShapeMismatch.Error()
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", ErrParse, e.Err)
		}
		return ErrParse.Error()
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets callers match with errors.Is(err, ErrParse) or ErrShapeMismatch.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrParse:
		return e.Kind == KindParse
	case ErrShapeMismatch:
		return e.Kind == KindShapeMismatch
	}
	return false
}

// Encode serializes state as compact JSON. Nil category maps are written as
// empty objects so the payload always decodes.
func Encode(state *domain.AnalysisState) (string, error) {
	if state == nil {
		return "", errors.New("encoding nil analysis state")
	}
	s := state.Clone()
	s.Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encoding analysis state: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode recovers an analysis state from raw metadata text. If raw is not
// JSON, the span from the first '{' to the last '}' is tried once. The result
// must be an object holding all four category keys.
func Decode(raw string) (*domain.AnalysisState, error) {
	return decode(raw, true)
}

// DecodeStrict is Decode without the brace-span recovery step. Used for
// whole JSON files.
func DecodeStrict(raw string) (*domain.AnalysisState, error) {
	return decode(raw, false)
}

func decode(raw string, recoverSpan bool) (*domain.AnalysisState, error) {
	doc, err := parseStrict(raw)
	if err != nil {
		if !recoverSpan {
			return nil, &DecodeError{Kind: KindParse, Err: err}
		}
		start := strings.IndexByte(raw, '{')
		end := strings.LastIndexByte(raw, '}')
		if start == -1 || end < start {
			return nil, &DecodeError{Kind: KindParse, Err: err}
		}
		doc, err = parseStrict(raw[start : end+1])
		if err != nil {
			return nil, &DecodeError{Kind: KindParse, Err: err}
		}
	}
	return fromDocument(doc)
}

func parseStrict(s string) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// fromDocument checks key presence only. Values of the wrong type degrade to
// empty or raw text instead of failing.
func fromDocument(doc json.RawMessage) (*domain.AnalysisState, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(doc, &obj); err != nil {
		return nil, &DecodeError{Kind: KindShapeMismatch, Missing: categoryKeys()}
	}

	var missing []string
	for _, c := range domain.AllCategories {
		v, ok := obj[string(c)]
		if !ok || isNull(v) {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return nil, &DecodeError{Kind: KindShapeMismatch, Missing: missing}
	}

	state := &domain.AnalysisState{
		Author:              lenientString(obj["author"]),
		Description:         lenientString(obj["description"]),
		KeyTrends:           lenientFields(obj[string(domain.CategoryKeyTrends)]),
		MarketForces:        lenientFields(obj[string(domain.CategoryMarketForces)]),
		IndustryForces:      lenientFields(obj[string(domain.CategoryIndustryForces)]),
		MacroEconomicForces: lenientFields(obj[string(domain.CategoryMacroEconomic)]),
	}
	return state, nil
}

func lenientFields(raw json.RawMessage) map[string]string {
	out := make(map[string]string)
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	for k, v := range m {
		out[k] = lenientString(v)
	}
	return out
}

func lenientString(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func categoryKeys() []string {
	keys := make([]string, len(domain.AllCategories))
	for i, c := range domain.AllCategories {
		keys[i] = string(c)
	}
	return keys
}
