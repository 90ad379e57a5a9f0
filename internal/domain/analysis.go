package domain

import (
	"strings"
	"unicode/utf8"
)

// Category identifies one of the four fixed groupings of worksheet fields.
type Category string

const (
	CategoryKeyTrends      Category = "keyTrends"
	CategoryMarketForces   Category = "marketForces"
	CategoryIndustryForces Category = "industryForces"
	CategoryMacroEconomic  Category = "macroEconomicForces"
)

// AllCategories lists the categories in display order.
var AllCategories = []Category{
	CategoryKeyTrends,
	CategoryMarketForces,
	CategoryIndustryForces,
	CategoryMacroEconomic,
}

// IsValidCategory reports whether c is one of the four known categories.
func IsValidCategory(c Category) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AnalysisState is the full worksheet data for one analysis session.
// Each category maps a field ID to free text. Field IDs outside the catalog
// are preserved but ignored by consumers.
type AnalysisState struct {
	Author              string            `json:"author"`
	Description         string            `json:"description"`
	KeyTrends           map[string]string `json:"keyTrends"`
	MarketForces        map[string]string `json:"marketForces"`
	IndustryForces      map[string]string `json:"industryForces"`
	MacroEconomicForces map[string]string `json:"macroEconomicForces"`
}

// NewAnalysisState returns an empty state with every catalog field present
// and set to the empty string.
func NewAnalysisState() *AnalysisState {
	s := &AnalysisState{}
	for _, c := range AllCategories {
		fields := make(map[string]string)
		for _, f := range CategoryByIDMust(c).Fields {
			fields[f.ID] = ""
		}
		s.setCategory(c, fields)
	}
	return s
}

// Fields returns the mapping for category c, or nil if c is unknown.
func (s *AnalysisState) Fields(c Category) map[string]string {
	switch c {
	case CategoryKeyTrends:
		return s.KeyTrends
	case CategoryMarketForces:
		return s.MarketForces
	case CategoryIndustryForces:
		return s.IndustryForces
	case CategoryMacroEconomic:
		return s.MacroEconomicForces
	default:
		return nil
	}
}

func (s *AnalysisState) setCategory(c Category, fields map[string]string) {
	switch c {
	case CategoryKeyTrends:
		s.KeyTrends = fields
	case CategoryMarketForces:
		s.MarketForces = fields
	case CategoryIndustryForces:
		s.IndustryForces = fields
	case CategoryMacroEconomic:
		s.MacroEconomicForces = fields
	}
}

// SetField writes value into category c under field. A nil category map is
// allocated first. Unknown categories are ignored; callers validate.
func (s *AnalysisState) SetField(c Category, field, value string) {
	if !IsValidCategory(c) {
		return
	}
	m := s.Fields(c)
	if m == nil {
		m = make(map[string]string)
		s.setCategory(c, m)
	}
	m[field] = value
}

// Field returns the value stored for field in category c.
func (s *AnalysisState) Field(c Category, field string) string {
	return s.Fields(c)[field]
}

// Normalize replaces nil category maps with empty ones so the state is
// well-formed.
func (s *AnalysisState) Normalize() {
	for _, c := range AllCategories {
		if s.Fields(c) == nil {
			s.setCategory(c, make(map[string]string))
		}
	}
}

// Clone returns a deep copy.
func (s *AnalysisState) Clone() *AnalysisState {
	out := &AnalysisState{Author: s.Author, Description: s.Description}
	for _, c := range AllCategories {
		src := s.Fields(c)
		if src == nil {
			continue
		}
		dst := make(map[string]string, len(src))
		for k, v := range src {
			dst[k] = v
		}
		out.setCategory(c, dst)
	}
	return out
}

// TotalFields is the number of catalog fields across all categories.
func TotalFields() int {
	n := 0
	for _, c := range catalog {
		n += len(c.Fields)
	}
	return n
}

// FilledCount counts catalog fields with non-blank text. Extra field IDs
// do not count.
func (s *AnalysisState) FilledCount() int {
	n := 0
	for _, c := range catalog {
		m := s.Fields(c.ID)
		for _, f := range c.Fields {
			if strings.TrimSpace(m[f.ID]) != "" {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether nothing has been entered: no author, no
// description, and no field text.
func (s *AnalysisState) IsEmpty() bool {
	if strings.TrimSpace(s.Author) != "" || strings.TrimSpace(s.Description) != "" {
		return false
	}
	for _, c := range AllCategories {
		for _, v := range s.Fields(c) {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
	}
	return true
}

// DescriptionQuality grades a project description by length.
type DescriptionQuality string

const (
	QualityEmpty    DescriptionQuality = "empty"
	QualityBrief    DescriptionQuality = "brief"
	QualityAdequate DescriptionQuality = "adequate"
	QualityDetailed DescriptionQuality = "detailed"
)

// GradeDescription is informational only; nothing blocks on it.
func GradeDescription(desc string) DescriptionQuality {
	n := utf8.RuneCountInString(strings.TrimSpace(desc))
	switch {
	case n == 0:
		return QualityEmpty
	case n < 50:
		return QualityBrief
	case n < 150:
		return QualityAdequate
	default:
		return QualityDetailed
	}
}
