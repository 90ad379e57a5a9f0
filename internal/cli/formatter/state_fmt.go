package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
)

const valueWidth = 72

// FormatState renders the worksheet grouped by category. Empty fields are
// shown dimmed so the gaps are visible.
func FormatState(s *domain.AnalysisState) string {
	var b strings.Builder

	author := s.Author
	if author == "" {
		author = Dim("(not set)")
	}
	b.WriteString(Bold("Author:") + " " + author + "\n")

	switch q := domain.GradeDescription(s.Description); q {
	case domain.QualityEmpty:
		b.WriteString(Bold("Business:") + " " + Dim("(no description)") + "\n")
	default:
		b.WriteString(Bold("Business:") + " " + Dim("["+string(q)+"]") + "\n")
		b.WriteString(Wrap(s.Description, valueWidth) + "\n")
	}

	b.WriteString(Bold("Completeness:") + " " + RenderCompleteness(s.FilledCount(), domain.TotalFields(), 20) + "\n")

	for _, spec := range domain.Categories() {
		b.WriteString("\n" + CategoryStyle(spec.Color).Render(strings.ToUpper(spec.Title)) + Dim("  "+string(spec.ID)) + "\n")
		for _, f := range spec.Fields {
			v := strings.TrimSpace(s.Field(spec.ID, f.ID))
			if v == "" {
				b.WriteString(fmt.Sprintf("  %s %s\n", Dim("○"), Dim(f.Label)))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleGood.Render("●"), Bold(f.Label)))
			for _, line := range strings.Split(Wrap(v, valueWidth), "\n") {
				b.WriteString("    " + line + "\n")
			}
		}
	}
	return b.String()
}

// FormatCatalog lists every category and field id, for use with `set`.
func FormatCatalog() string {
	var rows [][]string
	for _, spec := range domain.Categories() {
		for _, f := range spec.Fields {
			rows = append(rows, []string{string(spec.ID), f.ID, f.Label})
		}
	}
	return RenderTable([]string{"CATEGORY", "FIELD", "LABEL"}, rows)
}
