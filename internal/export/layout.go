package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	marginX       = 20.0
	marginTop     = 20.0
	footerReserve = 18.0
	textWidth     = 250.0
	bodyLineH     = 5.0
)

// layout tracks a vertical cursor and starts a new page whenever the next
// line would run into the footer.
type layout struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	y     float64
	limit float64
}

func newLayout(pdf *fpdf.Fpdf, tr func(string) string) *layout {
	_, pageH := pdf.GetPageSize()
	l := &layout{pdf: pdf, tr: tr, limit: pageH - footerReserve}
	l.newPage()
	return l
}

func (l *layout) newPage() {
	l.pdf.AddPage()
	l.y = marginTop
}

func (l *layout) ensure(h float64) {
	if l.y+h > l.limit {
		l.newPage()
	}
}

func (l *layout) space(h float64) {
	l.y += h
	if l.y > l.limit {
		l.newPage()
	}
}

func (l *layout) heading(text string, size float64, r, g, b int) {
	lineH := size * 0.45
	l.ensure(lineH + bodyLineH)
	l.pdf.SetFont("Helvetica", "B", size)
	l.pdf.SetTextColor(r, g, b)
	l.y += lineH
	l.pdf.Text(marginX, l.y, l.tr(text))
	l.y += lineH * 0.6
}

// paragraph wraps text to the text width, one cursor step per line.
func (l *layout) paragraph(text string, style string, size float64, indent float64) {
	l.pdf.SetFont("Helvetica", style, size)
	lineH := size * 0.5
	for _, raw := range strings.Split(text, "\n") {
		lines := l.wrap(raw, textWidth-indent)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for _, line := range lines {
			l.ensure(lineH)
			l.y += lineH
			l.pdf.Text(marginX+indent, l.y, line)
		}
	}
}

// wrap breaks UTF-8 text into translated lines no wider than width in the
// current font. Words longer than a line are split by rune.
func (l *layout) wrap(text string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
			if l.width(candidate) > width {
				lines = append(lines, line)
				candidate = word
			}
		}
		for l.width(candidate) > width {
			head, tail := l.fit(candidate, width)
			lines = append(lines, head)
			candidate = tail
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	for i := range lines {
		lines[i] = l.tr(lines[i])
	}
	return lines
}

func (l *layout) width(s string) float64 {
	return l.pdf.GetStringWidth(l.tr(s))
}

// fit splits s after the longest rune prefix that fits, keeping at least one
// rune so wrapping always makes progress.
func (l *layout) fit(s string, width float64) (string, string) {
	used := 0.0
	for i, r := range s {
		used += l.width(string(r))
		if used > width && i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func (l *layout) bullets(items []string) {
	l.pdf.SetTextColor(0, 0, 0)
	for _, item := range items {
		l.paragraph("• "+item, "", 10, 0)
		l.y += 2
	}
}

func writeDetails(l *layout, state *domain.AnalysisState) {
	l.heading("Environment Details", 20, 17, 24, 39)

	if state.Author != "" {
		l.pdf.SetTextColor(100, 100, 100)
		l.paragraph("Prepared by: "+state.Author, "", 10, 0)
	}
	if state.Description != "" {
		l.pdf.SetTextColor(100, 100, 100)
		l.paragraph(state.Description, "", 10, 0)
	}
	l.space(6)

	written := 0
	for _, spec := range domain.Categories() {
		var filled []domain.FieldSpec
		for _, f := range spec.Fields {
			if strings.TrimSpace(state.Field(spec.ID, f.ID)) != "" {
				filled = append(filled, f)
			}
		}
		if len(filled) == 0 {
			continue
		}

		r, g, b := hexColor(spec.Color)
		l.heading(spec.Title, 14, r, g, b)
		for _, f := range filled {
			l.pdf.SetTextColor(75, 85, 99)
			l.paragraph(f.Label, "B", 10, 0)
			l.pdf.SetTextColor(0, 0, 0)
			l.paragraph(state.Field(spec.ID, f.ID), "", 10, 4)
			l.y += 2
		}
		l.space(4)
		written++
	}

	if written == 0 {
		l.pdf.SetTextColor(156, 163, 175)
		l.paragraph("No fields have been filled in yet.", "I", 10, 0)
	}
}

func writeInsight(l *layout, state *domain.AnalysisState, ins *domain.Insight) {
	l.newPage()
	l.heading("AI Strategic Analysis", 20, 17, 24, 39)
	l.space(4)

	// Quality score box
	boxH := 24.0
	l.ensure(boxH)
	l.pdf.SetFillColor(243, 244, 246)
	l.pdf.Rect(marginX, l.y, 120, boxH, "F")
	l.pdf.SetFont("Helvetica", "B", 12)
	l.pdf.SetTextColor(55, 65, 81)
	l.pdf.Text(marginX+5, l.y+8, l.tr(fmt.Sprintf("Data Quality Score: %d/100 (%s)", ins.DataQualityScore, domain.ScoreBand(ins.DataQualityScore))))
	l.pdf.SetFont("Helvetica", "", 9)
	fy := l.y + 14
	for i, line := range l.wrap(ins.DataQualityFeedback, 110) {
		if i == 2 {
			break
		}
		l.pdf.Text(marginX+5, fy, line)
		fy += 4.5
	}
	l.y += boxH + 6

	l.heading("Opportunities", 14, 22, 163, 74)
	l.bullets(ins.Opportunities)
	l.space(6)

	l.heading("Threats", 14, 220, 38, 38)
	l.bullets(ins.Threats)
	l.space(6)

	l.heading("Strategic Advice", 14, 37, 99, 235)
	l.pdf.SetTextColor(0, 0, 0)
	l.paragraph(ins.StrategicAdvice, "", 10, 0)

	if len(ins.PrototypingExperiments) > 0 {
		l.space(6)
		l.heading("Prototyping Experiments", 14, 147, 51, 234)
		for i, exp := range ins.PrototypingExperiments {
			l.pdf.SetTextColor(0, 0, 0)
			l.paragraph(fmt.Sprintf("%d. %s", i+1, exp.Hypothesis), "B", 10, 0)
			l.pdf.SetTextColor(75, 85, 99)
			l.paragraph("Method: "+exp.Method, "", 10, 4)
			l.paragraph("Metric: "+exp.Metric, "", 10, 4)
			l.y += 3
		}
	}
}

// hexColor parses "#rrggbb". Malformed input yields black.
func hexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
