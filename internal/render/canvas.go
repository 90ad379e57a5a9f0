// Package render draws the environment canvas: the four quadrants around the
// business model, as HTML, and rasterized to PNG through headless Chrome.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/alexanderramin/envioscan/internal/domain"
)

//go:embed templates/canvas.html
var templateFS embed.FS

var canvasTemplate = template.Must(template.ParseFS(templateFS, "templates/canvas.html"))

// quadrant positions follow the printed canvas: key trends on top, industry
// forces left, market forces right, macro-economic forces at the bottom.
var positions = map[domain.Category]string{
	domain.CategoryKeyTrends:      "top",
	domain.CategoryIndustryForces: "side",
	domain.CategoryMarketForces:   "side",
	domain.CategoryMacroEconomic:  "bottom",
}

type cellData struct {
	Label string
	Value string
}

type quadrantData struct {
	Title    string
	Color    template.CSS
	Position string
	Cells    []cellData
}

type canvasData struct {
	Title  string
	Author string
	Top    *quadrantData
	Left   *quadrantData
	Right  *quadrantData
	Bottom *quadrantData
}

func buildQuadrant(state *domain.AnalysisState, c domain.Category) *quadrantData {
	spec := domain.CategoryByIDMust(c)
	q := &quadrantData{
		Title:    spec.Title,
		Color:    template.CSS(spec.Color),
		Position: positions[c],
	}
	for _, f := range spec.Fields {
		q.Cells = append(q.Cells, cellData{Label: f.Label, Value: state.Field(c, f.ID)})
	}
	return q
}

// Canvas renders the worksheet as a standalone HTML page. Field text is
// escaped; only catalog fields are drawn.
func Canvas(state *domain.AnalysisState) (string, error) {
	if state == nil {
		state = domain.NewAnalysisState()
	}
	data := canvasData{
		Title:  "Environment Analysis",
		Author: state.Author,
		Top:    buildQuadrant(state, domain.CategoryKeyTrends),
		Left:   buildQuadrant(state, domain.CategoryIndustryForces),
		Right:  buildQuadrant(state, domain.CategoryMarketForces),
		Bottom: buildQuadrant(state, domain.CategoryMacroEconomic),
	}

	var buf bytes.Buffer
	if err := canvasTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering canvas: %w", err)
	}
	return buf.String(), nil
}
