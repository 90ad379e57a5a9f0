package formatter

import (
	"fmt"
	"strings"
)

// RenderCompleteness draws how many worksheet fields hold text, e.g.
// "[████░░░░] 4/18 fields". The bar takes the data quality band colors so a
// sparse worksheet reads the same way as a low score.
func RenderCompleteness(filled, total, width int) string {
	if width < 2 {
		width = 2
	}
	if total <= 0 {
		return fmt.Sprintf("[%s] 0/0 fields", strings.Repeat("░", width))
	}
	filled = max(0, min(filled, total))

	cells := filled * width / total
	bar := strings.Repeat("█", cells) + strings.Repeat("░", width-cells)
	return fmt.Sprintf("[%s] %d/%d fields", ScoreStyle(filled*100/total).Render(bar), filled, total)
}
