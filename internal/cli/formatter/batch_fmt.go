package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/importer"
)

// FormatBatch lists the stored comparison batch.
func FormatBatch(batch []*domain.BatchReport) string {
	rows := make([][]string, 0, len(batch))
	for i, r := range batch {
		author := r.Author()
		if author == "" {
			author = Dim("(anonymous)")
		}
		filled := 0
		if r.State != nil {
			filled = r.State.FilledCount()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.ID[:min(8, len(r.ID))],
			author,
			Truncate(r.Source, 32),
			fmt.Sprintf("%d/%d", filled, domain.TotalFields()),
			HumanTimestamp(r.AddedAt),
		})
	}
	return RenderTable([]string{"#", "ID", "AUTHOR", "SOURCE", "FIELDS", "ADDED"}, rows)
}

// FormatImportResult summarizes one batch import.
func FormatImportResult(res importer.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d accepted, %d rejected\n",
		StyleGood.Render("✔"), len(res.Accepted), res.Rejected))
	for _, e := range res.Accepted {
		author := e.Author()
		if author == "" {
			author = "anonymous"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleGood.Render("+"), e.Source, Dim("("+author+")")))
	}
	for _, f := range res.Failures {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleBad.Render("✗"), f.Name, Dim(string(f.Reason))))
	}
	return b.String()
}
