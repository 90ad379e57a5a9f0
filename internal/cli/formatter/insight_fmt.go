package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
)

// FormatInsight renders an AI critique of one worksheet.
func FormatInsight(ins *domain.Insight) string {
	var b strings.Builder

	score := ScoreStyle(ins.DataQualityScore)
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		Bold("Data Quality Score:"),
		score.Render(fmt.Sprintf("%d/100", ins.DataQualityScore)),
		Dim(domain.ScoreBand(ins.DataQualityScore)),
	))
	if ins.DataQualityFeedback != "" {
		b.WriteString(Dim(Wrap(ins.DataQualityFeedback, valueWidth)) + "\n")
	}

	b.WriteString("\n" + Header("Opportunities") + "\n")
	b.WriteString(bullet(StyleGood, ins.Opportunities) + "\n")

	b.WriteString("\n" + Header("Threats") + "\n")
	b.WriteString(bullet(StyleBad, ins.Threats) + "\n")

	b.WriteString("\n" + Header("Strategic Advice") + "\n")
	b.WriteString(Wrap(ins.StrategicAdvice, valueWidth) + "\n")

	if len(ins.PrototypingExperiments) > 0 {
		b.WriteString("\n" + Header("Prototyping Experiments") + "\n")
		for i, exp := range ins.PrototypingExperiments {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleAI.Render(fmt.Sprintf("%d.", i+1)), Bold(exp.Hypothesis)))
			b.WriteString("     " + Dim("method: ") + exp.Method + "\n")
			b.WriteString("     " + Dim("metric: ") + exp.Metric + "\n")
		}
	}
	return b.String()
}

// FormatComparison renders the analysis of a batch of worksheets.
func FormatComparison(r *domain.ComparativeReport, reports int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		Bold("Aggregate Quality:"),
		ScoreStyle(r.AggregateScore).Render(fmt.Sprintf("%d/100", r.AggregateScore)),
		Dim(fmt.Sprintf("(%d reports)", reports)),
	))

	b.WriteString("\n" + Header("Executive Summary") + "\n")
	b.WriteString(Wrap(r.ExecutiveSummary, valueWidth) + "\n")

	b.WriteString("\n" + Header("Common Patterns") + "\n")
	b.WriteString(bullet(StyleInfo, r.CommonPatterns) + "\n")

	b.WriteString("\n" + Header("Outliers") + "\n")
	b.WriteString(bullet(StyleWarn, r.Outliers) + "\n")

	if len(r.AggregatedStats) > 0 {
		b.WriteString("\n" + Header("Topic Frequency") + "\n")
		rows := make([][]string, 0, len(r.AggregatedStats))
		for _, st := range r.AggregatedStats {
			rows = append(rows, []string{st.Label, fmt.Sprintf("%d", st.Count), Truncate(st.Description, 60)})
		}
		b.WriteString(RenderTable([]string{"TOPIC", "COUNT", "NOTE"}, rows))
	}
	return b.String()
}
