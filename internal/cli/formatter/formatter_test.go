package formatter

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/importer"
	"github.com/alexanderramin/envioscan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderCompleteness(t *testing.T) {
	tests := []struct {
		name          string
		filled, total int
		width         int
		want          string
	}{
		{"empty", 0, 18, 6, "[░░░░░░] 0/18 fields"},
		{"half", 9, 18, 6, "[███░░░] 9/18 fields"},
		{"full", 18, 18, 6, "[██████] 18/18 fields"},
		{"rounds down", 1, 18, 6, "[░░░░░░] 1/18 fields"},
		{"over clamps", 20, 18, 4, "[████] 18/18 fields"},
		{"negative clamps", -3, 18, 4, "[░░░░] 0/18 fields"},
		{"tiny width", 9, 18, 1, "[█░] 9/18 fields"},
		{"no fields", 0, 0, 3, "[░░░] 0/0 fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderCompleteness(tt.filled, tt.total, tt.width)))
		})
	}
}

func TestRenderTable_Aligns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"wide cell", "x"}, {"y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "A          LONGER"))
	assert.True(t, strings.HasPrefix(lines[2], "wide cell  x"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderBox(t *testing.T) {
	result := stripANSI(RenderBox("test", "content here"))
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))
	assert.Equal(t, "…", Truncate("abc", 1))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "THREATS\n───────", stripANSI(Header("Threats")))
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "thinking")
	time.Sleep(250 * time.Millisecond)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "thinking")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}

func TestFormatState(t *testing.T) {
	out := stripANSI(FormatState(testutil.NewTestState(testutil.WithAuthor("Ana"))))

	assert.Contains(t, out, "Author: Ana")
	assert.Contains(t, out, "4/18 fields")
	assert.Contains(t, out, "KEY TRENDS")
	assert.Contains(t, out, "MACRO-ECONOMIC FORCES")
	assert.Contains(t, out, "● Technology Trends")
	assert.Contains(t, out, "Ordering apps")
	assert.Contains(t, out, "○ Regulatory Trends")
}

func TestFormatState_Empty(t *testing.T) {
	out := stripANSI(FormatState(domain.NewAnalysisState()))
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "(no description)")
	assert.Contains(t, out, "0/18 fields")
}

func TestFormatCatalog(t *testing.T) {
	out := stripANSI(FormatCatalog())
	assert.Contains(t, out, "switchingCosts")
	assert.Contains(t, out, "macroEconomicForces")
	assert.Equal(t, domain.TotalFields()+2, strings.Count(out, "\n"))
}

func TestFormatInsight(t *testing.T) {
	ins := &domain.Insight{
		Opportunities:       []string{"Catering"},
		Threats:             nil,
		StrategicAdvice:     "Start small.",
		DataQualityScore:    85,
		DataQualityFeedback: "Thorough.",
		PrototypingExperiments: []domain.PrototypingExperiment{
			{Hypothesis: "Offices will pay", Method: "Pilot", Metric: "Orders"},
		},
	}
	out := stripANSI(FormatInsight(ins))
	assert.Contains(t, out, "Data Quality Score: 85/100 Excellent Data Depth")
	assert.Contains(t, out, "• Catering")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "PROTOTYPING EXPERIMENTS")
	assert.Contains(t, out, "metric: Orders")
}

func TestFormatComparison(t *testing.T) {
	r := &domain.ComparativeReport{
		ExecutiveSummary: "Teams overlook suppliers.",
		CommonPatterns:   []string{"Price pressure"},
		Outliers:         []string{"One team ignores regulation"},
		AggregatedStats:  []domain.AggregatedStat{{Label: "Inflation", Count: 3, Description: "Most reports"}},
		AggregateScore:   40,
	}
	out := stripANSI(FormatComparison(r, 3))
	assert.Contains(t, out, "40/100")
	assert.Contains(t, out, "(3 reports)")
	assert.Contains(t, out, "Inflation")
	assert.Contains(t, out, "• Price pressure")
}

func TestFormatBatch(t *testing.T) {
	b := testutil.NewTestBatchReport(testutil.WithSource("team-a.pdf"))
	anon := testutil.NewTestBatchReport(testutil.WithState(domain.NewAnalysisState()))
	out := stripANSI(FormatBatch([]*domain.BatchReport{b, anon}))

	assert.Contains(t, out, "team-a.pdf")
	assert.Contains(t, out, "Test Author")
	assert.Contains(t, out, "(anonymous)")
	assert.Contains(t, out, b.ID[:8])
}

func TestFormatImportResult(t *testing.T) {
	res := importer.Result{
		Accepted: []*importer.Entry{testutil.NewTestBatchReport(testutil.WithSource("ok.pdf"))},
		Rejected: 1,
		Failures: []importer.Failure{{Name: "pic.png", Reason: importer.ReasonUnsupported, Err: errors.New("x")}},
	}
	out := stripANSI(FormatImportResult(res))
	assert.Contains(t, out, "1 accepted, 1 rejected")
	assert.Contains(t, out, "+ ok.pdf (Test Author)")
	assert.Contains(t, out, "✗ pic.png unsupported_type")
}
