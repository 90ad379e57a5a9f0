package importer

import (
	"bytes"
	"testing"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/report"
	"github.com/alexanderramin/envioscan/internal/storage"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// pdfWithSubject builds a one-page PDF. An empty subject omits the entry.
func pdfWithSubject(t *testing.T, subject string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Environment Analysis", true)
	if subject != "" {
		doc.SetSubject(subject, true)
	}
	doc.AddPage()

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func pdfBlob(t *testing.T, name string, state *domain.AnalysisState) storage.Blob {
	t.Helper()
	payload, err := report.Encode(state)
	require.NoError(t, err)
	return storage.Blob{Name: name, ContentType: "application/pdf", Data: pdfWithSubject(t, payload)}
}

func jsonBlob(name, body string) storage.Blob {
	return storage.Blob{Name: name, ContentType: "application/json", Data: []byte(body)}
}
