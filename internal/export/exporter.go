// Package export assembles the PDF report. The worksheet is embedded in the
// document's Subject metadata so the file can be imported again later.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/report"
	"github.com/go-pdf/fpdf"
)

const (
	DocumentTitle   = "Environment Analysis"
	DocumentCreator = "EnvioScan App"

	// DefaultFileName is used when no output path is given.
	DefaultFileName = "environment-analysis.pdf"
)

// ErrAssembly is returned when the PDF itself cannot be built.
var ErrAssembly = errors.New("pdf assembly failed")

// Rasterizer renders the canvas image placed on the first page.
type Rasterizer interface {
	Rasterize(ctx context.Context, state *domain.AnalysisState) ([]byte, error)
}

// Exporter builds report PDFs.
type Exporter struct {
	raster Rasterizer
	now    func() time.Time
}

func NewExporter(raster Rasterizer) *Exporter {
	return &Exporter{raster: raster, now: time.Now}
}

// Export renders state, plus ins when non-nil, into a complete PDF held in
// memory. Nothing is returned unless every step succeeds.
func (e *Exporter) Export(ctx context.Context, state *domain.AnalysisState, ins *domain.Insight) ([]byte, error) {
	if state == nil {
		return nil, errors.New("exporting nil analysis state")
	}

	payload, err := report.Encode(state)
	if err != nil {
		return nil, err
	}

	png, err := e.raster.Rasterize(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("rendering canvas: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(textString(DocumentTitle), false)
	pdf.SetCreator(textString(DocumentCreator), false)
	pdf.SetAuthor(textString(state.Author), false)
	pdf.SetSubject(textString(payload), false)
	pdf.SetCreationDate(e.now())
	pdf.SetAutoPageBreak(false, 0)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(156, 163, 175)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("EnvioScan — page %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	if err := placeCanvas(pdf, png); err != nil {
		return nil, err
	}

	l := newLayout(pdf, tr)
	writeDetails(l, state)
	if ins != nil {
		writeInsight(l, state, ins)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return buf.Bytes(), nil
}

// textString encodes s as a BOM-prefixed UTF-16BE PDF text string, with
// surrogate pairs for runes outside the BMP. Invalid UTF-8 becomes U+FFFD.
// fpdf's own conversion drops astral runes and panics on truncated input.
func textString(s string) string {
	units := utf16.Encode([]rune(strings.ToValidUTF8(s, "\uFFFD")))
	b := make([]byte, 2, 2+2*len(units))
	b[0], b[1] = 0xFE, 0xFF
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}
	return string(b)
}

// placeCanvas puts the PNG on page 1 at full page width, shrinking to fit
// the page height when the image is taller than the page.
func placeCanvas(pdf *fpdf.Fpdf, png []byte) error {
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader("canvas", opts, bytes.NewReader(png))
	if err := pdf.Error(); err != nil || info == nil {
		return fmt.Errorf("%w: registering canvas image: %v", ErrAssembly, err)
	}

	pageW, pageH := pdf.GetPageSize()
	imgW, imgH := info.Width(), info.Height()
	if imgW <= 0 || imgH <= 0 {
		return fmt.Errorf("%w: canvas image has no size", ErrAssembly)
	}

	w := pageW
	h := imgH * pageW / imgW
	x := 0.0
	if limit := pageH - footerReserve; h > limit {
		h = limit
		w = imgW * limit / imgH
		x = (pageW - w) / 2
	}
	pdf.ImageOptions("canvas", x, 0, w, h, false, opts, 0, "")
	return nil
}

// WriteFile writes data to path via a temporary sibling so a failed write
// never leaves a truncated report behind.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".envioscan-*.pdf")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving report into place: %w", err)
	}
	return nil
}
