package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrBrowserMissing is returned when no Chrome or Chromium binary is found.
var ErrBrowserMissing = errors.New("headless chrome not installed")

var browserCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// ChromeRasterizer screenshots the canvas page with headless Chrome.
type ChromeRasterizer struct {
	ExecPath string // empty searches PATH
	Timeout  time.Duration
	Width    int64
	Height   int64
}

// NewChromeRasterizer applies defaults for zero values.
func NewChromeRasterizer(execPath string, timeout time.Duration, width, height int) *ChromeRasterizer {
	r := &ChromeRasterizer{
		ExecPath: execPath,
		Timeout:  timeout,
		Width:    int64(width),
		Height:   int64(height),
	}
	if r.Timeout <= 0 {
		r.Timeout = 30 * time.Second
	}
	if r.Width <= 0 {
		r.Width = 1600
	}
	if r.Height <= 0 {
		r.Height = 1000
	}
	return r
}

// browserPath resolves the Chrome binary or reports ErrBrowserMissing.
func (r *ChromeRasterizer) browserPath() (string, error) {
	if r.ExecPath != "" {
		if _, err := os.Stat(r.ExecPath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrBrowserMissing, r.ExecPath)
		}
		return r.ExecPath, nil
	}
	for _, name := range browserCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrBrowserMissing, strings.Join(browserCandidates, ", "))
}

// Rasterize returns a full-page PNG of the canvas.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, state *domain.AnalysisState) ([]byte, error) {
	html, err := Canvas(state)
	if err != nil {
		return nil, err
	}
	browser, err := r.browserPath()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(browser),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// url.QueryEscape uses + for spaces which is wrong for data URLs
	dataURL := "data:text/html;charset=utf-8," + percentEncodeForDataURL(html)

	var png []byte
	err = chromedp.Run(taskCtx,
		chromedp.EmulateViewport(r.Width, r.Height),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			png, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithFromSurface(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("canvas rasterization timed out after %s: %w", r.Timeout, err)
		}
		return nil, fmt.Errorf("canvas rasterization failed: %w", err)
	}
	return png, nil
}

// percentEncodeForDataURL encodes s for a data URL. Spaces become %20.
func percentEncodeForDataURL(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3 / 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
