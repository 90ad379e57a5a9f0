package cli

import (
	"context"

	"github.com/alexanderramin/envioscan/internal/cli/formatter"
	"github.com/alexanderramin/envioscan/internal/db"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/importer"
	"github.com/alexanderramin/envioscan/internal/insight"
	"github.com/alexanderramin/envioscan/internal/llm"
	"github.com/alexanderramin/envioscan/internal/repository"
	"github.com/alexanderramin/envioscan/internal/storage"
	"github.com/alexanderramin/envioscan/internal/workspace"
	"github.com/spf13/cobra"
)

// ReportExporter builds the PDF for a worksheet.
type ReportExporter interface {
	Export(ctx context.Context, state *domain.AnalysisState, ins *domain.Insight) ([]byte, error)
}

// ObjectStore reads batch reports from, and uploads exports to, a bucket.
type ObjectStore interface {
	Fetch(ctx context.Context, uri string) ([]storage.Blob, error)
	Upload(ctx context.Context, key string, data []byte) (string, error)
}

// App holds everything the commands need.
type App struct {
	Workspace *workspace.Session
	Batch     repository.BatchRepo
	UoW       db.UnitOfWork
	Importer  *importer.Importer
	Exporter  ReportExporter

	// Insight is nil when AI features are off; InsightErr says why.
	Insight    insight.Service
	InsightErr error

	// Objects is nil when object storage is not configured.
	Objects ObjectStore

	IsInteractive func() bool
}

func (a *App) insightService() (insight.Service, error) {
	if a.Insight != nil {
		return a.Insight, nil
	}
	if a.InsightErr != nil {
		return nil, a.InsightErr
	}
	return nil, llm.ErrDisabled
}

func (a *App) objectStore() (ObjectStore, error) {
	if a.Objects == nil {
		return nil, storage.ErrNotConfigured
	}
	return a.Objects, nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// withSpinner runs fn, animating a spinner on stderr in a terminal.
func (a *App) withSpinner(cmd *cobra.Command, message string, fn func() error) error {
	if a.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
		defer stop()
	}
	return fn()
}
