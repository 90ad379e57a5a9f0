package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/envioscan/internal/cli/formatter"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/export"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		out        string
		noInsights bool
		upload     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the worksheet as a PDF report",
		Long: `Export the worksheet as a PDF report. The worksheet data is embedded in
the PDF metadata, so the file can later be added to a comparison batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var store ObjectStore
			if upload {
				var err error
				if store, err = app.objectStore(); err != nil {
					return err
				}
			}

			path := out
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, export.DefaultFileName)
			}

			var ins *domain.Insight
			if !noInsights {
				ins = app.Workspace.Insight()
			}

			var data []byte
			err := app.withSpinner(cmd, "Rendering report...", func() error {
				var expErr error
				data, expErr = app.Exporter.Export(ctx, app.Workspace.State(), ins)
				return expErr
			})
			if err != nil {
				return fmt.Errorf("exporting report: %w", err)
			}
			if err := export.WriteFile(path, data); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Exported report to %s\n", path)
			if ins != nil {
				fmt.Fprintln(w, formatter.Dim("Includes the stored AI analysis."))
			}

			if store != nil {
				key := fmt.Sprintf("exports/%s/%s-%s", time.Now().UTC().Format("2006-01-02"), uuid.NewString()[:8], filepath.Base(path))
				loc, err := store.Upload(ctx, key, data)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Uploaded to %s\n", loc)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", export.DefaultFileName, "Output file or directory")
	cmd.Flags().BoolVar(&noInsights, "no-insights", false, "Leave the stored AI analysis out of the report")
	cmd.Flags().BoolVar(&upload, "upload", false, "Also upload the report to object storage")
	return cmd
}
