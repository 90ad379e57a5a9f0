package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/envioscan/internal/cli/formatter"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/insight"
	"github.com/alexanderramin/envioscan/internal/storage"
	"github.com/spf13/cobra"
)

func newCompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Build a batch of exported reports and compare them",
	}

	cmd.AddCommand(
		newCompareAddCmd(app),
		newCompareListCmd(app),
		newCompareRemoveCmd(app),
		newCompareClearCmd(app),
		newCompareRunCmd(app),
	)
	return cmd
}

func newCompareAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file|dir|s3://bucket/prefix>...",
		Short: "Add exported PDF or JSON reports to the batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var local, remote []string
			for _, a := range args {
				if storage.IsURI(a) {
					remote = append(remote, a)
				} else {
					local = append(local, a)
				}
			}

			blobs := storage.ReadLocal(local)
			if len(remote) > 0 {
				store, err := app.objectStore()
				if err != nil {
					return err
				}
				for _, uri := range remote {
					fetched, err := store.Fetch(ctx, uri)
					if err != nil {
						return err
					}
					blobs = append(blobs, fetched...)
				}
			}
			if len(blobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files found.")
				return nil
			}

			res, err := app.Importer.Collect(ctx, app.UoW, blobs)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			if err != nil {
				return err
			}

			if n, err := app.Batch.Count(ctx); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("%d report(s) in batch", n)))
			}
			return nil
		},
	}
}

func newCompareListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reports in the batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := app.Batch.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(batch) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The batch is empty.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatch(batch))
			return nil
		},
	}
}

// resolveBatchEntry accepts a 1-based list position or an ID prefix.
func resolveBatchEntry(batch []*domain.BatchReport, input string) (*domain.BatchReport, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(batch) {
			return nil, fmt.Errorf("no report at position %d", n)
		}
		return batch[n-1], nil
	}

	var matches []*domain.BatchReport
	for _, b := range batch {
		if strings.HasPrefix(b.ID, input) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("report not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("report ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newCompareRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position|id>",
		Short: "Remove one report from the batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			batch, err := app.Batch.List(ctx)
			if err != nil {
				return err
			}
			entry, err := resolveBatchEntry(batch, args[0])
			if err != nil {
				return err
			}
			if err := app.Batch.Remove(ctx, entry.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", entry.Source)
			return nil
		},
	}
}

func newCompareClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every report from the batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Batch.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d report(s)\n", n)
			return nil
		},
	}
}

func newCompareRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Ask the AI to compare every report in the batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.insightService()
			if err != nil {
				return err
			}
			batch, err := app.Batch.List(ctx)
			if err != nil {
				return err
			}
			if len(batch) == 0 {
				return fmt.Errorf("%w: add reports with `envioscan compare add`", insight.ErrEmptyBatch)
			}

			var report *domain.ComparativeReport
			err = app.withSpinner(cmd, fmt.Sprintf("Comparing %d reports...", len(batch)), func() error {
				var cmpErr error
				report, cmpErr = svc.Compare(ctx, domain.States(batch))
				return cmpErr
			})
			if err != nil {
				if errors.Is(err, insight.ErrEmptyBatch) {
					return fmt.Errorf("%w: add reports with `envioscan compare add`", err)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Comparative Analysis", formatter.FormatComparison(report, len(batch))))
			return nil
		},
	}
}
