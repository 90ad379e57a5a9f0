package cli

import (
	"fmt"

	"github.com/alexanderramin/envioscan/internal/cli/formatter"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*domain.InsightMode)(nil)

func newInsightsCmd(app *App) *cobra.Command {
	mode := domain.ModeStandard

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Ask the AI for a strategic critique of the worksheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.insightService()
			if err != nil {
				return err
			}
			state := app.Workspace.State()
			if state.IsEmpty() {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("The worksheet is empty, so the analysis will be generic."))
			}

			var ins *domain.Insight
			err = app.withSpinner(cmd, "Analysing your environment...", func() error {
				var genErr error
				ins, genErr = svc.Generate(cmd.Context(), state, mode)
				return genErr
			})
			if err != nil {
				return err
			}

			app.Workspace.SetInsight(cmd.Context(), ins)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("AI Strategic Analysis", formatter.FormatInsight(ins)))
			return nil
		},
	}

	cmd.Flags().Var(&mode, "mode", "Analysis mode: standard, critical or prototype")
	return cmd
}
