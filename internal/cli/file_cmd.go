package cli

import (
	"fmt"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/spf13/cobra"
)

func newSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save [path]",
		Short: "Write the worksheet to a JSON progress file",
		Long:  "Write the worksheet to a JSON progress file. Without a path, or with a directory, the file is named envioscan_progress_YYYY-MM-DD.json.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			written, err := app.Workspace.SaveJSON(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved progress to %s\n", written)
			return nil
		},
	}
}

func newLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Replace the worksheet with a JSON progress file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.LoadJSON(cmd.Context(), args[0]); err != nil {
				return err
			}
			s := app.Workspace.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: %d/%d fields filled\n", args[0], s.FilledCount(), domain.TotalFields())
			return nil
		},
	}
}
