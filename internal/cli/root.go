package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "envioscan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "envioscan",
		Short:         "Business environment analysis worksheet",
		Long:          "Fill in the four forces of your business environment, get an AI critique, export a PDF report, and compare reports from several teams.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newShowCmd(app),
		newFieldsCmd(),
		newSetCmd(app),
		newAuthorCmd(app),
		newDescribeCmd(app),
		newResetCmd(app),
		newEditCmd(app),
		newSaveCmd(app),
		newLoadCmd(app),
		newInsightsCmd(app),
		newExportCmd(app),
		newCompareCmd(app),
	)

	return root
}
