package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/cli/formatter"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var withInsight bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current worksheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatState(app.Workspace.State()))

			ins := app.Workspace.Insight()
			switch {
			case ins != nil && withInsight:
				fmt.Fprintln(out, formatter.RenderBox("AI Strategic Analysis", formatter.FormatInsight(ins)))
			case ins != nil:
				fmt.Fprintln(out, formatter.Dim("An AI analysis is stored; run `envioscan show --insight` to see it."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withInsight, "insight", false, "Also print the stored AI analysis")
	return cmd
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List categories and field ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog())
			return nil
		},
	}
}

func newSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <field> [text...]",
		Short: "Set one field (no text clears it)",
		Example: `  envioscan set market segments "Office workers, students"
  envioscan set keyTrends technology Ordering apps`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveCategory(args[0])
			if err != nil {
				return err
			}
			field, err := resolveField(c, args[1])
			if err != nil {
				return err
			}
			value := strings.Join(args[2:], " ")
			if err := app.Workspace.SetField(cmd.Context(), c, field, value); err != nil {
				return err
			}

			f, _ := domain.FieldByID(c, field)
			if strings.TrimSpace(value) == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", f.Label)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", f.Label)
			return nil
		},
	}
}

func newAuthorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "author [name...]",
		Short: "Set who prepared the analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			app.Workspace.SetAuthor(cmd.Context(), name)
			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Author cleared")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Author set to %s\n", name)
			return nil
		},
	}
}

func newDescribeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [text...]",
		Short: "Describe the business being analysed",
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			app.Workspace.SetDescription(cmd.Context(), desc)

			q := domain.GradeDescription(desc)
			fmt.Fprintf(cmd.OutOrStdout(), "Description saved %s\n", formatter.Dim("("+string(q)+")"))
			if q == domain.QualityEmpty || q == domain.QualityBrief {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("A few sentences about customers and offering give the AI analysis more to work with."))
			}
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the worksheet and stored analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errors.New("refusing to clear the worksheet without --yes")
				}
				confirmed := false
				err := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Clear the whole worksheet?").
						Description("Every field and the stored AI analysis will be removed.").
						Affirmative("Clear").
						Negative("Keep").
						Value(&confirmed),
				)).WithTheme(envioHuhTheme()).WithShowHelp(false).RunWithContext(cmd.Context())
				if err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
					return nil
				}
			}

			app.Workspace.Reset(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Worksheet cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
