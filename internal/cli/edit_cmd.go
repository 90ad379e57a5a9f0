package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/envioscan/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// editForm holds the form-bound copies of every editable value.
type editForm struct {
	author string
	desc   string
	fields map[domain.Category]map[string]*string
}

func newEditForm(s *domain.AnalysisState) *editForm {
	f := &editForm{
		author: s.Author,
		desc:   s.Description,
		fields: make(map[domain.Category]map[string]*string),
	}
	for _, spec := range domain.Categories() {
		f.fields[spec.ID] = make(map[string]*string)
		for _, fs := range spec.Fields {
			v := s.Field(spec.ID, fs.ID)
			f.fields[spec.ID][fs.ID] = &v
		}
	}
	return f
}

func (f *editForm) form() *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Prepared by").Value(&f.author),
			huh.NewText().
				Title("Business description").
				Description("What you sell, to whom, and how.").
				Lines(4).
				Value(&f.desc),
		).Title("About"),
	}
	for _, spec := range domain.Categories() {
		fields := make([]huh.Field, 0, len(spec.Fields))
		for _, fs := range spec.Fields {
			fields = append(fields, huh.NewText().
				Title(fs.Label).
				Description(fs.Description).
				Placeholder(fs.Placeholder).
				Lines(2).
				Value(f.fields[spec.ID][fs.ID]))
		}
		groups = append(groups, huh.NewGroup(fields...).Title(spec.Title))
	}
	return huh.NewForm(groups...).WithTheme(envioHuhTheme())
}

// changes counts how many values differ from s.
func (f *editForm) changes(s *domain.AnalysisState) int {
	n := 0
	if f.author != s.Author {
		n++
	}
	if f.desc != s.Description {
		n++
	}
	for c, m := range f.fields {
		for id, v := range m {
			if *v != s.Field(c, id) {
				n++
			}
		}
	}
	return n
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Fill in the worksheet with an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("edit needs an interactive terminal; use `envioscan set` instead")
			}
			ctx := cmd.Context()
			before := app.Workspace.State()
			ef := newEditForm(before)

			err := ef.form().
				WithProgramOptions(tea.WithOutput(cmd.OutOrStdout())).
				RunWithContext(ctx)
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Edit cancelled, nothing saved.")
				return nil
			}
			if err != nil {
				return err
			}

			n := ef.changes(before)
			if ef.author != before.Author {
				app.Workspace.SetAuthor(ctx, ef.author)
			}
			if ef.desc != before.Description {
				app.Workspace.SetDescription(ctx, ef.desc)
			}
			for _, spec := range domain.Categories() {
				for _, fs := range spec.Fields {
					v := *ef.fields[spec.ID][fs.ID]
					if v == before.Field(spec.ID, fs.ID) {
						continue
					}
					if err := app.Workspace.SetField(ctx, spec.ID, fs.ID, v); err != nil {
						return err
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d change(s).\n", n)
			return nil
		},
	}
}
