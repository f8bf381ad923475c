package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-bsmodal/internal/prompt"
	"github.com/goliatone/go-bsmodal/internal/scaffold"
)

func newNewCommand(a *app) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a modal directive interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver := prompt.NewSurveyDriver(cmd.ErrOrStderr())
			return a.scaffold(cmd, driver, preview)
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "also print the rendered markup")
	return cmd
}

func (a *app) scaffold(cmd *cobra.Command, driver prompt.Driver, preview bool) error {
	result, err := scaffold.Run(cmd.Context(), driver, scaffold.Defaults{
		TagName:  a.cfg.Directive.Name,
		DialogID: a.cfg.Directive.DefaultDialogID,
	})
	if err != nil {
		return err
	}

	snippet := result.Snippet()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, snippet)

	if !preview {
		return nil
	}
	rendered, err := a.renderString(snippet, nil)
	if err != nil {
		return fmt.Errorf("new: preview: %w", err)
	}
	fmt.Fprintln(out, mutedStyle.Render("-- preview --"))
	fmt.Fprintln(out, rendered)
	return nil
}
