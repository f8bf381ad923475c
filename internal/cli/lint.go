package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-bsmodal/internal/lint"
)

func newLintCommand(a *app) *cobra.Command {
	var extensions []string

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check modal directive invocations in template files",
		Long: "Parse templates and report directive problems: parse errors, ignored options,\n" +
			"dialog ids that look like options, duplicate ids and markup in raw titles.\n" +
			"Defaults to templates.dir, or the current directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
				if a.cfg.Templates.Dir != "" {
					paths = []string{a.cfg.Templates.Dir}
				}
			}

			opts, err := a.directiveOptions()
			if err != nil {
				return err
			}
			linter := lint.New(opts...)
			if len(extensions) > 0 {
				linter.WithExtensions(extensions...)
			}

			violations, err := linter.LintPaths(paths)
			if err != nil {
				return err
			}
			a.logger.Debug("lint finished", "paths", paths, "violations", len(violations))

			printViolations(cmd.OutOrStdout(), violations)
			if len(violations) > 0 {
				return ErrViolations
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "file extensions to lint (default .tpl,.html)")
	return cmd
}

func printViolations(w io.Writer, violations []lint.Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, okStyle.Render("no problems found"))
		return
	}
	for _, v := range violations {
		fmt.Fprintf(w, "%s:%s %s %s\n",
			fileStyle.Render(v.File),
			mutedStyle.Render(v.Location()),
			ruleStyle.Render("["+v.Rule+"]"),
			v.Message,
		)
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("%d problem(s)", len(violations))))
}
