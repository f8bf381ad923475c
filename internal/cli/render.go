package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bsmodal/pkg/render/template/gotemplate"
)

type renderFlags struct {
	source string
	data   string
	out    string
}

func newRenderCommand(a *app) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a template file, a named template or an inline string",
		Long: "Render a template through pongo2 with the modal directive installed.\n" +
			"The argument is a file path, or a template name resolved against templates.dir.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (flags.source == "") {
				return fmt.Errorf("render: pass either a template or --string")
			}

			data, err := loadData(flags.data)
			if err != nil {
				return err
			}

			var out string
			if flags.source != "" {
				out, err = a.renderString(flags.source, data)
			} else {
				out, err = a.renderTemplate(args[0], data)
			}
			if err != nil {
				return err
			}

			if flags.out != "" {
				if err := os.WriteFile(flags.out, []byte(out), 0o644); err != nil {
					return fmt.Errorf("render: write output: %w", err)
				}
				a.logger.Info("rendered", "out", flags.out, "bytes", len(out))
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&flags.source, "string", "", "inline template source")
	cmd.Flags().StringVar(&flags.data, "data", "", "YAML or JSON file with the template context")
	cmd.Flags().StringVar(&flags.out, "out", "", "write output to this file instead of stdout")
	return cmd
}

func (a *app) engine(extra ...gotemplate.Option) (*gotemplate.Engine, error) {
	opts, err := a.directiveOptions()
	if err != nil {
		return nil, err
	}
	base := []gotemplate.Option{
		gotemplate.WithDirectiveOptions(opts...),
		gotemplate.WithExtension(a.cfg.Templates.Extension),
	}
	if a.cfg.Templates.Dir != "" {
		base = append(base, gotemplate.WithBaseDir(a.cfg.Templates.Dir))
	}
	return gotemplate.New(append(base, extra...)...)
}

func (a *app) renderString(src string, data map[string]any) (string, error) {
	engine, err := a.engine()
	if err != nil {
		return "", err
	}
	return engine.RenderString(src, data)
}

func (a *app) renderTemplate(name string, data map[string]any) (string, error) {
	info, statErr := os.Stat(name)
	if statErr == nil && !info.IsDir() {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("render: %w", err)
		}
		engine, err := a.engine(
			gotemplate.WithBaseDir(filepath.Dir(abs)),
			gotemplate.WithExtension(filepath.Ext(abs)),
		)
		if err != nil {
			return "", err
		}
		return engine.RenderTemplate(filepath.Base(abs), data)
	}

	if a.cfg.Templates.Dir == "" {
		return "", fmt.Errorf("render: %s not found and templates.dir is not set", name)
	}
	engine, err := a.engine()
	if err != nil {
		return "", err
	}
	return engine.RenderTemplate(name, data)
}

func loadData(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read data: %w", err)
	}
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("render: decode data: %w", err)
	}
	return data, nil
}
