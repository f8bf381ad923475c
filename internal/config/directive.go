package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goliatone/go-bsmodal/internal/themes"
	"github.com/goliatone/go-bsmodal/pkg/directive"
	"github.com/goliatone/go-bsmodal/pkg/render"
)

// DirectiveOptions turns the configuration into directive options. A
// skeleton file replaces the flavor; a theme manifest enables header_theme.
func (c *Config) DirectiveOptions(logger *slog.Logger) ([]directive.Option, error) {
	policy, err := directive.ParseTitlePolicy(c.Directive.TitlePolicy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	opts := []directive.Option{
		directive.WithName(c.Directive.Name),
		directive.WithDefaultDialogID(c.Directive.DefaultDialogID),
		directive.WithFlavor(c.Directive.Flavor),
		directive.WithTitlePolicy(policy),
		directive.WithLogger(logger),
	}

	if path := c.Directive.SkeletonFile; path != "" {
		skeleton, err := render.NewTemplateSkeleton(
			filepath.Base(path),
			os.DirFS(filepath.Dir(path)),
			filepath.Base(path),
		)
		if err != nil {
			return nil, fmt.Errorf("config: load skeleton: %w", err)
		}
		opts = append(opts, directive.WithSkeleton(skeleton))
	}

	if path := c.Theme.ManifestFile; path != "" {
		manifest, err := themes.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		selector, err := themes.NewSelector(c.Theme.Name, c.Theme.Variant, manifest)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, directive.WithTheme(selector, c.Theme.Name, c.Theme.Variant))
	}

	return opts, nil
}
