package directive

import (
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-bsmodal/pkg/render"
)

// Option configures a Directive before construction.
type Option func(*config)

type config struct {
	name         string
	defaultID    string
	flavor       string
	registry     *render.Registry
	skeleton     render.Skeleton
	titlePolicy  TitlePolicy
	themes       theme.ThemeSelector
	themeName    string
	themeVariant string
	observer     func(Invocation)
	logger       *slog.Logger
}

// WithName changes the tag name. The closing tag becomes "end" + name.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithDefaultDialogID sets the id used when an invocation omits it.
func WithDefaultDialogID(id string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cfg.defaultID = trimmed
		}
	}
}

// WithFlavor selects a skeleton by name from the skeleton registry.
func WithFlavor(flavor string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(flavor); trimmed != "" {
			cfg.flavor = trimmed
		}
	}
}

// WithRegistry overrides the registry WithFlavor resolves against.
func WithRegistry(registry *render.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithSkeleton sets the skeleton directly, bypassing flavor lookup.
func WithSkeleton(skeleton render.Skeleton) Option {
	return func(cfg *config) {
		if skeleton != nil {
			cfg.skeleton = skeleton
		}
	}
}

// WithTitlePolicy controls escaping of the resolved title.
func WithTitlePolicy(policy TitlePolicy) Option {
	return func(cfg *config) {
		cfg.titlePolicy = policy
	}
}

// WithTheme enables header_theme lookups against a go-theme selector.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themes = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// WithObserver registers a callback invoked with every invocation parsed
// at template compile time.
func WithObserver(fn func(Invocation)) Option {
	return func(cfg *config) {
		cfg.observer = fn
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
