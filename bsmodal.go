// Package bsmodal provides a Bootstrap modal directive for pongo2 templates:
//
//	{% bsmodal "Delete item" "delModal" close_title_button=No %}
//	  Are you sure?
//	{% endbsmodal %}
//
// The root package re-exports the common entry points; the directive itself
// lives in pkg/directive and the engine adapter in
// pkg/render/template/gotemplate.
package bsmodal

import (
	"io"
	"io/fs"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-bsmodal/pkg/directive"
	"github.com/goliatone/go-bsmodal/pkg/render"
	"github.com/goliatone/go-bsmodal/pkg/render/template/gotemplate"
)

// Directive aliases the configured tag type.
type Directive = directive.Directive

// Invocation aliases the parsed form of a tag.
type Invocation = directive.Invocation

// Option configures the directive.
type Option = directive.Option

// EngineOption configures the pongo2 engine.
type EngineOption = gotemplate.Option

// Fragment aliases the values substituted into a skeleton.
type Fragment = render.Fragment

// Engine aliases the pongo2-backed renderer.
type Engine = gotemplate.Engine

// ErrMissingTitle is wrapped by the compile error for a tag without a title.
var ErrMissingTitle = directive.ErrMissingTitle

// Register installs the directive with pongo2's global tag registry. Call it
// once at start-up before compiling templates with pongo2 directly.
func Register(options ...Option) (*Directive, error) {
	return directive.Register(options...)
}

// NewEngine constructs a template engine with the directive installed.
func NewEngine(options ...EngineOption) (*Engine, error) {
	return gotemplate.New(options...)
}

// RenderString compiles and renders a single template source with a one-off
// engine.
func RenderString(src string, data any, out ...io.Writer) (string, error) {
	engine, err := gotemplate.New()
	if err != nil {
		return "", err
	}
	return engine.RenderString(src, data, out...)
}

// SkeletonsFS exposes the built-in modal skeleton templates so callers can
// copy or extend them.
func SkeletonsFS() fs.FS {
	return render.TemplatesFS()
}

// IsMissingTitle reports whether err was caused by a tag without a title.
func IsMissingTitle(err error) bool {
	return directive.IsMissingTitle(err)
}

// WithDirectiveOptions forwards directive options to NewEngine.
func WithDirectiveOptions(options ...Option) EngineOption {
	return gotemplate.WithDirectiveOptions(options...)
}

// WithBaseDir loads engine templates from a directory on disk.
func WithBaseDir(dir string) EngineOption {
	return gotemplate.WithBaseDir(dir)
}

// WithFS loads engine templates from an fs.FS.
func WithFS(files fs.FS) EngineOption {
	return gotemplate.WithFS(files)
}

// WithFlavor selects a built-in skeleton (bootstrap3 or bootstrap5).
func WithFlavor(flavor string) Option {
	return directive.WithFlavor(flavor)
}

// WithThemeSelector resolves header_theme tokens through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return directive.WithTheme(selector, name, variant)
}

// WithLogger routes directive diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return directive.WithLogger(logger)
}
