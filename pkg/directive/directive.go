package directive

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-bsmodal/pkg/render"
)

var tagNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Directive is a configured modal tag. It holds only immutable configuration
// and is safe to share between concurrent renders.
type Directive struct {
	name         string
	endTag       string
	defaultID    string
	skeleton     render.Skeleton
	titlePolicy  TitlePolicy
	themes       theme.ThemeSelector
	themeName    string
	themeVariant string
	observer     func(Invocation)
	logger       *slog.Logger
}

// New builds a Directive from options. Defaults: tag "bsmodal", dialog id
// "modal", the bootstrap3 skeleton and the raw title policy.
func New(options ...Option) (*Directive, error) {
	cfg := &config{
		name:      DefaultName,
		defaultID: DefaultDialogID,
		flavor:    render.FlavorBootstrap3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if !validTagName(cfg.name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, cfg.name)
	}

	policy, err := ParseTitlePolicy(string(cfg.titlePolicy))
	if err != nil {
		return nil, err
	}

	skeleton := cfg.skeleton
	if skeleton == nil {
		registry := cfg.registry
		if registry == nil {
			registry = render.DefaultRegistry()
		}
		skeleton, err = registry.Get(cfg.flavor)
		if err != nil {
			return nil, fmt.Errorf("directive: resolve flavor: %w", err)
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Directive{
		name:         cfg.name,
		endTag:       "end" + cfg.name,
		defaultID:    cfg.defaultID,
		skeleton:     skeleton,
		titlePolicy:  policy,
		themes:       cfg.themes,
		themeName:    cfg.themeName,
		themeVariant: cfg.themeVariant,
		observer:     cfg.observer,
		logger:       logger,
	}, nil
}

func validTagName(name string) bool {
	if !tagNamePattern.MatchString(name) {
		return false
	}
	for _, kw := range pongo2.TokenKeywords {
		if kw == name {
			return false
		}
	}
	return true
}

// Name returns the opening tag name.
func (d *Directive) Name() string { return d.name }

// EndTag returns the closing tag name.
func (d *Directive) EndTag() string { return d.endTag }

// DefaultDialogID returns the id used when an invocation omits one.
func (d *Directive) DefaultDialogID() string { return d.defaultID }

// TitlePolicy returns the configured title policy.
func (d *Directive) TitlePolicy() TitlePolicy { return d.titlePolicy }

// Skeleton returns the skeleton fragments are rendered with.
func (d *Directive) Skeleton() render.Skeleton { return d.skeleton }

// Parse is the pongo2 tag parser. It reads the invocation arguments and
// wraps the block up to the closing tag without executing it.
func (d *Directive) Parse(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	tokens := make([]*pongo2.Token, 0, arguments.Count())
	for i := 0; i < arguments.Count(); i++ {
		tokens = append(tokens, arguments.Get(i))
	}

	inv, err := parseInvocation(splitWords(tokens), d.defaultID)
	if err != nil {
		wrapped := fmt.Errorf("%s %w", d.name, err)
		perr := arguments.Error(wrapped.Error(), start)
		perr.OrigError = wrapped
		perr.Sender = "tag:" + d.name
		return nil, perr
	}
	inv.Position = positionOf(start)

	if len(inv.Ignored) > 0 {
		d.logger.Debug("bsmodal: ignoring unknown options",
			"tag", d.name, "options", inv.Ignored, "file", inv.Position.Filename, "line", inv.Position.Line)
	}
	if d.observer != nil {
		d.observer(inv.clone())
	}

	wrapper, endArgs, perr := doc.WrapUntilTag(d.endTag)
	if perr != nil {
		return nil, perr
	}
	if endArgs.Count() > 0 {
		return nil, endArgs.Error(fmt.Sprintf("'%s' does not take arguments", d.endTag), nil)
	}

	return &node{
		directive:  d,
		invocation: inv,
		body:       wrapper,
		token:      start,
	}, nil
}

// Render produces the modal markup for inv with an already rendered body.
// Reference titles are resolved through lookup.
func (d *Directive) Render(inv Invocation, lookup Lookup, body string) (string, error) {
	title, err := d.titlePolicy.Apply(inv.Title.Resolve(lookup))
	if err != nil {
		return "", fmt.Errorf("directive: apply title policy: %w", err)
	}

	return d.skeleton.Render(render.Fragment{
		ID:          inv.DialogID,
		Title:       title,
		Body:        body,
		CloseButton: inv.ShowCloseButton,
		HeaderClass: d.headerClass(inv),
	})
}

var (
	installMu sync.Mutex
	installed = make(map[string]*Directive)
)

// Install registers d with pongo2 under d.Name(). Installing a name this
// package installed before replaces the earlier directive; names owned by
// pongo2 or other packages are rejected. Templates compiled earlier keep the
// directive they were parsed with.
func Install(d *Directive) error {
	if d == nil {
		return ErrNilDirective
	}

	installMu.Lock()
	defer installMu.Unlock()
	return render.WithTagTable(func() error {
		return install(d)
	})
}

// Compile installs d and runs parse while holding the lock that guards
// pongo2's tag table (render.WithTagTable). Every parse that must see d,
// rather than another directive installed under the same name, goes through
// Compile.
func Compile(d *Directive, parse func() error) error {
	if d == nil {
		return ErrNilDirective
	}
	if parse == nil {
		return errors.New("directive: compile: nil parse func")
	}

	installMu.Lock()
	defer installMu.Unlock()

	return render.WithTagTable(func() error {
		if err := install(d); err != nil {
			return err
		}
		return parse()
	})
}

func install(d *Directive) error {
	var err error
	if _, ok := installed[d.name]; ok {
		err = pongo2.ReplaceTag(d.name, d.Parse)
	} else {
		err = pongo2.RegisterTag(d.name, d.Parse)
	}
	if err != nil {
		return fmt.Errorf("directive: install %q: %w", d.name, err)
	}
	installed[d.name] = d
	return nil
}

// Register builds a directive from options and installs it.
func Register(options ...Option) (*Directive, error) {
	d, err := New(options...)
	if err != nil {
		return nil, err
	}
	if err := Install(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Installed returns the directive currently installed under name.
func Installed(name string) (*Directive, bool) {
	installMu.Lock()
	defer installMu.Unlock()

	d, ok := installed[name]
	return d, ok
}
