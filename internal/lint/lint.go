// Package lint checks templates for modal directive misuse without rendering
// them.
package lint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-bsmodal/pkg/directive"
)

// Rule names reported in violations.
const (
	RuleParse        = "parse"
	RuleMissingTitle = "missing-title"
	RuleIgnored      = "ignored-option"
	RuleIDOption     = "id-looks-like-option"
	RuleDuplicateID  = "duplicate-id"
	RuleRawMarkup    = "raw-markup-title"
)

// DefaultExtensions are linted when walking directories.
var DefaultExtensions = []string{".tpl", ".html"}

// Violation is one finding.
type Violation struct {
	File    string
	Line    int
	Col     int
	Rule    string
	Message string
}

// Location formats the position as line:col.
func (v Violation) Location() string {
	if v.Line <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%d", v.Line, v.Col)
}

// Linter parses templates with an observing copy of the directive.
type Linter struct {
	options    []directive.Option
	extensions []string
}

// New returns a Linter whose directive is configured by options, so custom
// tag names and title policies are honoured.
func New(options ...directive.Option) *Linter {
	return &Linter{
		options:    append([]directive.Option(nil), options...),
		extensions: DefaultExtensions,
	}
}

// WithExtensions overrides the extensions matched when walking directories.
func (l *Linter) WithExtensions(exts ...string) *Linter {
	var cleaned []string
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cleaned = append(cleaned, ext)
	}
	if len(cleaned) > 0 {
		l.extensions = cleaned
	}
	return l
}

// LintFile parses one template file. Included templates are parsed too and
// their findings are attributed to their own files.
func (l *Linter) LintFile(path string) ([]Violation, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lint: resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("lint: loader: %w", err)
	}
	set := pongo2.NewSet("bsmodal-lint", loader)

	return l.run(abs, func() error {
		_, err := set.FromFile(abs)
		return err
	})
}

// LintSource parses template source held in memory; name labels the
// violations.
func (l *Linter) LintSource(name, src string) ([]Violation, error) {
	set := pongo2.NewSet("bsmodal-lint", pongo2.NewFSLoader(emptyFS{}))
	return l.run(name, func() error {
		_, err := set.FromString(src)
		return err
	})
}

// LintPaths lints files and walks directories for matching extensions.
func (l *Linter) LintPaths(paths []string) ([]Violation, error) {
	var violations []Violation
	for _, path := range paths {
		files, err := l.collect(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			found, err := l.LintFile(file)
			if err != nil {
				return nil, err
			}
			violations = append(violations, found...)
		}
	}
	Sort(violations)
	return violations, nil
}

func (l *Linter) run(file string, parse func() error) ([]Violation, error) {
	var seen []directive.Invocation
	opts := append(append([]directive.Option(nil), l.options...),
		directive.WithObserver(func(inv directive.Invocation) {
			seen = append(seen, inv)
		}),
	)
	d, err := directive.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}

	err = directive.Compile(d, parse)

	var violations []Violation
	if err != nil {
		var perr *pongo2.Error
		if !errors.As(err, &perr) {
			return nil, fmt.Errorf("lint: %s: %w", file, err)
		}
		violations = append(violations, parseViolation(file, perr))
	}

	violations = append(violations, check(file, d, seen)...)
	Sort(violations)
	return violations, nil
}

func parseViolation(file string, perr *pongo2.Error) Violation {
	v := Violation{
		File: fileOf(perr.Filename, file),
		Line: perr.Line,
		Col:  perr.Column,
		Rule: RuleParse,
	}
	if perr.OrigError != nil {
		v.Message = perr.OrigError.Error()
	} else {
		v.Message = perr.Error()
	}
	if directive.IsMissingTitle(perr) {
		v.Rule = RuleMissingTitle
	}
	return v
}

func check(file string, d *directive.Directive, invocations []directive.Invocation) []Violation {
	var (
		violations []Violation
		firstSeen  = make(map[string]directive.Invocation)
	)
	for _, inv := range invocations {
		at := Violation{
			File: fileOf(inv.Position.Filename, file),
			Line: inv.Position.Line,
			Col:  inv.Position.Col,
		}

		for _, word := range inv.Ignored {
			v := at
			v.Rule = RuleIgnored
			v.Message = fmt.Sprintf("unknown option %q is ignored", word)
			violations = append(violations, v)
		}

		if strings.Contains(inv.DialogID, "=") {
			v := at
			v.Rule = RuleIDOption
			v.Message = fmt.Sprintf("dialog id %q looks like an option; the second argument is always the id", inv.DialogID)
			violations = append(violations, v)
		}

		key := at.File + "\x00" + inv.DialogID
		if first, ok := firstSeen[key]; ok {
			v := at
			v.Rule = RuleDuplicateID
			v.Message = fmt.Sprintf("dialog id %q already used on line %d", inv.DialogID, first.Position.Line)
			violations = append(violations, v)
		} else {
			firstSeen[key] = inv
		}

		if d.TitlePolicy() == directive.TitleRaw && !inv.Title.IsReference() && strings.ContainsAny(inv.Title.Text(), "<>") {
			v := at
			v.Rule = RuleRawMarkup
			v.Message = "literal title contains markup and is written unescaped"
			violations = append(violations, v)
		}
	}
	return violations
}

func (l *Linter) collect(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := filepath.Ext(p)
		for _, want := range l.extensions {
			if ext == want {
				files = append(files, p)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lint: walk %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

func fileOf(tokenFile, fallback string) string {
	if tokenFile == "" || tokenFile == "<string>" {
		return fallback
	}
	return tokenFile
}

// Sort orders violations by file, position, rule and message.
func Sort(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
