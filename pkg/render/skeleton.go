package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
)

const (
	// FlavorBootstrap3 reproduces the Bootstrap 3 modal markup, close button
	// included.
	FlavorBootstrap3 = "bootstrap3"
	// FlavorBootstrap5 targets the Bootstrap 5 modal API (btn-close,
	// data-bs-dismiss).
	FlavorBootstrap5 = "bootstrap5"
)

// TemplateSkeleton renders fragments through a pongo2 template. Templates
// receive id, title, body, close_button and header_class and are expected to
// mark each string value safe.
type TemplateSkeleton struct {
	name string
	tmpl *pongo2.Template
}

var _ Skeleton = (*TemplateSkeleton)(nil)

// NewTemplateSkeleton parses path from fsys once and returns a skeleton bound
// to the compiled template.
func NewTemplateSkeleton(name string, fsys fs.FS, path string) (*TemplateSkeleton, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("render: skeleton name is required")
	}
	if fsys == nil {
		return nil, errors.New("render: skeleton fs is required")
	}

	set := pongo2.NewSet("bsmodal-skeleton-"+name, pongo2.NewFSLoader(fsys))
	var tmpl *pongo2.Template
	err := WithTagTable(func() error {
		var err error
		tmpl, err = set.FromFile(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render: parse skeleton %q: %w", path, err)
	}

	return &TemplateSkeleton{name: name, tmpl: tmpl}, nil
}

// MustTemplateSkeleton panics when the template cannot be parsed.
func MustTemplateSkeleton(name string, fsys fs.FS, path string) *TemplateSkeleton {
	skeleton, err := NewTemplateSkeleton(name, fsys, path)
	if err != nil {
		panic(err)
	}
	return skeleton
}

// Name returns the registry name of the skeleton.
func (s *TemplateSkeleton) Name() string {
	return s.name
}

// Render executes the skeleton template. A single trailing newline left by
// the template file is dropped so the fragment sits in place of the tag.
func (s *TemplateSkeleton) Render(fragment Fragment) (string, error) {
	if s == nil || s.tmpl == nil {
		return "", errors.New("render: skeleton is nil")
	}

	out, err := s.tmpl.Execute(pongo2.Context{
		"id":           fragment.ID,
		"title":        fragment.Title,
		"body":         fragment.Body,
		"close_button": fragment.CloseButton,
		"header_class": fragment.HeaderClass,
	})
	if err != nil {
		return "", fmt.Errorf("render: execute skeleton %q: %w", s.name, err)
	}
	return strings.TrimSuffix(out, "\n"), nil
}
