package directive

import (
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Title is either literal text or a reference to a context variable.
type Title struct {
	text   string
	path   []string
	quoted bool
}

var quotedPathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// quotedTitle builds the title for a quoted argument. Text that reads as a
// variable path is looked up like a bare reference and falls back to the
// text; anything else is a literal.
func quotedTitle(text string) Title {
	if !quotedPathPattern.MatchString(text) {
		return Literal(text)
	}
	path := strings.Split(text, ".")
	for _, kw := range pongo2.TokenKeywords {
		if kw == path[0] {
			return Literal(text)
		}
	}
	return Title{text: text, path: path, quoted: true}
}

// Literal returns a title rendered as the given text.
func Literal(text string) Title {
	return Title{text: text}
}

// Reference returns a title resolved from the rendering context at execution
// time. An unresolvable path renders as its dotted text.
func Reference(path ...string) Title {
	cp := append([]string(nil), path...)
	return Title{text: strings.Join(cp, "."), path: cp}
}

// IsReference reports whether the title is looked up in the context.
func (t Title) IsReference() bool {
	return len(t.path) > 0
}

// Text returns the literal text, or the dotted path of a reference.
func (t Title) Text() string {
	return t.text
}

// Path returns a copy of the reference path; nil for literals.
func (t Title) Path() []string {
	if len(t.path) == 0 {
		return nil
	}
	return append([]string(nil), t.path...)
}

// Resolve returns the title text for one render pass. Bound values are
// printed the way pongo2 prints variables.
func (t Title) Resolve(lookup Lookup) string {
	if !t.IsReference() || lookup == nil {
		return t.text
	}
	value, ok := lookup.Lookup(t.path)
	if !ok {
		return t.text
	}
	return pongo2.AsValue(value).String()
}

func (t Title) source() string {
	if t.IsReference() && !t.quoted {
		return t.text
	}
	return quote(t.text)
}

// Equal reports whether both titles have the same kind and text.
func (t Title) Equal(other Title) bool {
	if t.text != other.text || t.quoted != other.quoted || len(t.path) != len(other.path) {
		return false
	}
	for i := range t.path {
		if t.path[i] != other.path[i] {
			return false
		}
	}
	return true
}
