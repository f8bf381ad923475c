package directive

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

const (
	// DefaultName is the tag name; the closing tag is "end" + name.
	DefaultName = "bsmodal"
	// DefaultDialogID is used when the invocation omits the dialog id.
	DefaultDialogID = "modal"

	optionCloseTitleButton = "close_title_button"
	optionHeaderBgCSS      = "header_bg_css"
	optionHeaderTheme      = "header_theme"
)

// Position locates an invocation in its template source.
type Position struct {
	Filename string
	Line     int
	Col      int
}

// Invocation is the parsed form of one opening tag. It is immutable once the
// template is compiled.
type Invocation struct {
	Title           Title
	DialogID        string
	ShowCloseButton bool
	HeaderClass     string
	HeaderTheme     string
	// Ignored lists option words that were not recognised, in source order.
	Ignored  []string
	Position Position
}

func parseInvocation(words []word, defaultID string) (Invocation, error) {
	if len(words) == 0 {
		return Invocation{}, ErrMissingTitle
	}

	inv := Invocation{
		Title:           titleFromWord(words[0]),
		DialogID:        defaultID,
		ShowCloseButton: true,
	}
	if len(words) > 1 {
		inv.DialogID = words[1].text()
	}

	for _, w := range wordsFrom(words, 2) {
		key, value, ok := w.option()
		if !ok {
			inv.Ignored = append(inv.Ignored, w.raw())
			continue
		}
		switch key {
		case optionCloseTitleButton:
			inv.ShowCloseButton = value == "True" || value == "Yes"
		case optionHeaderBgCSS:
			inv.HeaderClass = value
		case optionHeaderTheme:
			inv.HeaderTheme = value
		default:
			inv.Ignored = append(inv.Ignored, w.raw())
		}
	}
	return inv, nil
}

func wordsFrom(words []word, idx int) []word {
	if idx >= len(words) {
		return nil
	}
	return words[idx:]
}

func titleFromWord(w word) Title {
	if w.quoted() {
		return quotedTitle(w.fragments[0].value)
	}
	if path, ok := w.variablePath(); ok {
		return Reference(path...)
	}
	return Literal(w.text())
}

func positionOf(tok *pongo2.Token) Position {
	if tok == nil {
		return Position{}
	}
	return Position{Filename: tok.Filename, Line: tok.Line, Col: tok.Col}
}

// Source formats the invocation back into template source for a tag named
// name, with an empty block.
func (inv Invocation) Source(name string) string {
	return inv.Snippet(name, "")
}

// Snippet formats the invocation as a complete block wrapping body. The
// dialog id is always written so options never shift into its position.
func (inv Invocation) Snippet(name, body string) string {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	id := inv.DialogID
	if id == "" {
		id = DefaultDialogID
	}

	var b strings.Builder
	b.WriteString("{% ")
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(inv.Title.source())
	b.WriteString(" ")
	b.WriteString(quote(id))
	if !inv.ShowCloseButton {
		b.WriteString(" " + optionCloseTitleButton + "=No")
	}
	if inv.HeaderClass != "" {
		b.WriteString(" " + optionHeaderBgCSS + "=" + quote(inv.HeaderClass))
	}
	if inv.HeaderTheme != "" {
		b.WriteString(" " + optionHeaderTheme + "=" + quote(inv.HeaderTheme))
	}
	b.WriteString(" %}\n")
	if body = strings.TrimRight(body, "\n"); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("{% end")
	b.WriteString(name)
	b.WriteString(" %}")
	return b.String()
}

// Equal compares the parsed fields, ignoring Position.
func (inv Invocation) Equal(other Invocation) bool {
	if !inv.Title.Equal(other.Title) ||
		inv.DialogID != other.DialogID ||
		inv.ShowCloseButton != other.ShowCloseButton ||
		inv.HeaderClass != other.HeaderClass ||
		inv.HeaderTheme != other.HeaderTheme ||
		len(inv.Ignored) != len(other.Ignored) {
		return false
	}
	for i := range inv.Ignored {
		if inv.Ignored[i] != other.Ignored[i] {
			return false
		}
	}
	return true
}

func (inv Invocation) clone() Invocation {
	out := inv
	out.Title = Title{text: inv.Title.text, path: inv.Title.Path()}
	if len(inv.Ignored) > 0 {
		out.Ignored = append([]string(nil), inv.Ignored...)
	}
	return out
}
