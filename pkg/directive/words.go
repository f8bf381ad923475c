package directive

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

// fragment is one lexer token inside a word, kept with the source text it
// was lexed from.
type fragment struct {
	typ    pongo2.TokenType
	value  string
	source string
}

func (f fragment) quoted() bool {
	return f.typ == pongo2.TokenString
}

// word is a whitespace separated argument of the tag. pongo2 splits
// `header_bg_css=bg-danger` into five tokens; positions glue them back.
type word struct {
	token     *pongo2.Token
	fragments []fragment
}

func splitWords(tokens []*pongo2.Token) []word {
	var (
		words []word
		line  int
		end   int
	)
	for _, tok := range tokens {
		if tok == nil {
			continue
		}
		frag := newFragment(tok)
		if len(words) > 0 && tok.Line == line && tok.Col == end {
			last := &words[len(words)-1]
			last.fragments = append(last.fragments, frag)
		} else {
			words = append(words, word{token: tok, fragments: []fragment{frag}})
		}
		line = tok.Line
		end = tok.Col + len(frag.source)
	}
	return words
}

func newFragment(tok *pongo2.Token) fragment {
	frag := fragment{typ: tok.Typ, value: tok.Val, source: tok.Val}
	if tok.Typ == pongo2.TokenString {
		frag.source = quote(tok.Val)
	}
	return frag
}

// raw returns the word as written in the template, strings re-quoted with
// double quotes.
func (w word) raw() string {
	var b strings.Builder
	for _, frag := range w.fragments {
		b.WriteString(frag.source)
	}
	return b.String()
}

// quoted reports whether the word is a single quoted string.
func (w word) quoted() bool {
	return len(w.fragments) == 1 && w.fragments[0].quoted()
}

// text returns the word with one pair of wrapping quotes removed.
func (w word) text() string {
	if w.quoted() {
		return w.fragments[0].value
	}
	return stripQuotes(w.raw())
}

// variablePath returns the dotted lookup path when the word is a bare
// identifier chain such as user.profile.name or items.0.
func (w word) variablePath() ([]string, bool) {
	if len(w.fragments) == 0 || w.fragments[0].typ != pongo2.TokenIdentifier {
		return nil, false
	}
	path := []string{w.fragments[0].value}
	rest := w.fragments[1:]
	for len(rest) > 0 {
		if len(rest) < 2 || rest[0].typ != pongo2.TokenSymbol || rest[0].value != "." {
			return nil, false
		}
		if rest[1].typ != pongo2.TokenIdentifier && rest[1].typ != pongo2.TokenNumber {
			return nil, false
		}
		path = append(path, rest[1].value)
		rest = rest[2:]
	}
	return path, true
}

// option splits a key=value word. A value written as a single quoted string
// is taken verbatim; otherwise the text between the first and second '=' is
// used, with wrapping quotes stripped. Values are always unquoted, so
// header_bg_css="bg-danger" yields bg-danger and never a class attribute
// with embedded quote characters.
func (w word) option() (key, value string, ok bool) {
	if len(w.fragments) == 3 &&
		w.fragments[0].typ == pongo2.TokenIdentifier &&
		w.fragments[1].typ == pongo2.TokenSymbol && w.fragments[1].value == "=" &&
		w.fragments[2].quoted() {
		return w.fragments[0].value, w.fragments[2].value, true
	}

	parts := strings.Split(w.text(), "=")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], stripQuotes(parts[1]), true
}

// stripQuotes removes a leading and trailing quote when both are the same
// quote character. A lone quote character becomes the empty string.
func stripQuotes(s string) string {
	if s == "" {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '\'') {
		return s
	}
	if len(s) == 1 {
		return ""
	}
	return s[1 : len(s)-1]
}

func quote(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	return `"` + escaped + `"`
}
