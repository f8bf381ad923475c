package directive

import (
	"testing"

	"github.com/flosch/pongo2/v6"
)

func TestStripQuotes(t *testing.T) {
	cases := map[string]string{
		`"Delete item"`: "Delete item",
		`'x'`:           "x",
		`"mixed'`:       `"mixed'`,
		`plain`:         "plain",
		`"`:             "",
		``:              "",
		`""`:            "",
	}
	for in, want := range cases {
		if got := stripQuotes(in); got != want {
			t.Fatalf("stripQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitWords_GlueAdjacentTokens(t *testing.T) {
	// {% bsmodal "Delete item" delModal header_bg_css=bg-danger %}
	tokens := []*pongo2.Token{
		tok(pongo2.TokenString, "Delete item", 12),
		tok(pongo2.TokenIdentifier, "delModal", 26),
		tok(pongo2.TokenIdentifier, "header_bg_css", 35),
		tok(pongo2.TokenSymbol, "=", 48),
		tok(pongo2.TokenIdentifier, "bg", 49),
		tok(pongo2.TokenSymbol, "-", 51),
		tok(pongo2.TokenIdentifier, "danger", 52),
	}

	words := splitWords(tokens)
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}

	want := []string{`"Delete item"`, "delModal", "header_bg_css=bg-danger"}
	for i, w := range words {
		if got := w.raw(); got != want[i] {
			t.Fatalf("word %d: want %q, got %q", i, want[i], got)
		}
	}
	if !words[0].quoted() || words[0].text() != "Delete item" {
		t.Fatalf("expected quoted title word, got %q", words[0].text())
	}

	key, value, ok := words[2].option()
	if !ok || key != "header_bg_css" || value != "bg-danger" {
		t.Fatalf("unexpected option split: %q=%q (%v)", key, value, ok)
	}
}

func TestSplitWords_LineBreakStartsNewWord(t *testing.T) {
	a := tok(pongo2.TokenIdentifier, "a", 5)
	b := tok(pongo2.TokenIdentifier, "b", 6)
	b.Line = 2

	if got := len(splitWords([]*pongo2.Token{a, b})); got != 2 {
		t.Fatalf("expected 2 words across lines, got %d", got)
	}
}

func TestWordOption(t *testing.T) {
	cases := []struct {
		name   string
		tokens []*pongo2.Token
		key    string
		value  string
		ok     bool
	}{
		{
			name: "quoted value kept verbatim",
			tokens: []*pongo2.Token{
				tok(pongo2.TokenIdentifier, "header_bg_css", 1),
				tok(pongo2.TokenSymbol, "=", 14),
				tok(pongo2.TokenString, "a=b c", 15),
			},
			key: "header_bg_css", value: "a=b c", ok: true,
		},
		{
			name: "value stops at second equals",
			tokens: []*pongo2.Token{
				tok(pongo2.TokenIdentifier, "k", 1),
				tok(pongo2.TokenSymbol, "=", 2),
				tok(pongo2.TokenIdentifier, "a", 3),
				tok(pongo2.TokenSymbol, "=", 4),
				tok(pongo2.TokenIdentifier, "b", 5),
			},
			key: "k", value: "a", ok: true,
		},
		{
			name: "empty value",
			tokens: []*pongo2.Token{
				tok(pongo2.TokenIdentifier, "k", 1),
				tok(pongo2.TokenSymbol, "=", 2),
			},
			key: "k", value: "", ok: true,
		},
		{
			name:   "no equals",
			tokens: []*pongo2.Token{tok(pongo2.TokenIdentifier, "stray", 1)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			words := splitWords(tc.tokens)
			if len(words) != 1 {
				t.Fatalf("expected a single word, got %d", len(words))
			}
			key, value, ok := words[0].option()
			if ok != tc.ok || key != tc.key || value != tc.value {
				t.Fatalf("option() = %q, %q, %v; want %q, %q, %v", key, value, ok, tc.key, tc.value, tc.ok)
			}
		})
	}
}

func TestWordVariablePath(t *testing.T) {
	words := splitWords([]*pongo2.Token{
		tok(pongo2.TokenIdentifier, "items", 1),
		tok(pongo2.TokenSymbol, ".", 6),
		tok(pongo2.TokenNumber, "0", 7),
		tok(pongo2.TokenSymbol, ".", 8),
		tok(pongo2.TokenIdentifier, "name", 9),
	})
	path, ok := words[0].variablePath()
	if !ok || len(path) != 3 || path[0] != "items" || path[1] != "0" || path[2] != "name" {
		t.Fatalf("unexpected path %v (%v)", path, ok)
	}

	dashed := splitWords([]*pongo2.Token{
		tok(pongo2.TokenIdentifier, "Delete", 1),
		tok(pongo2.TokenSymbol, "-", 7),
		tok(pongo2.TokenIdentifier, "item", 8),
	})
	if _, ok := dashed[0].variablePath(); ok {
		t.Fatalf("dashed word must not be a variable path")
	}
	if title := titleFromWord(dashed[0]); title.IsReference() || title.Text() != "Delete-item" {
		t.Fatalf("expected literal Delete-item, got %+v", title)
	}
}

func tok(typ pongo2.TokenType, val string, col int) *pongo2.Token {
	return &pongo2.Token{Filename: "<string>", Typ: typ, Val: val, Line: 1, Col: col}
}

func TestQuotedTitle(t *testing.T) {
	cases := []struct {
		text string
		ref  bool
	}{
		{text: "heading", ref: true},
		{text: "user.name", ref: true},
		{text: "items.0", ref: true},
		{text: "Delete item", ref: false},
		{text: "Delete-item", ref: false},
		{text: "and", ref: false},
		{text: "0abc", ref: false},
		{text: "", ref: false},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			title := quotedTitle(tc.text)
			if title.IsReference() != tc.ref {
				t.Fatalf("IsReference = %v, want %v", title.IsReference(), tc.ref)
			}
			if title.Text() != tc.text {
				t.Fatalf("Text = %q, want %q", title.Text(), tc.text)
			}
			if got := title.source(); got != quote(tc.text) {
				t.Fatalf("source = %s, want %s", got, quote(tc.text))
			}
		})
	}
}
