package lint

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/goliatone/go-bsmodal/pkg/directive"
	"github.com/goliatone/go-bsmodal/pkg/testsupport"
)

func TestLintSource_Rules(t *testing.T) {
	src := "" +
		"{% bsmodal \"Delete\" \"confirm\" size=lg %}x{% endbsmodal %}\n" +
		"{% bsmodal \"Again\" \"confirm\" %}x{% endbsmodal %}\n" +
		"{% bsmodal \"T\" header_bg_css=bg-danger %}x{% endbsmodal %}\n" +
		"{% bsmodal \"<b>Bold</b>\" \"bold\" %}x{% endbsmodal %}\n" +
		"{% bsmodal title \"ok\" %}x{% endbsmodal %}\n"

	violations, err := New().LintSource("page.tpl", src)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	want := []struct {
		line int
		rule string
	}{
		{line: 1, rule: RuleIgnored},
		{line: 2, rule: RuleDuplicateID},
		{line: 3, rule: RuleIDOption},
		{line: 4, rule: RuleRawMarkup},
	}
	if len(violations) != len(want) {
		t.Fatalf("expected %d violations, got %d: %+v", len(want), len(violations), violations)
	}
	for i, w := range want {
		got := violations[i]
		if got.Line != w.line || got.Rule != w.rule || got.File != "page.tpl" {
			t.Fatalf("violation %d: want line %d rule %s, got %+v", i, w.line, w.rule, got)
		}
	}
}

func TestLintSource_EscapePolicySkipsMarkupRule(t *testing.T) {
	violations, err := New(directive.WithTitlePolicy(directive.TitleEscape)).
		LintSource("page.tpl", `{% bsmodal "<b>x</b>" %}{% endbsmodal %}`)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestLintSource_ParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rule string
	}{
		{name: "missing title", src: "<p>\n{% bsmodal %}{% endbsmodal %}", rule: RuleMissingTitle},
		{name: "missing end tag", src: `{% bsmodal "T" %}body`, rule: RuleParse},
		{name: "unterminated string", src: `{% bsmodal "T %}`, rule: RuleParse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violations, err := New().LintSource("page.tpl", tc.src)
			if err != nil {
				t.Fatalf("lint: %v", err)
			}
			if len(violations) != 1 || violations[0].Rule != tc.rule {
				t.Fatalf("expected one %s violation, got %+v", tc.rule, violations)
			}
		})
	}

	violations, _ := New().LintSource("page.tpl", "<p>\n{% bsmodal %}{% endbsmodal %}")
	if violations[0].Line != 2 || violations[0].Location() != "2:"+strconv.Itoa(violations[0].Col) {
		t.Fatalf("expected position on line 2, got %+v", violations[0])
	}
}

func TestLintSource_CustomTagName(t *testing.T) {
	violations, err := New(directive.WithName("dialog")).
		LintSource("page.tpl", `{% dialog "T" "d" extra %}{% enddialog %}`)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 1 || violations[0].Rule != RuleIgnored {
		t.Fatalf("expected ignored option violation, got %+v", violations)
	}
}

func TestLintPaths(t *testing.T) {
	dir := testsupport.WriteFiles(t, map[string]string{
		"pages/index.tpl":      `{% bsmodal "Home" "home" %}{% include "partial.html" %}{% endbsmodal %}`,
		"pages/partial.html":   `{% bsmodal "Nested" "nested" stray %}{% endbsmodal %}`,
		"pages/broken.tpl":     `{% bsmodal %}{% endbsmodal %}`,
		"pages/notes.txt":      `{% bsmodal %}`,
		"pages/clean/ok.tpl":   `{% bsmodal "Fine" "fine" %}{% endbsmodal %}`,
		"pages/clean/also.tpl": `plain`,
	})

	violations, err := New().LintPaths([]string{filepath.Join(dir, "pages")})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	broken := filepath.Join(dir, "pages", "broken.tpl")
	partial := filepath.Join(dir, "pages", "partial.html")

	counts := map[string]int{}
	for _, v := range violations {
		counts[v.File+"|"+v.Rule]++
	}
	if counts[broken+"|"+RuleMissingTitle] != 1 {
		t.Fatalf("expected missing title in broken.tpl, got %+v", violations)
	}
	// partial.html is linted directly and again through the include.
	if counts[partial+"|"+RuleIgnored] != 2 {
		t.Fatalf("expected ignored option reported for partial.html twice, got %+v", violations)
	}
	if len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %d: %+v", len(violations), violations)
	}

	if _, err := New().LintPaths([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestWithExtensions(t *testing.T) {
	dir := testsupport.WriteFiles(t, map[string]string{
		"a.tpl":  `{% bsmodal %}{% endbsmodal %}`,
		"b.html": `{% bsmodal "B" "b" x %}{% endbsmodal %}`,
	})

	violations, err := New().WithExtensions("html").LintPaths([]string{dir})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 1 || violations[0].Rule != RuleIgnored {
		t.Fatalf("expected only the html file to be linted, got %+v", violations)
	}
}
