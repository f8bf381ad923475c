package directive

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// TitlePolicy decides how the resolved title is written into the markup.
type TitlePolicy string

const (
	// TitleRaw writes the title unescaped. Callers own the trust boundary.
	TitleRaw TitlePolicy = "raw"
	// TitleEscape applies pongo2's escape filter.
	TitleEscape TitlePolicy = "escape"
	// TitleSanitize keeps inline formatting and icon elements and drops the
	// rest of the markup.
	TitleSanitize TitlePolicy = "sanitize"
)

// ParseTitlePolicy maps a configuration value to a TitlePolicy. The empty
// string selects TitleRaw.
func ParseTitlePolicy(value string) (TitlePolicy, error) {
	switch TitlePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", TitleRaw:
		return TitleRaw, nil
	case TitleEscape:
		return TitleEscape, nil
	case TitleSanitize:
		return TitleSanitize, nil
	}
	return "", fmt.Errorf("directive: unknown title policy %q", value)
}

// Apply transforms title according to the policy.
func (p TitlePolicy) Apply(title string) (string, error) {
	switch p {
	case "", TitleRaw:
		return title, nil
	case TitleEscape:
		escaped, err := pongo2.ApplyFilter("escape", pongo2.AsValue(title), nil)
		if err != nil {
			return "", err
		}
		return escaped.String(), nil
	case TitleSanitize:
		return titleSanitizer().Sanitize(title), nil
	}
	return "", fmt.Errorf("directive: unknown title policy %q", string(p))
}

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

func titleSanitizer() *bluemonday.Policy {
	titlePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"b", "strong", "i", "em", "small", "span", "code", "mark", "sub", "sup",
		)
		policy.AllowAttrs("class").OnElements("i", "span", "small", "code", "mark")
		policy.AllowAttrs("aria-hidden").OnElements("i", "span")
		titlePolicy = policy
	})
	return titlePolicy
}
