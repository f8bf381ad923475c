// Package scaffold builds directive snippets from interactive answers.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-bsmodal/internal/prompt"
	"github.com/goliatone/go-bsmodal/pkg/directive"
)

// HeaderClasses are offered by the header prompt. The last two entries are
// handled specially.
var HeaderClasses = []string{
	"bg-primary",
	"bg-danger",
	"bg-warning",
	"bg-success",
	"bg-info",
	headerNone,
	headerCustom,
}

const (
	headerNone   = "(none)"
	headerCustom = "(custom)"
)

var (
	variablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)
	dialogIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.-]*$`)
)

// Defaults seeds the prompts.
type Defaults struct {
	TagName  string
	DialogID string
}

// Result is the outcome of a scaffold session.
type Result struct {
	Invocation directive.Invocation
	Body       string
	TagName    string
}

// Snippet renders the result as template source.
func (r Result) Snippet() string {
	return r.Invocation.Snippet(r.TagName, r.Body)
}

// Run asks for the directive arguments through driver.
func Run(ctx context.Context, driver prompt.Driver, defaults Defaults) (Result, error) {
	if driver == nil {
		return Result{}, errors.New("scaffold: prompt driver is required")
	}
	if strings.TrimSpace(defaults.TagName) == "" {
		defaults.TagName = directive.DefaultName
	}
	if strings.TrimSpace(defaults.DialogID) == "" {
		defaults.DialogID = directive.DefaultDialogID
	}

	inv := directive.Invocation{ShowCloseButton: true}

	fromContext, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Resolve the title from a template variable?",
		Help:    "A variable title is looked up at render time and falls back to its name.",
	})
	if err != nil {
		return Result{}, fmt.Errorf("scaffold: title source: %w", err)
	}

	if fromContext {
		path, err := driver.Input(ctx, prompt.InputConfig{
			Message:   "Variable path",
			Help:      "For example user.name or items.0",
			Validator: validateVariable,
		})
		if err != nil {
			return Result{}, fmt.Errorf("scaffold: title variable: %w", err)
		}
		inv.Title = directive.Reference(strings.Split(strings.TrimSpace(path), ".")...)
	} else {
		text, err := driver.Input(ctx, prompt.InputConfig{
			Message:   "Dialog title",
			Validator: validateTitle,
		})
		if err != nil {
			return Result{}, fmt.Errorf("scaffold: title: %w", err)
		}
		inv.Title = directive.Literal(strings.TrimSpace(text))
	}

	id, err := driver.Input(ctx, prompt.InputConfig{
		Message:   "Dialog id",
		Default:   defaults.DialogID,
		Validator: validateDialogID,
	})
	if err != nil {
		return Result{}, fmt.Errorf("scaffold: dialog id: %w", err)
	}
	inv.DialogID = strings.TrimSpace(id)

	inv.ShowCloseButton, err = driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Show the close button in the header?",
		Default: true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("scaffold: close button: %w", err)
	}

	inv.HeaderClass, err = askHeaderClass(ctx, driver)
	if err != nil {
		return Result{}, err
	}

	body, err := driver.TextArea(ctx, prompt.TextAreaConfig{
		Message: "Dialog body (optional)",
	})
	if err != nil {
		return Result{}, fmt.Errorf("scaffold: body: %w", err)
	}

	return Result{
		Invocation: inv,
		Body:       body,
		TagName:    defaults.TagName,
	}, nil
}

func askHeaderClass(ctx context.Context, driver prompt.Driver) (string, error) {
	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Header background",
		Options:      HeaderClasses,
		DefaultIndex: prompt.IndexOf(HeaderClasses, headerNone),
	})
	if err != nil {
		return "", fmt.Errorf("scaffold: header class: %w", err)
	}
	if idx < 0 || idx >= len(HeaderClasses) {
		return "", fmt.Errorf("scaffold: header class: invalid choice %d", idx)
	}

	switch choice := HeaderClasses[idx]; choice {
	case headerNone:
		return "", nil
	case headerCustom:
		custom, err := driver.Input(ctx, prompt.InputConfig{
			Message:   "Header CSS classes",
			Validator: validateSingleLine,
		})
		if err != nil {
			return "", fmt.Errorf("scaffold: header class: %w", err)
		}
		return strings.TrimSpace(custom), nil
	default:
		return choice, nil
	}
}

func validateTitle(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("title is required")
	}
	return validateSingleLine(value)
}

func validateVariable(value string) error {
	if !variablePattern.MatchString(strings.TrimSpace(value)) {
		return errors.New("expected a dotted variable path such as user.name")
	}
	return nil
}

func validateDialogID(value string) error {
	if !dialogIDPattern.MatchString(strings.TrimSpace(value)) {
		return errors.New("dialog id must start with a letter and contain no spaces")
	}
	return nil
}

func validateSingleLine(value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return errors.New("value must fit on one line")
	}
	return nil
}
