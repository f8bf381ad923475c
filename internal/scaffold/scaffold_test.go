package scaffold

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-bsmodal/internal/prompt"
)

type stubDriver struct {
	inputs     []string
	confirm    []bool
	selectIdx  []int
	textAreas  []string
	inputPos   int
	confirmPos int
	selectPos  int
	textPos    int
	validated  []error
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if val == "" {
		val = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			s.validated = append(s.validated, err)
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ prompt.SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ prompt.TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no text scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, _ string) error { return nil }

func TestRun_LiteralTitle(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{false, false},
		inputs:    []string{"Delete item", "delModal"},
		selectIdx: []int{prompt.IndexOf(HeaderClasses, headerNone)},
		textAreas: []string{"Are you sure?\n"},
	}

	result, err := Run(context.Background(), driver, Defaults{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "{% bsmodal \"Delete item\" \"delModal\" close_title_button=No %}\nAre you sure?\n{% endbsmodal %}"
	if got := result.Snippet(); got != want {
		t.Fatalf("snippet mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestRun_VariableTitleAndCustomHeader(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{true, true},
		inputs:    []string{"user.name", "", "bg-dark text-white"},
		selectIdx: []int{prompt.IndexOf(HeaderClasses, headerCustom)},
		textAreas: []string{""},
	}

	result, err := Run(context.Background(), driver, Defaults{TagName: "dialog", DialogID: "userDialog"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	inv := result.Invocation
	if !inv.Title.IsReference() || inv.Title.Text() != "user.name" {
		t.Fatalf("expected reference title, got %+v", inv.Title)
	}
	if inv.DialogID != "userDialog" {
		t.Fatalf("expected default dialog id, got %q", inv.DialogID)
	}
	want := "{% dialog user.name \"userDialog\" header_bg_css=\"bg-dark text-white\" %}\n{% enddialog %}"
	if got := result.Snippet(); got != want {
		t.Fatalf("snippet mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestRun_PresetHeaderClass(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{false, true},
		inputs:    []string{"Warning", "warn"},
		selectIdx: []int{prompt.IndexOf(HeaderClasses, "bg-warning")},
		textAreas: []string{""},
	}

	result, err := Run(context.Background(), driver, Defaults{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Invocation.HeaderClass != "bg-warning" || !result.Invocation.ShowCloseButton {
		t.Fatalf("unexpected invocation %+v", result.Invocation)
	}
}

func TestRun_RejectsInvalidAnswers(t *testing.T) {
	cases := []struct {
		name   string
		driver *stubDriver
	}{
		{name: "blank title", driver: &stubDriver{confirm: []bool{false}, inputs: []string{"   "}}},
		{name: "bad variable", driver: &stubDriver{confirm: []bool{true}, inputs: []string{"user name"}}},
		{name: "bad dialog id", driver: &stubDriver{confirm: []bool{false}, inputs: []string{"Title", "has space"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tc.driver, Defaults{}); err == nil {
				t.Fatalf("expected validation error")
			}
			if len(tc.driver.validated) != 1 {
				t.Fatalf("expected one validator failure, got %v", tc.driver.validated)
			}
		})
	}
}

func TestRun_PropagatesAbort(t *testing.T) {
	driver := &abortDriver{}
	if _, err := Run(context.Background(), driver, Defaults{}); !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := Run(context.Background(), nil, Defaults{}); err == nil {
		t.Fatalf("expected error without driver")
	}
}

type abortDriver struct{ stubDriver }

func (abortDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, prompt.ErrAborted
}
