package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	wrapped := fmt.Errorf("ask: %w", terminal.InterruptErr)
	if err := translateSurveyErr(wrapped); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted for wrapped interrupt, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	options := []string{"none", "bg-danger", "custom"}
	if got := IndexOf(options, "bg-danger"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := IndexOf(options, "missing"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
