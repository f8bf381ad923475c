package bsmodal

import (
	"io/fs"
	"strings"
	"testing"
)

func TestSkeletonsFSContainsBuiltins(t *testing.T) {
	fsys := SkeletonsFS()
	for _, name := range []string{"bootstrap3.tpl", "bootstrap5.tpl"} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
		if !strings.Contains(string(data), "modal-title") {
			t.Fatalf("expected %s to contain the modal title markup", name)
		}
	}
}

func TestRenderString(t *testing.T) {
	out, err := RenderString(
		`{% bsmodal "Delete item" "delModal" close_title_button=No %}Are you sure?{% endbsmodal %}`,
		nil,
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`id="delModal"`, `<h4 class="modal-title">Delete item</h4>`, "Are you sure?"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<button") {
		t.Fatalf("expected no close button:\n%s", out)
	}
}

func TestNewEngineWithFlavor(t *testing.T) {
	engine, err := NewEngine(WithDirectiveOptions(WithFlavor("bootstrap5")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderString(`{% bsmodal heading %}{% endbsmodal %}`, map[string]any{"heading": "Hi"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "btn-close") || !strings.Contains(out, ">Hi</h5>") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestIsMissingTitle(t *testing.T) {
	_, err := RenderString(`{% bsmodal %}{% endbsmodal %}`, nil)
	if !IsMissingTitle(err) {
		t.Fatalf("expected missing title error, got %v", err)
	}
}
