package themes

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-bsmodal/pkg/testsupport"
)

const acmeManifest = `
name: acme
version: 1.0.0
tokens:
  modal.header.danger: bg-danger text-white
  modal.header.info: bg-info
variants:
  dark:
    tokens:
      modal.header.danger: bg-danger-dark
`

func TestLoadFile(t *testing.T) {
	dir := testsupport.WriteFiles(t, map[string]string{"acme.yaml": acmeManifest})

	manifest, err := LoadFile(filepath.Join(dir, "acme.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifest.Name != "acme" || manifest.Version != "1.0.0" {
		t.Fatalf("unexpected manifest header: %+v", manifest)
	}
	if manifest.Tokens["modal.header.info"] != "bg-info" {
		t.Fatalf("unexpected tokens: %v", manifest.Tokens)
	}
	if manifest.Variants["dark"].Tokens["modal.header.danger"] != "bg-danger-dark" {
		t.Fatalf("unexpected variant tokens: %v", manifest.Variants)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("version: 1")); err == nil {
		t.Fatalf("expected missing name error")
	}
	if _, err := Parse([]byte("name: [")); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestSelector(t *testing.T) {
	acme, err := Parse([]byte(acmeManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	plain, err := Parse([]byte("name: plain\ntokens:\n  modal.header.info: bg-light\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	selector, err := NewSelector("", "dark", acme, plain)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select defaults: %v", err)
	}
	if selection.Theme != "acme" || selection.Variant != "dark" {
		t.Fatalf("unexpected default selection: %s/%s", selection.Theme, selection.Variant)
	}

	selection, err = selector.Select("plain", "")
	if err != nil {
		t.Fatalf("select plain: %v", err)
	}
	if selection.Variant != "" || selection.Manifest != plain {
		t.Fatalf("unexpected plain selection: %+v", selection)
	}

	if _, err := selector.Select("ghost", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected theme not found, got %v", err)
	}
	if _, err := selector.Select("acme", "light"); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected variant not found, got %v", err)
	}

	if got := selector.Themes(); len(got) != 2 || got[0] != "acme" || got[1] != "plain" {
		t.Fatalf("unexpected theme list: %v", got)
	}
}

func TestNewSelectorErrors(t *testing.T) {
	acme, _ := Parse([]byte(acmeManifest))
	if _, err := NewSelector("", "", acme, acme); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := NewSelector("other", "", acme); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected unknown default error, got %v", err)
	}
}
