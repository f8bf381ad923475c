// Package themes loads go-theme manifests from YAML files and selects the
// tokens header_theme resolves against.
package themes

import (
	"errors"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

var (
	// ErrThemeNotFound is returned when a selector has no manifest by that name.
	ErrThemeNotFound = errors.New("themes: theme not found")
	// ErrVariantNotFound is returned when the selected manifest lacks the variant.
	ErrVariantNotFound = errors.New("themes: variant not found")
)

type manifestFile struct {
	Name     string                 `yaml:"name"`
	Version  string                 `yaml:"version"`
	Tokens   map[string]string      `yaml:"tokens"`
	Variants map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens map[string]string `yaml:"tokens"`
}

// Parse decodes a YAML theme manifest.
func Parse(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("themes: decode manifest: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, errors.New("themes: manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:    strings.TrimSpace(raw.Name),
		Version: raw.Version,
		Tokens:  copyTokens(raw.Tokens),
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, variant := range raw.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: copyTokens(variant.Tokens)}
		}
	}
	return manifest, nil
}

// LoadFile reads and parses a manifest from disk.
func LoadFile(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("themes: read manifest: %w", err)
	}
	return Parse(data)
}

func copyTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[strings.TrimSpace(key)] = value
	}
	return out
}
