// Package config loads bsmodal settings with the following precedence
// (highest first): explicit overrides (CLI flags), BSMODAL_* environment
// variables, the config file, defaults.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides: BSMODAL_DIRECTIVE_FLAVOR.
const EnvPrefix = "BSMODAL"

// Config is the validated configuration schema.
type Config struct {
	Directive Directive `mapstructure:"directive" yaml:"directive"`
	Templates Templates `mapstructure:"templates" yaml:"templates"`
	Theme     Theme     `mapstructure:"theme" yaml:"theme"`
	Log       Log       `mapstructure:"log" yaml:"log"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// Directive configures the modal tag.
type Directive struct {
	Name            string `mapstructure:"name" yaml:"name" validate:"required,tagname"`
	DefaultDialogID string `mapstructure:"default_dialog_id" yaml:"default_dialog_id" validate:"required"`
	Flavor          string `mapstructure:"flavor" yaml:"flavor" validate:"omitempty,oneof=bootstrap3 bootstrap5"`
	TitlePolicy     string `mapstructure:"title_policy" yaml:"title_policy" validate:"omitempty,oneof=raw escape sanitize"`
	SkeletonFile    string `mapstructure:"skeleton_file" yaml:"skeleton_file,omitempty" validate:"omitempty,file"`
}

// Templates configures where the render command loads named templates from.
type Templates struct {
	Dir       string `mapstructure:"dir" yaml:"dir,omitempty" validate:"omitempty,dir"`
	Extension string `mapstructure:"extension" yaml:"extension" validate:"required"`
}

// Theme configures header_theme lookups.
type Theme struct {
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file,omitempty" validate:"omitempty,file"`
	Name         string `mapstructure:"name" yaml:"name,omitempty"`
	Variant      string `mapstructure:"variant" yaml:"variant,omitempty"`
}

// Log configures the slog logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=DEBUG INFO WARN ERROR"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// Options drives Load.
type Options struct {
	// File is an explicit config file. When empty, bsmodal.{yaml,json,toml}
	// is looked up in SearchPaths.
	File        string
	SearchPaths []string
	// Overrides are applied last, keyed by dotted config key.
	Overrides map[string]any
}

var tagNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func defaults(v *viper.Viper) {
	v.SetDefault("directive.name", "bsmodal")
	v.SetDefault("directive.default_dialog_id", "modal")
	v.SetDefault("directive.flavor", "bootstrap3")
	v.SetDefault("directive.title_policy", "raw")
	v.SetDefault("directive.skeleton_file", "")
	v.SetDefault("templates.dir", "")
	v.SetDefault("templates.extension", ".tpl")
	v.SetDefault("theme.manifest_file", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.file", "")
}

// Load builds a Config from defaults, file, environment and overrides, then
// validates it.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("bsmodal")
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	for key, value := range opts.Overrides {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Directive.Name = strings.TrimSpace(c.Directive.Name)
	c.Directive.Flavor = strings.ToLower(strings.TrimSpace(c.Directive.Flavor))
	c.Directive.TitlePolicy = strings.ToLower(strings.TrimSpace(c.Directive.TitlePolicy))
	c.Log.Level = strings.ToUpper(strings.TrimSpace(c.Log.Level))
	if ext := strings.TrimSpace(c.Templates.Extension); ext != "" && !strings.HasPrefix(ext, ".") {
		c.Templates.Extension = "." + ext
	}
}

// Validate checks the schema constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("tagname", func(fl validator.FieldLevel) bool {
		return tagNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("config: register validation: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: validation error: %w", err)
	}
	if c.Theme.ManifestFile == "" && (c.Theme.Name != "" || c.Theme.Variant != "") {
		return errors.New("config: theme.name and theme.variant require theme.manifest_file")
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}
