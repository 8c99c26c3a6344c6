package main

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/tagedit/pkg/palette"
	"github.com/walteh/tagedit/pkg/token"
)

// Config file structure (HCL or YAML)
type Config struct {
	// Trigger overrides the palette trigger character.
	Trigger string `hcl:"trigger,optional" yaml:"trigger,omitempty"`

	// Scan settings for the scan command
	Scan *ScanBlock `hcl:"scan,block" yaml:"scan,omitempty"`

	// Render-class overrides per token kind
	Classes []*ClassBlock `hcl:"class,block" yaml:"classes,omitempty"`
}

type ScanBlock struct {
	Globs []string `hcl:"globs,optional" yaml:"globs,omitempty"`
}

type ClassBlock struct {
	Kind string `hcl:"kind,label" yaml:"kind"`
	Name string `hcl:"name,attr" yaml:"name"`
}

// LoadConfig reads a config from fsys (supports YAML and HCL).
func LoadConfig(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var cfg Config
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return &cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// Validate collects every problem in the config rather than stopping at
// the first.
func (cfg *Config) Validate() error {
	var result *multierror.Error

	if cfg.Trigger != "" && utf8.RuneCountInString(cfg.Trigger) != 1 {
		result = multierror.Append(result,
			errors.Errorf("trigger must be a single character, got %q", cfg.Trigger))
	}

	for _, cls := range cfg.Classes {
		if _, ok := token.ParseKind(cls.Kind); !ok {
			result = multierror.Append(result,
				errors.Errorf("class block: unknown token kind %q", cls.Kind))
		}
		if cls.Name == "" {
			result = multierror.Append(result,
				errors.Errorf("class block %q: empty class name", cls.Kind))
		}
	}

	if cfg.Scan != nil {
		for _, glob := range cfg.Scan.Globs {
			if !doublestar.ValidatePattern(glob) {
				result = multierror.Append(result,
					errors.Errorf("scan block: invalid glob pattern %q", glob))
			}
		}
	}

	return result.ErrorOrNil()
}

// TriggerRune returns the configured trigger, or the default.
func (cfg *Config) TriggerRune() rune {
	if cfg.Trigger == "" {
		return palette.DefaultTrigger
	}
	r, _ := utf8.DecodeRuneInString(cfg.Trigger)
	return r
}

// Rules returns the grammar with any configured class overrides applied.
func (cfg *Config) Rules() []token.Rule {
	overrides := make(map[token.Kind]string, len(cfg.Classes))
	for _, cls := range cfg.Classes {
		if kind, ok := token.ParseKind(cls.Kind); ok {
			overrides[kind] = cls.Name
		}
	}

	rules := token.Grammar()
	for i, r := range rules {
		if name, ok := overrides[r.Kind]; ok {
			rules[i].Class = name
		}
	}
	return rules
}
