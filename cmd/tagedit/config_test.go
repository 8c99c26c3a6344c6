package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/tagedit/pkg/token"
)

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func TestLoadConfigHCL(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "tagedit.hcl", `
trigger = "@"

scan {
  globs = ["docs/**/*.txt"]
}

class "image" {
  name = "inline-image"
}
`)

	cfg, err := LoadConfig(fsys, "tagedit.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, '@', cfg.TriggerRune())
	require.NotNil(t, cfg.Scan)
	assert.Equal(t, []string{"docs/**/*.txt"}, cfg.Scan.Globs)

	for _, r := range cfg.Rules() {
		if r.Kind == token.Image {
			assert.Equal(t, "inline-image", r.Class)
		} else {
			assert.NotEqual(t, "inline-image", r.Class)
		}
	}
}

func TestLoadConfigYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "tagedit.yaml", `
trigger: "/"
scan:
  globs:
    - "**/*.md"
classes:
  - kind: video
    name: embed-video
`)

	cfg, err := LoadConfig(fsys, "tagedit.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, '/', cfg.TriggerRune())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Trigger: "!!",
		Scan:    &ScanBlock{Globs: []string{"[bad"}},
		Classes: []*ClassBlock{
			{Kind: "gif", Name: "x"},
			{Kind: "image", Name: ""},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single character")
	assert.Contains(t, err.Error(), "unknown token kind")
	assert.Contains(t, err.Error(), "empty class name")
	assert.Contains(t, err.Error(), "invalid glob")
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, '/', cfg.TriggerRune())
	assert.Equal(t, token.Grammar(), cfg.Rules())
}
