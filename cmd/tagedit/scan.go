package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tagedit/pkg/matcher"
)

// NewScanCommand builds the scan subcommand: tokenize files and report
// every recognized tag.
func NewScanCommand() *cobra.Command {
	var configPath string
	var globs []string

	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Report every inline token recognized in the given files",
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()

			cfg := &Config{}
			if configPath != "" {
				loaded, err := LoadConfig(fsys, configPath)
				if err != nil {
					return err
				}
				if err := loaded.Validate(); err != nil {
					return errors.Errorf("invalid config %s: %w", configPath, err)
				}
				cfg = loaded
			}

			paths := append([]string{}, args...)
			patterns := globs
			if cfg.Scan != nil {
				patterns = append(patterns, cfg.Scan.Globs...)
			}
			for _, pattern := range patterns {
				matches, err := doublestar.Glob(afero.NewIOFS(fsys), pattern)
				if err != nil {
					return errors.Errorf("expanding glob %q: %w", pattern, err)
				}
				paths = append(paths, matches...)
			}

			if len(paths) == 0 {
				return errors.New("no files to scan: pass paths or --glob patterns")
			}

			for _, path := range paths {
				if err := scanFile(cmd, fsys, cfg, path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (HCL or YAML)")
	cmd.Flags().StringArrayVarP(&globs, "glob", "g", nil, "glob pattern of files to scan (repeatable)")

	return cmd
}

func scanFile(cmd *cobra.Command, fsys afero.Fs, cfg *Config, path string) error {
	ctx := cmd.Context()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	total := 0
	for _, rule := range cfg.Rules() {
		layer := matcher.ScanAll(rule, text)
		for _, r := range layer.Ranges {
			cmd.Println(fmt.Sprintf("%s:%s %s %q class=%s", path, r.Span, r.Kind, r.Label, rule.Class))
			total++
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("bytes", len(text)).
		Int("tokens", total).
		Msg("scanned file")

	return nil
}
