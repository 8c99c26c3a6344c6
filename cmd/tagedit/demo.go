package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tagedit/pkg/bridge"
	"github.com/walteh/tagedit/pkg/editor"
	"github.com/walteh/tagedit/pkg/token"
)

// NewDemoCommand builds the demo subcommand: a scripted editing session
// showing the palette flow and tag atomicity end to end.
func NewDemoCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay a scripted editing session against the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts := editor.Options{
				Text:   "Hello {name}, welcome! ",
				Bridge: bridge.New(),
			}
			if configPath != "" {
				cfg, err := LoadConfig(afero.NewOsFs(), configPath)
				if err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					return errors.Errorf("invalid config %s: %w", configPath, err)
				}
				opts.Rules = cfg.Rules()
				opts.Trigger = cfg.TriggerRune()
			}

			e, err := editor.New(ctx, opts)
			if err != nil {
				return err
			}
			defer e.Close()

			cmd.Println("buffer:", e.Buffer().CurrentText())

			// Open the palette with a trigger and insert an image link.
			if err := e.Insert(ctx, string(e.Palette().Trigger())+"im"); err != nil {
				return err
			}
			cmd.Println("typed trigger, options:")
			for _, opt := range e.PaletteOptions() {
				cmd.Printf("  - %s (%s)\n", opt.Label, opt.Kind)
			}

			if err := e.SelectPaletteOption(ctx, token.Image); err != nil {
				return err
			}
			if err := e.Controller().Resolve(ctx, "http://x/a.png"); err != nil {
				return err
			}
			cmd.Println("after image insert:", e.Buffer().CurrentText())

			// Click the profile tag: the picker opens, then is cancelled.
			profile := e.Overlays()[0]
			units := profile.Units()
			if len(units) > 0 {
				e.Click(ctx, units[0].Range.From)
				e.Pump()
				if kind, ok := e.Controller().OpenKind(); ok {
					cmd.Println("tag click opened picker:", kind)
				}
				e.Controller().Cancel(ctx)
			}

			// One backspace at a tag edge removes the whole tag.
			e.Buffer().SetCaret(len(e.Buffer().CurrentText()))
			if len(profile.Units()) > 0 {
				e.Buffer().SetCaret(profile.Units()[0].Range.To)
				if err := e.Backspace(ctx); err != nil {
					return err
				}
				cmd.Println("after deleting the profile tag:", e.Buffer().CurrentText())
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (HCL or YAML)")

	return cmd
}
