// Package editor wires one buffer, the three overlays, the palette, and
// the insertion controller into a single live instance, and enforces the
// event order the engine relies on: every edit finishes its rescans and
// overlay rebuilds before the next input, and queued tag activations are
// drained between inputs.
package editor

import (
	"context"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tagedit/pkg/bridge"
	"github.com/walteh/tagedit/pkg/controller"
	"github.com/walteh/tagedit/pkg/document"
	"github.com/walteh/tagedit/pkg/overlay"
	"github.com/walteh/tagedit/pkg/palette"
	"github.com/walteh/tagedit/pkg/span"
	"github.com/walteh/tagedit/pkg/token"
)

// Options configures a new editor instance.
type Options struct {
	// Text seeds the buffer.
	Text string
	// Rules defaults to token.Grammar().
	Rules []token.Rule
	// Trigger defaults to palette.DefaultTrigger.
	Trigger rune
	// Labeler defaults to token.EnglishLabels.
	Labeler token.Labeler
	// Bridge defaults to the process-wide bridge.
	Bridge *bridge.Bridge
}

// Editor is one live editing instance.
type Editor struct {
	id          string
	buf         *document.TextBuffer
	overlays    []*overlay.Overlay
	palette     *palette.Palette
	controller  *controller.Controller
	selection   *controller.SelectionState
	br          *bridge.Bridge
	unsubscribe func()
}

// New builds and wires an instance. The grammar is validated up front;
// a broken rule table is a programming error surfaced immediately rather
// than a silent rendering gap.
func New(ctx context.Context, opts Options) (*Editor, error) {
	rules := opts.Rules
	if rules == nil {
		rules = token.Grammar()
	}
	if err := token.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("invalid grammar: %w", err)
	}

	trigger := opts.Trigger
	if trigger == 0 {
		trigger = palette.DefaultTrigger
	}
	br := opts.Bridge
	if br == nil {
		br = bridge.Default()
	}

	e := &Editor{
		id:        uuid.NewString(),
		buf:       document.NewTextBuffer(opts.Text),
		palette:   palette.NewWithTrigger(trigger, opts.Labeler),
		selection: &controller.SelectionState{},
		br:        br,
	}
	e.controller = controller.New(e.buf, e.selection, rules)

	for _, rule := range rules {
		e.overlays = append(e.overlays, overlay.New(ctx, rule, e.buf, br, e.id))
	}

	e.unsubscribe = br.Subscribe(e.id, func(ev bridge.Event) {
		e.controller.TagClicked(ctx, ev.Kind)
	})

	return e, nil
}

// ID returns the instance identifier used to scope bridge events.
func (e *Editor) ID() string { return e.id }

// Buffer exposes the instance's buffer.
func (e *Editor) Buffer() *document.TextBuffer { return e.buf }

// Controller exposes the insertion state machine.
func (e *Editor) Controller() *controller.Controller { return e.controller }

// Selection exposes the shared dialog state for picker-hosting views.
func (e *Editor) Selection() *controller.SelectionState { return e.selection }

// Palette exposes the command palette.
func (e *Editor) Palette() *palette.Palette { return e.palette }

// Overlays returns the three overlay engines in grammar order.
func (e *Editor) Overlays() []*overlay.Overlay { return e.overlays }

// Insert types text at the caret. By the time it returns, every layer has
// been rescanned and every overlay rebuilt.
func (e *Editor) Insert(ctx context.Context, text string) error {
	at := e.buf.CaretOffset()
	if err := e.buf.ApplyEdit(ctx, at, at, text); err != nil {
		return err
	}
	e.buf.SetCaret(at + len(text))
	return nil
}

// Backspace deletes backward at the caret, whole tags included.
func (e *Editor) Backspace(ctx context.Context) error {
	return e.buf.DeleteBackward(ctx)
}

// TriggerAtCaret reports the palette trigger span ending at the caret, or
// nil when there is none.
func (e *Editor) TriggerAtCaret() *span.Span {
	return e.palette.MatchTrigger(e.buf.CurrentText()[:e.buf.CaretOffset()])
}

// PaletteOptions returns the fixed three-entry menu.
func (e *Editor) PaletteOptions() []palette.Option {
	return e.palette.Options()
}

// SelectPaletteOption accepts a palette choice for the trigger span
// currently at the caret.
func (e *Editor) SelectPaletteOption(ctx context.Context, kind token.Kind) error {
	trigger := e.TriggerAtCaret()
	if trigger == nil {
		return errors.New("no trigger at caret")
	}
	return e.controller.PaletteSelect(ctx, kind, *trigger)
}

// Click reports a pointer activation at off. A hit on any overlay's unit
// queues the activation; Pump delivers it. Returns whether a tag was hit.
func (e *Editor) Click(ctx context.Context, off int) bool {
	for _, o := range e.overlays {
		if o.ClickAt(ctx, off) {
			return true
		}
	}
	return false
}

// Pump drains queued tag activations into the controller. The host calls
// this between inputs; it is the one suspension point in the engine.
func (e *Editor) Pump() {
	e.br.Drain()
}

// Close unsubscribes the instance from the bridge.
func (e *Editor) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}
