// Package controller orchestrates the insertion flow: trigger or
// tag-click in, picker selection out, with exactly one buffer splice at
// the end of a completed run.
package controller

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tagedit/pkg/document"
	"github.com/walteh/tagedit/pkg/span"
	"github.com/walteh/tagedit/pkg/token"
)

// State is the controller's position in the insertion flow.
type State int

const (
	StateIdle State = iota
	StatePickerOpen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePickerOpen:
		return "picker-open"
	default:
		return "unknown"
	}
}

// SelectionState is the shared dialog state every picker-hosting view
// observes. The controller is its only writer.
type SelectionState struct {
	ActiveKind *token.Kind
	DialogOpen bool
}

// InsertionRequest records a pending insertion between activation and
// completion: the kind to insert and the trigger span that was cleared.
type InsertionRequest struct {
	Kind        token.Kind
	TriggerFrom int
	TriggerTo   int
}

// Controller is the single state machine behind one editor instance.
//
// Re-entrancy policy: a trigger or tag-click that arrives while a picker
// is already open wins, and the previous pending request is silently
// dropped. This keeps the open picker kind and the caret position in
// agreement at all times.
type Controller struct {
	buf     document.Buffer
	sel     *SelectionState
	rules   map[token.Kind]token.Rule
	state   State
	pending InsertionRequest
}

// New builds a controller over buf. sel may be shared with any number of
// views; the controller is the only writer. The rules supply the per-kind
// splice shapes.
func New(buf document.Buffer, sel *SelectionState, rules []token.Rule) *Controller {
	byKind := make(map[token.Kind]token.Rule, len(rules))
	for _, r := range rules {
		byKind[r.Kind] = r
	}
	return &Controller{buf: buf, sel: sel, rules: byKind}
}

// State returns the current machine state.
func (c *Controller) State() State {
	return c.state
}

// OpenKind returns the kind of the open picker, if one is open.
func (c *Controller) OpenKind() (token.Kind, bool) {
	if c.state != StatePickerOpen {
		return 0, false
	}
	return c.pending.Kind, true
}

// PaletteSelect runs the palette branch: the trigger span is cleared from
// the buffer, then the picker for kind opens at the (now collapsed)
// caret.
func (c *Controller) PaletteSelect(ctx context.Context, kind token.Kind, trigger span.Span) error {
	if err := c.buf.ApplyEdit(ctx, trigger.From, trigger.To, ""); err != nil {
		return errors.Errorf("clearing trigger span: %w", err)
	}
	c.open(ctx, InsertionRequest{Kind: kind, TriggerFrom: trigger.From, TriggerTo: trigger.To})
	return nil
}

// TagClicked runs the tag-click branch: the picker for kind opens and
// nothing is removed, so editing an existing tag starts from intact text.
func (c *Controller) TagClicked(ctx context.Context, kind token.Kind) {
	caret := c.buf.CaretOffset()
	c.open(ctx, InsertionRequest{Kind: kind, TriggerFrom: caret, TriggerTo: caret})
}

func (c *Controller) open(ctx context.Context, req InsertionRequest) {
	if c.state == StatePickerOpen {
		zerolog.Ctx(ctx).Debug().
			Stringer("dropped", c.pending.Kind).
			Stringer("kind", req.Kind).
			Msg("picker already open, latest request wins")
	}
	c.state = StatePickerOpen
	c.pending = req
	k := req.Kind
	c.sel.ActiveKind = &k
	c.sel.DialogOpen = true
}

// Resolve completes the flow with the picker's payload: the payload is
// wrapped per the pending kind's splice rule, inserted at the caret, and
// the caret advances past it. Payload content is never validated; an
// empty string still splices its wrapper.
func (c *Controller) Resolve(ctx context.Context, payload string) error {
	if c.state != StatePickerOpen {
		return errors.New("no picker open")
	}

	rule, ok := c.rules[c.pending.Kind]
	if !ok {
		return errors.Errorf("no splice rule for kind %s", c.pending.Kind)
	}

	insert := rule.Splice(payload)
	at := c.buf.CaretOffset()
	if err := c.buf.ApplyEdit(ctx, at, at, insert); err != nil {
		return errors.Errorf("splicing payload: %w", err)
	}
	c.buf.SetCaret(at + len(insert))

	zerolog.Ctx(ctx).Debug().
		Stringer("kind", c.pending.Kind).
		Int("at", at).
		Int("len", len(insert)).
		Msg("payload spliced")

	c.close()
	return nil
}

// Cancel abandons the flow. The buffer is left byte-identical to its
// state when the picker opened.
func (c *Controller) Cancel(ctx context.Context) {
	if c.state != StatePickerOpen {
		return
	}
	zerolog.Ctx(ctx).Debug().Stringer("kind", c.pending.Kind).Msg("picker cancelled")
	c.close()
}

func (c *Controller) close() {
	c.state = StateIdle
	c.pending = InsertionRequest{}
	c.sel.ActiveKind = nil
	c.sel.DialogOpen = false
}
