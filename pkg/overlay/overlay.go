// Package overlay renders one grammar rule's match ranges as atomic tag
// units over a buffer. A single engine is instantiated once per rule;
// there is no per-kind view code.
package overlay

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/tagedit/pkg/bridge"
	"github.com/walteh/tagedit/pkg/document"
	"github.com/walteh/tagedit/pkg/matcher"
	"github.com/walteh/tagedit/pkg/span"
	"github.com/walteh/tagedit/pkg/token"
)

// RenderUnit is one rendered tag: the host surface draws Label as a
// single opaque unit styled by Class in place of the underlying text.
type RenderUnit struct {
	Range matcher.Range
	Class string
}

// Overlay binds one rule to one buffer. It keeps the rule's layer current
// across edits, reports the layer's spans as atomic to the buffer, and
// routes clicks on rendered units into the bridge.
type Overlay struct {
	rule     token.Rule
	buf      document.Buffer
	br       *bridge.Bridge
	editorID string
	layer    matcher.Layer
}

var _ document.AtomicSource = (*Overlay)(nil)

// New builds the overlay, scans the buffer's current content, and wires
// the overlay into the buffer's change and atomic-interval hooks. Each
// subsequent edit triggers a window rescan before the buffer's ApplyEdit
// returns.
func New(ctx context.Context, rule token.Rule, buf document.Buffer, br *bridge.Bridge, editorID string) *Overlay {
	o := &Overlay{
		rule:     rule,
		buf:      buf,
		br:       br,
		editorID: editorID,
		layer:    matcher.ScanAll(rule, buf.CurrentText()),
	}
	buf.OnChange(func(c document.Change) {
		o.layer = matcher.Rescan(ctx, o.rule, o.layer, c.Edit, o.buf.CurrentText())
	})
	buf.AddAtomicSource(o)
	return o
}

// Kind returns the token kind this overlay renders.
func (o *Overlay) Kind() token.Kind {
	return o.rule.Kind
}

// Layer exposes the live layer, mainly for tests and the host surface.
func (o *Overlay) Layer() matcher.Layer {
	return o.layer
}

// AtomicSpans implements document.AtomicSource.
func (o *Overlay) AtomicSpans() []span.Span {
	return o.layer.Spans()
}

// Units returns the rendered tag units in buffer order.
func (o *Overlay) Units() []RenderUnit {
	units := make([]RenderUnit, len(o.layer.Ranges))
	for i, r := range o.layer.Ranges {
		units[i] = RenderUnit{Range: r, Class: o.rule.Class}
	}
	return units
}

// ClickAt reports a pointer activation at off. When off falls on a
// rendered unit, the activation is queued through the bridge and true is
// returned. The buffer is never mutated here; whatever the click leads to
// happens on a later drain.
func (o *Overlay) ClickAt(ctx context.Context, off int) bool {
	r, ok := o.layer.RangeAt(off)
	if !ok {
		return false
	}
	zerolog.Ctx(ctx).Debug().
		Stringer("kind", r.Kind).
		Str("label", r.Label).
		Msg("tag activated")
	o.br.Emit(bridge.Event{EditorID: o.editorID, Kind: r.Kind, Label: r.Label})
	return true
}
