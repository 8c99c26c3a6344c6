// Package matcher maintains the set of non-overlapping match ranges one
// grammar rule produces over a mutable buffer, rescanning only the region
// an edit disturbed.
package matcher

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/tagedit/pkg/span"
	"github.com/walteh/tagedit/pkg/token"
)

// Range is one recognized token occurrence. Label is the exact matched
// substring; it doubles as the rendered text and the reinsertion payload.
type Range struct {
	span.Span
	Kind  token.Kind
	Label string
}

// Layer is the live, ordered, disjoint set of ranges one rule produced.
// Layer state is a pure function of buffer content; it is recomputed, not
// persisted.
type Layer struct {
	Kind   token.Kind
	Ranges []Range
}

// ScanAll matches rule over the whole text. This is the reference
// semantics Rescan must agree with: greedy leftmost, non-overlapping,
// left to right.
func ScanAll(rule token.Rule, text string) Layer {
	layer := Layer{Kind: rule.Kind}
	for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
		layer.Ranges = append(layer.Ranges, Range{
			Span:  span.New(loc[0], loc[1]),
			Kind:  rule.Kind,
			Label: text[loc[0]:loc[1]],
		})
	}
	return layer
}

// Rescan updates layer after edit was applied, producing the same layer a
// full scan of text would. layer must be the pre-edit state of the same
// rule; text is the post-edit content.
//
// Ranges untouched by the edit survive by offset mapping. The disturbed
// region is widened to whole lines (rule patterns never cross a newline,
// so line boundaries are safe cut points) and re-matched from scratch, so
// a partially edited match is always re-evaluated over its full possibly
// grown or shrunk span.
func Rescan(ctx context.Context, rule token.Rule, layer Layer, edit span.Edit, text string) Layer {
	window := lineWindow(text, edit.Inserted())

	out := Layer{Kind: rule.Kind}
	var tail []Range
	for _, r := range layer.Ranges {
		mapped, ok := edit.Map(r.Span)
		if !ok || mapped.Overlaps(window) {
			continue
		}
		r.Span = mapped
		if r.To <= window.From {
			out.Ranges = append(out.Ranges, r)
		} else {
			tail = append(tail, r)
		}
	}

	rematched := 0
	for _, loc := range rule.Pattern.FindAllStringIndex(text[window.From:window.To], -1) {
		s := span.New(window.From+loc[0], window.From+loc[1])
		out.Ranges = append(out.Ranges, Range{
			Span:  s,
			Kind:  rule.Kind,
			Label: text[s.From:s.To],
		})
		rematched++
	}
	out.Ranges = append(out.Ranges, tail...)

	zerolog.Ctx(ctx).Trace().
		Stringer("kind", rule.Kind).
		Str("window", window.String()).
		Int("rematched", rematched).
		Int("total", len(out.Ranges)).
		Msg("rescanned layer window")

	return out
}

// lineWindow widens s to the enclosing line boundaries of text.
func lineWindow(text string, s span.Span) span.Span {
	from := s.From
	if from > len(text) {
		from = len(text)
	}
	to := s.To
	if to > len(text) {
		to = len(text)
	}

	for from > 0 && text[from-1] != '\n' {
		from--
	}
	for to < len(text) && text[to] != '\n' {
		to++
	}
	return span.New(from, to)
}

// RangeAt returns the range containing off, if any. Offsets exactly at a
// range end belong to the following text, not the range.
func (l Layer) RangeAt(off int) (Range, bool) {
	for _, r := range l.Ranges {
		if r.Contains(off) {
			return r, true
		}
		if r.From > off {
			break
		}
	}
	return Range{}, false
}

// Spans returns the layer's ranges as bare spans.
func (l Layer) Spans() []span.Span {
	out := make([]span.Span, len(l.Ranges))
	for i, r := range l.Ranges {
		out[i] = r.Span
	}
	return out
}
