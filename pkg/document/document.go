// Package document defines the host text-buffer boundary the overlay
// engine consumes, and TextBuffer, an in-memory reference implementation
// used by the tests and the CLI. The atomic-interval capability lives on
// the buffer because cursor movement and deletion are buffer concerns; the
// overlay only feeds it spans.
package document

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tagedit/pkg/span"
)

// Change is delivered to listeners after every splice. Edit is expressed
// in pre-edit coordinates; Edit.Inserted() covers the new bytes in
// post-edit coordinates.
type Change struct {
	Edit span.Edit
}

// AtomicSource supplies spans the buffer must treat as indivisible units.
// Each overlay layer is one source.
type AtomicSource interface {
	AtomicSpans() []span.Span
}

// Buffer is the minimal host surface the engine consumes. A production
// host adapts its own editing surface to this interface; TextBuffer is
// the reference implementation.
type Buffer interface {
	CurrentText() string
	ApplyEdit(ctx context.Context, from, to int, insert string) error
	CaretOffset() int
	SetCaret(offset int)
	OnChange(fn func(Change))
	AddAtomicSource(src AtomicSource)
}

// TextBuffer is a plain in-memory Buffer with atomic-interval support.
// It is not safe for concurrent use; the engine is single-threaded by
// design and every mutation runs to completion, including listener
// callbacks, before the next input is processed.
type TextBuffer struct {
	text      string
	caret     int
	sources   []AtomicSource
	listeners []func(Change)
}

var _ Buffer = (*TextBuffer)(nil)

// NewTextBuffer returns a buffer seeded with text, caret at the end.
func NewTextBuffer(text string) *TextBuffer {
	return &TextBuffer{text: text, caret: len(text)}
}

func (b *TextBuffer) CurrentText() string {
	return b.text
}

func (b *TextBuffer) CaretOffset() int {
	return b.caret
}

// OnChange registers a listener invoked synchronously after every splice,
// in registration order.
func (b *TextBuffer) OnChange(fn func(Change)) {
	b.listeners = append(b.listeners, fn)
}

// AddAtomicSource registers a provider of indivisible spans.
func (b *TextBuffer) AddAtomicSource(src AtomicSource) {
	b.sources = append(b.sources, src)
}

// ApplyEdit replaces [from, to) with insert, adjusts the caret, and
// notifies listeners. Listeners run before ApplyEdit returns, so by the
// time the caller regains control every overlay has already rebuilt.
func (b *TextBuffer) ApplyEdit(ctx context.Context, from, to int, insert string) error {
	if from < 0 || to < from || to > len(b.text) {
		return errors.Errorf("edit [%d,%d) out of bounds for buffer of length %d", from, to, len(b.text))
	}

	edit := span.Edit{From: from, To: to, InsertLen: len(insert)}
	b.text = b.text[:from] + insert + b.text[to:]

	switch {
	case b.caret >= to:
		b.caret += edit.Delta()
	case b.caret > from:
		b.caret = from + len(insert)
	}

	for _, fn := range b.listeners {
		fn(Change{Edit: edit})
	}
	return nil
}

// SetCaret clamps the offset to the buffer, snaps it to a grapheme
// boundary, and resolves positions strictly inside an atomic span to the
// nearer span edge.
func (b *TextBuffer) SetCaret(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	offset = b.snapToBoundary(offset)

	if s, ok := b.atomicSpanAround(offset); ok {
		if offset-s.From <= s.To-offset {
			offset = s.From
		} else {
			offset = s.To
		}
	}
	b.caret = offset
}

// atomicSpanAround returns the atomic span whose interior contains off.
func (b *TextBuffer) atomicSpanAround(off int) (span.Span, bool) {
	for _, src := range b.sources {
		for _, s := range src.AtomicSpans() {
			if s.ContainsInterior(off) {
				return s, true
			}
		}
	}
	return span.Span{}, false
}

// atomicSpanEndingAt returns the atomic span with To == off.
func (b *TextBuffer) atomicSpanEndingAt(off int) (span.Span, bool) {
	for _, src := range b.sources {
		for _, s := range src.AtomicSpans() {
			if !s.Empty() && s.To == off {
				return s, true
			}
		}
	}
	return span.Span{}, false
}

// atomicSpanStartingAt returns the atomic span with From == off.
func (b *TextBuffer) atomicSpanStartingAt(off int) (span.Span, bool) {
	for _, src := range b.sources {
		for _, s := range src.AtomicSpans() {
			if !s.Empty() && s.From == off {
				return s, true
			}
		}
	}
	return span.Span{}, false
}

// MoveCaret moves the caret by one step left (negative) or right
// (positive), one grapheme cluster at a time. A step that would land
// inside an atomic span crosses the whole span instead.
func (b *TextBuffer) MoveCaret(direction int) {
	switch {
	case direction < 0:
		next := b.prevBoundary(b.caret)
		if s, ok := b.atomicSpanAround(next); ok {
			next = s.From
		}
		b.caret = next
	case direction > 0:
		next := b.nextBoundary(b.caret)
		if s, ok := b.atomicSpanAround(next); ok {
			next = s.To
		}
		b.caret = next
	}
}

// DeleteBackward deletes one grapheme before the caret, or the entire
// atomic span ending at the caret.
func (b *TextBuffer) DeleteBackward(ctx context.Context) error {
	if b.caret == 0 {
		return nil
	}
	if s, ok := b.atomicSpanEndingAt(b.caret); ok {
		return b.ApplyEdit(ctx, s.From, s.To, "")
	}
	from := b.prevBoundary(b.caret)
	return b.ApplyEdit(ctx, from, b.caret, "")
}

// DeleteForward deletes one grapheme after the caret, or the entire
// atomic span starting at the caret.
func (b *TextBuffer) DeleteForward(ctx context.Context) error {
	if b.caret == len(b.text) {
		return nil
	}
	if s, ok := b.atomicSpanStartingAt(b.caret); ok {
		return b.ApplyEdit(ctx, s.From, s.To, "")
	}
	to := b.nextBoundary(b.caret)
	return b.ApplyEdit(ctx, b.caret, to, "")
}

// ExpandSelection grows sel until it covers every atomic span it shares a
// byte with. Selections that merely touch a span edge are left alone.
func (b *TextBuffer) ExpandSelection(sel span.Span) span.Span {
	for {
		grown := sel
		for _, src := range b.sources {
			for _, s := range src.AtomicSpans() {
				if grown.Overlaps(s) {
					grown = grown.Union(s)
				}
			}
		}
		if grown == sel {
			return sel
		}
		sel = grown
	}
}
