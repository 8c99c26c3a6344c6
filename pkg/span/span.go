// Package span provides offset math over the linear coordinate space of a
// text buffer. Every other package addresses buffer content through these
// half-open [From, To) spans.
package span

import "fmt"

// Span is a half-open range of byte offsets in a buffer.
type Span struct {
	From int
	To   int
}

// New returns the span [from, to).
func New(from, to int) Span {
	return Span{From: from, To: to}
}

// Point returns the empty span at off.
func Point(off int) Span {
	return Span{From: off, To: off}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.From, s.To)
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.To - s.From
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.To <= s.From
}

// Contains reports whether off falls inside [From, To).
func (s Span) Contains(off int) bool {
	return off >= s.From && off < s.To
}

// ContainsInterior reports whether off lies strictly between From and To.
// This is the test atomic ranges use to refuse a caret.
func (s Span) ContainsInterior(off int) bool {
	return off > s.From && off < s.To
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.From < o.To && o.From < s.To
}

// Touches reports whether the two spans overlap or are directly adjacent.
func (s Span) Touches(o Span) bool {
	return s.From <= o.To && o.From <= s.To
}

// Union returns the smallest span covering both s and o.
func (s Span) Union(o Span) Span {
	u := s
	if o.From < u.From {
		u.From = o.From
	}
	if o.To > u.To {
		u.To = o.To
	}
	return u
}

// Shift returns the span moved by delta.
func (s Span) Shift(delta int) Span {
	return Span{From: s.From + delta, To: s.To + delta}
}

// Edit describes a single splice applied to a buffer: the bytes in
// [From, To) are replaced by InsertLen new bytes.
type Edit struct {
	From      int
	To        int
	InsertLen int
}

// Delta returns the change in buffer length the edit causes.
func (e Edit) Delta() int {
	return e.InsertLen - (e.To - e.From)
}

// Replaced returns the edited region in pre-edit coordinates.
func (e Edit) Replaced() Span {
	return Span{From: e.From, To: e.To}
}

// Inserted returns the region covered by the new bytes in post-edit
// coordinates. For a pure deletion this is the empty span at From.
func (e Edit) Inserted() Span {
	return Span{From: e.From, To: e.From + e.InsertLen}
}

// Map carries a pre-edit span across the edit. ok is false when the span
// intersects the replaced region, in which case the span cannot survive
// the edit and must be recomputed from the new content.
func (e Edit) Map(s Span) (Span, bool) {
	if s.To <= e.From {
		return s, true
	}
	if s.From >= e.To {
		return s.Shift(e.Delta()), true
	}
	return Span{}, false
}
