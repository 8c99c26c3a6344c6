package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/tagedit/pkg/span"
)

func TestSpanPredicates(t *testing.T) {
	tests := []struct {
		name     string
		s, o     span.Span
		overlaps bool
		touches  bool
	}{
		{
			name:     "disjoint with gap",
			s:        span.New(0, 3),
			o:        span.New(5, 8),
			overlaps: false,
			touches:  false,
		},
		{
			name:     "adjacent",
			s:        span.New(0, 3),
			o:        span.New(3, 6),
			overlaps: false,
			touches:  true,
		},
		{
			name:     "overlapping",
			s:        span.New(0, 4),
			o:        span.New(3, 6),
			overlaps: true,
			touches:  true,
		},
		{
			name:     "contained",
			s:        span.New(0, 10),
			o:        span.New(3, 6),
			overlaps: true,
			touches:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.s.Overlaps(tt.o))
			assert.Equal(t, tt.overlaps, tt.o.Overlaps(tt.s))
			assert.Equal(t, tt.touches, tt.s.Touches(tt.o))
			assert.Equal(t, tt.touches, tt.o.Touches(tt.s))
		})
	}
}

func TestContainsInterior(t *testing.T) {
	s := span.New(2, 5)

	assert.False(t, s.ContainsInterior(2), "From is a legal caret position")
	assert.True(t, s.ContainsInterior(3))
	assert.True(t, s.ContainsInterior(4))
	assert.False(t, s.ContainsInterior(5), "To is a legal caret position")
}

func TestEditMap(t *testing.T) {
	// Replace [4,7) with 2 bytes: delta -1.
	e := span.Edit{From: 4, To: 7, InsertLen: 2}
	assert.Equal(t, -1, e.Delta())

	tests := []struct {
		name string
		in   span.Span
		want span.Span
		ok   bool
	}{
		{name: "entirely before", in: span.New(0, 4), want: span.New(0, 4), ok: true},
		{name: "entirely after", in: span.New(7, 10), want: span.New(6, 9), ok: true},
		{name: "straddles edit start", in: span.New(3, 5), ok: false},
		{name: "inside edit", in: span.New(5, 6), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Map(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEditInserted(t *testing.T) {
	e := span.Edit{From: 3, To: 5, InsertLen: 4}
	assert.Equal(t, span.New(3, 7), e.Inserted())

	del := span.Edit{From: 3, To: 5, InsertLen: 0}
	assert.True(t, del.Inserted().Empty())
}
