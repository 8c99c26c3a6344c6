package document

import (
	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// graphemeBoundaries returns every legal caret position in text, in
// ascending order, always including 0 and len(text).
func graphemeBoundaries(text string) []int {
	bounds := []int{0}
	data := []byte(text)
	off := 0
	for len(data) > 0 {
		advance, _, err := textseg.ScanGraphemeClusters(data, true)
		if err != nil || advance == 0 {
			// Malformed input degrades to byte boundaries.
			advance = 1
		}
		off += advance
		bounds = append(bounds, off)
		data = data[advance:]
	}
	return bounds
}

// snapToBoundary rounds off down to the nearest grapheme boundary.
func (b *TextBuffer) snapToBoundary(off int) int {
	prev := 0
	for _, bound := range graphemeBoundaries(b.text) {
		if bound == off {
			return off
		}
		if bound > off {
			return prev
		}
		prev = bound
	}
	return prev
}

// prevBoundary returns the grapheme boundary strictly before off, or 0.
func (b *TextBuffer) prevBoundary(off int) int {
	prev := 0
	for _, bound := range graphemeBoundaries(b.text) {
		if bound >= off {
			return prev
		}
		prev = bound
	}
	return prev
}

// nextBoundary returns the grapheme boundary strictly after off, or
// len(text).
func (b *TextBuffer) nextBoundary(off int) int {
	for _, bound := range graphemeBoundaries(b.text) {
		if bound > off {
			return bound
		}
	}
	return len(b.text)
}
