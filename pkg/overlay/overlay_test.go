package overlay_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tagedit/pkg/bridge"
	"github.com/walteh/tagedit/pkg/document"
	"github.com/walteh/tagedit/pkg/overlay"
	"github.com/walteh/tagedit/pkg/span"
	"github.com/walteh/tagedit/pkg/token"
)

func profileRule(t *testing.T) token.Rule {
	t.Helper()
	for _, r := range token.Grammar() {
		if r.Kind == token.Profile {
			return r
		}
	}
	t.Fatal("profile rule missing")
	return token.Rule{}
}

func TestOverlayTracksEdits(t *testing.T) {
	ctx := context.Background()
	buf := document.NewTextBuffer("Hello {name}")
	o := overlay.New(ctx, profileRule(t), buf, bridge.New(), "ed-1")

	units := o.Units()
	require.Len(t, units, 1)
	assert.Equal(t, span.New(6, 12), units[0].Range.Span)
	assert.Equal(t, "{name}", units[0].Range.Label)
	assert.Equal(t, token.ProfileClass, units[0].Class)

	// Breaking the token drops the unit.
	require.NoError(t, buf.ApplyEdit(ctx, 11, 12, ""))
	assert.Empty(t, o.Units())

	// Restoring it brings the unit back, rebuilt before ApplyEdit returned.
	require.NoError(t, buf.ApplyEdit(ctx, 11, 11, "}"))
	units = o.Units()
	require.Len(t, units, 1)
	assert.Equal(t, "{name}", units[0].Range.Label)
}

func TestOverlayRegistersAtomicSpans(t *testing.T) {
	ctx := context.Background()
	buf := document.NewTextBuffer("Hello {name} x")
	overlay.New(ctx, profileRule(t), buf, bridge.New(), "ed-1")

	buf.SetCaret(9)
	assert.Equal(t, 6, buf.CaretOffset(), "caret snapped out of the tag")

	buf.SetCaret(13)
	require.NoError(t, buf.DeleteBackward(ctx))
	require.NoError(t, buf.DeleteBackward(ctx))
	assert.Equal(t, "Hello x", buf.CurrentText(), "second backspace removed the whole tag")
}

func TestClickEmitsScopedEventWithoutMutation(t *testing.T) {
	ctx := context.Background()
	br := bridge.New()
	buf := document.NewTextBuffer("Hello {name}")
	o := overlay.New(ctx, profileRule(t), buf, br, "ed-1")

	var got []bridge.Event
	br.Subscribe("ed-1", func(ev bridge.Event) { got = append(got, ev) })

	assert.False(t, o.ClickAt(ctx, 2), "plain text is not clickable")
	assert.True(t, o.ClickAt(ctx, 8))

	assert.Equal(t, "Hello {name}", buf.CurrentText(), "click must not mutate")
	assert.Empty(t, got, "delivery waits for the drain")

	br.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, bridge.Event{EditorID: "ed-1", Kind: token.Profile, Label: "{name}"}, got[0])
}

func TestThreeOverlaysShareOneBuffer(t *testing.T) {
	ctx := context.Background()
	buf := document.NewTextBuffer("see {a} and http://x/a.png and https://www.bilibili.com/video/xyz")
	br := bridge.New()

	byKind := make(map[token.Kind]*overlay.Overlay)
	for _, rule := range token.Grammar() {
		byKind[rule.Kind] = overlay.New(ctx, rule, buf, br, "ed-1")
	}

	assert.Len(t, byKind[token.Profile].Units(), 1)
	assert.Len(t, byKind[token.Image].Units(), 1)
	assert.Len(t, byKind[token.Video].Units(), 1)
}
