// Package palette recognizes the trigger sequence at the caret and offers
// the fixed menu of insertable token kinds.
package palette

import (
	"regexp"

	"github.com/walteh/tagedit/pkg/span"
	"github.com/walteh/tagedit/pkg/token"
)

// DefaultTrigger is the character that opens the palette.
const DefaultTrigger = '/'

// Option is one palette entry. The menu always holds exactly one option
// per token kind; typing after the trigger never filters it down.
type Option struct {
	Kind  token.Kind
	Label string
}

// Palette matches triggers and serves the option menu.
type Palette struct {
	trigger   rune
	triggerRe *regexp.Regexp
	labeler   token.Labeler
}

// New builds a palette with the default '/' trigger. labeler may be nil,
// in which case English labels are served.
func New(labeler token.Labeler) *Palette {
	return NewWithTrigger(DefaultTrigger, labeler)
}

// NewWithTrigger builds a palette with a custom trigger character.
func NewWithTrigger(trigger rune, labeler token.Labeler) *Palette {
	if labeler == nil {
		labeler = token.EnglishLabels
	}
	return &Palette{
		trigger:   trigger,
		triggerRe: regexp.MustCompile(regexp.QuoteMeta(string(trigger)) + `\w*$`),
		labeler:   labeler,
	}
}

// Trigger returns the trigger character.
func (p *Palette) Trigger() rune {
	return p.trigger
}

// MatchTrigger inspects the text before the caret and returns the span of
// the trigger sequence (the trigger character plus any word characters up
// to the caret), or nil when the caret is not immediately preceded by
// one. A nil result is the normal "nothing to do" outcome.
func (p *Palette) MatchTrigger(beforeCaret string) *span.Span {
	loc := p.triggerRe.FindStringIndex(beforeCaret)
	if loc == nil {
		return nil
	}
	s := span.New(loc[0], loc[1])
	return &s
}

// Options returns the three insertable kinds, labeled through the
// display-name source, in palette order. The typed trigger suffix is
// deliberately ignored: the menu is never filtered.
func (p *Palette) Options() []Option {
	kinds := token.Kinds()
	out := make([]Option, len(kinds))
	for i, k := range kinds {
		out[i] = Option{Kind: k, Label: p.labeler.Label(k.Key())}
	}
	return out
}
