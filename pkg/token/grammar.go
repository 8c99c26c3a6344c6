package token

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Rule describes how one token kind is recognized and rendered. Rules are
// evaluated independently; each one owns its own overlay layer, and the
// engine never resolves overlap between layers.
type Rule struct {
	Kind Kind

	// Pattern recognizes the token in buffer text. It must never match
	// across a newline; the incremental rescan relies on line boundaries
	// being safe cut points.
	Pattern *regexp.Regexp

	// Class is the render class attached to every unit this rule produces.
	Class string
}

// Default render classes, overridable through editor options.
const (
	ProfileClass = "tag-profile"
	ImageClass   = "tag-image"
	VideoClass   = "tag-video"
)

var (
	profilePattern = regexp.MustCompile(`\{\w+\}`)
	imagePattern   = regexp.MustCompile(`https?://[^\s]+\.(?:png|jpe?g|gif|webp)`)
	videoPattern   = regexp.MustCompile(`https?://(?:www\.)?bilibili\.com/video/[\w-]+|https?://[^\s]+\.(?:mp4|webm|mov)`)
)

// Grammar returns the canonical rule table, one rule per kind, in
// evaluation order.
func Grammar() []Rule {
	return []Rule{
		{Kind: Profile, Pattern: profilePattern, Class: ProfileClass},
		{Kind: Image, Pattern: imagePattern, Class: ImageClass},
		{Kind: Video, Pattern: videoPattern, Class: VideoClass},
	}
}

// Splice wraps a picker payload into the text form this rule's kind
// inserts into the buffer. Profile payloads become `{payload}`; link
// payloads are padded with a space on both sides so they never glue onto
// neighboring text. Payload content is inserted verbatim, even when empty.
func (r Rule) Splice(payload string) string {
	switch r.Kind {
	case Profile:
		return "{" + payload + "}"
	default:
		return " " + payload + " "
	}
}

// ValidateRules checks a rule table for the invariants the overlay engine
// depends on, accumulating every violation.
func ValidateRules(rules []Rule) error {
	var err error
	seen := make(map[Kind]bool, len(rules))
	for i, r := range rules {
		if !r.Kind.Valid() {
			err = multierr.Append(err, errors.Errorf("rule %d: unknown kind %d", i, int(r.Kind)))
		}
		if r.Pattern == nil {
			err = multierr.Append(err, errors.Errorf("rule %d (%s): nil pattern", i, r.Kind))
			continue
		}
		if r.Class == "" {
			err = multierr.Append(err, errors.Errorf("rule %d (%s): empty render class", i, r.Kind))
		}
		if r.Pattern.MatchString("\n") {
			err = multierr.Append(err, errors.Errorf("rule %d (%s): pattern matches a bare newline", i, r.Kind))
		}
		if seen[r.Kind] {
			err = multierr.Append(err, errors.Errorf("rule %d (%s): duplicate kind", i, r.Kind))
		}
		seen[r.Kind] = true
	}
	return err
}
