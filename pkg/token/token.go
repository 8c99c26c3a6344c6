// Package token defines the closed set of recognizable inline token kinds
// and the grammar rules that match them in buffer text.
package token

// Kind discriminates the three recognizable token shapes.
type Kind int

const (
	Profile Kind = iota
	Image
	Video
)

// kindCount is the size of the closed set.
const kindCount = 3

func (k Kind) String() string {
	switch k {
	case Profile:
		return "profile"
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Key returns the stable lookup key handed to the display-name source.
func (k Kind) Key() string {
	switch k {
	case Profile:
		return "variable"
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a member of the closed set.
func (k Kind) Valid() bool {
	return k >= Profile && k < kindCount
}

// Kinds returns the closed set in palette order.
func Kinds() []Kind {
	return []Kind{Profile, Image, Video}
}

// ParseKind maps a stable key back to its Kind. ok is false for anything
// outside the closed set.
func ParseKind(key string) (Kind, bool) {
	switch key {
	case "variable", "profile":
		return Profile, true
	case "image":
		return Image, true
	case "video":
		return Video, true
	default:
		return 0, false
	}
}
