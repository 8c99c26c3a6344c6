package token

// Labeler is the display-name source boundary. The host supplies a
// translation-aware implementation; the core only asks for the three
// stable keys and never translates anything itself.
type Labeler interface {
	Label(key string) string
}

// EnglishLabels is the fallback Labeler used when the host supplies none.
var EnglishLabels Labeler = MapLabeler{
	"variable": "Profile variable",
	"image":    "Image link",
	"video":    "Video link",
}

// MapLabeler serves labels from a plain map, falling back to the key
// itself when an entry is missing.
type MapLabeler map[string]string

func (m MapLabeler) Label(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}
