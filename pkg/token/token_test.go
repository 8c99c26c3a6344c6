package token_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tagedit/pkg/token"
)

func TestGrammarMatches(t *testing.T) {
	rules := make(map[token.Kind]token.Rule)
	for _, r := range token.Grammar() {
		rules[r.Kind] = r
	}

	tests := []struct {
		name  string
		kind  token.Kind
		input string
		want  []string
	}{
		{
			name:  "profile variable",
			kind:  token.Profile,
			input: "Hello {name}, meet {other_user}",
			want:  []string{"{name}", "{other_user}"},
		},
		{
			name:  "profile rejects spaces",
			kind:  token.Profile,
			input: "not a {var name} token",
			want:  nil,
		},
		{
			name:  "image link",
			kind:  token.Image,
			input: "see http://x/a.png and https://cdn.example.com/b.jpeg here",
			want:  []string{"http://x/a.png", "https://cdn.example.com/b.jpeg"},
		},
		{
			name:  "video bilibili",
			kind:  token.Video,
			input: "watch https://www.bilibili.com/video/xyz now",
			want:  []string{"https://www.bilibili.com/video/xyz"},
		},
		{
			name:  "video file link",
			kind:  token.Video,
			input: "clip at https://cdn.example.com/v.mp4",
			want:  []string{"https://cdn.example.com/v.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := rules[tt.kind]
			require.True(t, ok)
			got := rule.Pattern.FindAllString(tt.input, -1)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrammarNeverCrossesNewlines(t *testing.T) {
	for _, rule := range token.Grammar() {
		for _, m := range rule.Pattern.FindAllString("a {na\nme} http://x/a\n.png text", -1) {
			assert.NotContains(t, m, "\n", "rule %s matched across a newline", rule.Kind)
		}
	}
}

func TestSplice(t *testing.T) {
	rules := make(map[token.Kind]token.Rule)
	for _, r := range token.Grammar() {
		rules[r.Kind] = r
	}

	assert.Equal(t, "{name}", rules[token.Profile].Splice("name"))
	assert.Equal(t, " http://x/a.png ", rules[token.Image].Splice("http://x/a.png"))
	assert.Equal(t, " https://www.bilibili.com/video/xyz ", rules[token.Video].Splice("https://www.bilibili.com/video/xyz"))

	// Malformed payloads are inserted verbatim, never rejected.
	assert.Equal(t, "{}", rules[token.Profile].Splice(""))
	assert.Equal(t, "  ", rules[token.Video].Splice(""))
}

func TestValidateRules(t *testing.T) {
	assert.NoError(t, token.ValidateRules(token.Grammar()))

	bad := []token.Rule{
		{Kind: token.Profile, Pattern: nil, Class: "x"},
		{Kind: token.Kind(99), Pattern: regexp.MustCompile(`a`), Class: ""},
		{Kind: token.Image, Pattern: regexp.MustCompile(`[\s\S]+`), Class: "y"},
	}
	err := token.ValidateRules(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil pattern")
	assert.Contains(t, err.Error(), "unknown kind")
	assert.Contains(t, err.Error(), "newline")
}

func TestKindKeysRoundTrip(t *testing.T) {
	for _, k := range token.Kinds() {
		got, ok := token.ParseKind(k.Key())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := token.ParseKind("gif")
	assert.False(t, ok)
}

func TestLabeler(t *testing.T) {
	assert.Equal(t, "Profile variable", token.EnglishLabels.Label("variable"))

	custom := token.MapLabeler{"image": "Bild"}
	assert.Equal(t, "Bild", custom.Label("image"))
	assert.Equal(t, "video", custom.Label("video"), "missing entries fall back to the key")
}
