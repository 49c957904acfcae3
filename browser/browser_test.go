package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSite(t *testing.T) {
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"open github", "github", true},
		{"go to youtube", "youtube", true},
		{"visit the wikipedia page", "the wikipedia", true},
		{"navigate to reddit site", "reddit", true},
		{"what time is it", "", false},
	}
	for _, tt := range tests {
		site, ok := ExtractSite(tt.query)
		assert.Equal(t, tt.ok, ok, "query %q", tt.query)
		if ok {
			assert.Equal(t, tt.want, site, "query %q", tt.query)
		}
	}
}

func TestResolveKnownSites(t *testing.T) {
	assert.Equal(t, "https://www.github.com", Resolve("github"))
	assert.Equal(t, "https://www.wikipedia.org", Resolve("Wikipedia"))
	assert.Equal(t, "https://www.reddit.com", Resolve("reddit"))
}

func TestResolveUnknownSite(t *testing.T) {
	assert.Equal(t, "https://www.stackoverflow", Resolve("stack overflow"))
	assert.Equal(t, "https://example.com", Resolve("https://example.com"))
}

func TestSearchURLEscapesTerm(t *testing.T) {
	assert.Equal(t, "https://www.google.com/search?q=go+generics", SearchURL("go generics"))
}
