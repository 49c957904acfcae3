// Package intent maps raw utterance text to a symbolic intent tag.
//
// Matching is ordered and first-match-wins: Rules is evaluated top to
// bottom against the lower-cased utterance and the first matching
// rule's tag is returned. The ordering is part of the package API;
// reordering Rules changes classification behavior.
package intent

import (
	"regexp"
	"strings"
)

// Tag is a symbolic intent label.
type Tag string

const (
	TagOpenWebsite Tag = "open_website"
	TagAddEvent    Tag = "add_event"
	TagViewEvents  Tag = "view_events"
	TagGreet       Tag = "greet"
	TagTime        Tag = "time"
	TagDate        Tag = "date"
	TagSearch      Tag = "search"
	TagWeather     Tag = "weather"
	TagExit        Tag = "exit"
	TagJoke        Tag = "joke"
	TagHelp        Tag = "help"

	// TagAI is the generative fallback for non-empty unmatched input.
	TagAI Tag = "ai"

	// TagUnknown is returned only for empty input.
	TagUnknown Tag = "unknown"
)

// Rule pairs a compiled predicate with the tag it resolves to.
type Rule struct {
	Tag     Tag
	Pattern *regexp.Regexp
}

// Rules is the canonical, strictly ordered rule table. Earlier rules
// take precedence over later ones.
var Rules = []Rule{
	{TagOpenWebsite, regexp.MustCompile(`\b(open|go to|visit|navigate to)\s+(.+?)\s?(website|site|page)?\b`)},
	{TagAddEvent, regexp.MustCompile(`\b(add|create|schedule|set) (an? )?(event|meeting|appointment|reminder)\b`)},
	{TagViewEvents, regexp.MustCompile(`\b(show|view|list|what are) (my|upcoming) (events|meetings|appointments)\b`)},
	{TagGreet, regexp.MustCompile(`\b(hello|hi|hey|greetings|sup|what'?s? up)\b`)},
	{TagTime, regexp.MustCompile(`\b(time|what time is it|current time)\b`)},
	{TagDate, regexp.MustCompile(`\b(date|today'?s? date|what'?s? the date)\b`)},
	{TagSearch, regexp.MustCompile(`\b(search|look up|find|google)\b`)},
	{TagWeather, regexp.MustCompile(`\b(weather|temperature|forecast|how hot|cold|rain|snow)\b`)},
	{TagExit, regexp.MustCompile(`\b(exit|quit|bye|goodbye|see you|stop)\b`)},
	{TagJoke, regexp.MustCompile(`\b(tell me a joke|make me laugh|funny)\b`)},
	{TagHelp, regexp.MustCompile(`\b(help|what can you do|assistance)\b`)},
}

// Classify resolves an utterance to a tag. It is a pure function over
// the text and never panics. Empty input yields TagUnknown; non-empty
// input that matches no rule yields TagAI.
func Classify(utterance string) Tag {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return TagUnknown
	}

	lowered := strings.ToLower(utterance)
	for _, rule := range Rules {
		if rule.Pattern.MatchString(lowered) {
			return rule.Tag
		}
	}
	return TagAI
}
