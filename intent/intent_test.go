package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fridaylabs/friday-go/intent"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		utterance string
		want      intent.Tag
	}{
		{"", intent.TagUnknown},
		{"   ", intent.TagUnknown},
		{"open youtube", intent.TagOpenWebsite},
		{"please navigate to github", intent.TagOpenWebsite},
		{"schedule a meeting", intent.TagAddEvent},
		{"add event", intent.TagAddEvent},
		{"show my events", intent.TagViewEvents},
		{"what are upcoming meetings", intent.TagViewEvents},
		{"hello there", intent.TagGreet},
		{"hey", intent.TagGreet},
		{"what time is it", intent.TagTime},
		{"what's the date", intent.TagDate},
		{"search for recipes", intent.TagSearch},
		{"google something", intent.TagSearch},
		{"what's the weather like", intent.TagWeather},
		{"how hot is it", intent.TagWeather},
		{"goodbye", intent.TagExit},
		{"tell me a joke", intent.TagJoke},
		{"make me laugh", intent.TagJoke},
		{"what can you do", intent.TagHelp},
		{"explain quantum entanglement", intent.TagAI},
		{"who wrote hamlet", intent.TagAI},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, intent.Classify(tc.utterance), "utterance %q", tc.utterance)
	}
}

// Utterances matching several rules must resolve to the earliest rule
// in the canonical order.
func TestClassifyOrderingStability(t *testing.T) {
	cases := []struct {
		utterance string
		want      intent.Tag
	}{
		// open_website beats search and greet
		{"hey, open google and search for cats", intent.TagOpenWebsite},
		// add_event beats time
		{"schedule a meeting at lunch time", intent.TagAddEvent},
		// greet beats weather
		{"hello, what's the weather", intent.TagGreet},
		// time beats date and weather
		{"time and date and forecast please", intent.TagTime},
		// search beats weather
		{"search for snow boots", intent.TagSearch},
		// weather beats exit
		{"is it cold outside, bye", intent.TagWeather},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, intent.Classify(tc.utterance), "utterance %q", tc.utterance)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, intent.TagGreet, intent.Classify("HELLO"))
	assert.Equal(t, intent.TagWeather, intent.Classify("WEATHER in Oslo"))
}

func TestRulesOrder(t *testing.T) {
	want := []intent.Tag{
		intent.TagOpenWebsite,
		intent.TagAddEvent,
		intent.TagViewEvents,
		intent.TagGreet,
		intent.TagTime,
		intent.TagDate,
		intent.TagSearch,
		intent.TagWeather,
		intent.TagExit,
		intent.TagJoke,
		intent.TagHelp,
	}

	got := make([]intent.Tag, 0, len(intent.Rules))
	for _, rule := range intent.Rules {
		got = append(got, rule.Tag)
	}
	assert.Equal(t, want, got)
}
