package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fridaylabs/friday-go/browser"
	"github.com/fridaylabs/friday-go/calendar"
	"github.com/fridaylabs/friday-go/core"
	"github.com/fridaylabs/friday-go/weather"
)

// handlerFunc produces the outcome for one intent. Handlers return
// tagged results instead of raw errors; the dispatcher converts
// failures to apologies.
type handlerFunc func(ctx context.Context, t *turn) core.HandlerResult

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Did you hear about the mathematician who's afraid of negative numbers? He'll stop at nothing to avoid them.",
	"Why don't skeletons fight each other? They don't have the guts.",
	"I told my wife she was drawing her eyebrows too high. She looked surprised.",
	"What do you call a fake noodle? An impasta!",
}

const helpText = `I can help you with:
- Time and date information
- Weather forecasts
- Web searches
- Jokes and conversation
- Calendar management
- And much more!`

func (d *Dispatcher) handleGreet(_ context.Context, _ *turn) core.HandlerResult {
	if name := d.facts.UserName(); name != "" {
		return core.Success(fmt.Sprintf("Hello %s! How can I help you today?", name))
	}
	return core.Success("Hello! How can I assist you today?")
}

func (d *Dispatcher) handleTime(_ context.Context, _ *turn) core.HandlerResult {
	return core.Success(time.Now().Format("The time is 3:04 PM"))
}

func (d *Dispatcher) handleDate(_ context.Context, _ *turn) core.HandlerResult {
	return core.Success(time.Now().Format("Today is Monday, January 02, 2006"))
}

func (d *Dispatcher) handleJoke(_ context.Context, _ *turn) core.HandlerResult {
	return core.Success(jokes[rand.Intn(len(jokes))])
}

func (d *Dispatcher) handleHelp(_ context.Context, _ *turn) core.HandlerResult {
	return core.Success(helpText)
}

func (d *Dispatcher) handleExit(_ context.Context, _ *turn) core.HandlerResult {
	return core.Success("Goodbye! Have a great day!")
}

func (d *Dispatcher) handleOpenWebsite(ctx context.Context, t *turn) core.HandlerResult {
	site, ok := browser.ExtractSite(t.utterance)
	if !ok {
		return core.Success("I didn't catch which website you want to open.")
	}

	url := browser.Resolve(site)
	if err := d.opener.Open(ctx, url); err != nil {
		return core.Failure(core.FailBrowser)
	}
	return core.Success("Opening " + url)
}

func (d *Dispatcher) handleWeather(ctx context.Context, t *turn) core.HandlerResult {
	city := weather.ExtractCity(t.utterance)
	if city == "" && len(t.followUps) > 0 {
		city = t.followUps[0]
	}
	if city == "" {
		if len(t.followUps) > 0 {
			// Follow-up was already asked and came back empty.
			return core.Success("I couldn't get the city name.")
		}
		return core.NeedsFollowUp("For which city?")
	}

	if d.weather == nil {
		return core.Failure(core.FailWeather)
	}
	report, err := d.weather.Current(ctx, city)
	if err != nil {
		return core.Failure(core.FailWeather)
	}
	return core.Success(report)
}

// handleAddEvent runs the two-step scheduling flow: event description,
// then event time. An empty answer at either step aborts without
// creating an entry. Non-empty answers are taken literally, even when
// they look like another intent.
func (d *Dispatcher) handleAddEvent(ctx context.Context, t *turn) core.HandlerResult {
	switch len(t.followUps) {
	case 0:
		return core.NeedsFollowUp("What's the event about?")
	case 1:
		if t.followUps[0] == "" {
			return core.Success("I didn't get the event details.")
		}
		return core.NeedsFollowUp("When is this event? (For example: tomorrow at 3 PM)")
	}

	summary, timeText := t.followUps[0], t.followUps[1]
	if summary == "" {
		return core.Success("I didn't get the event details.")
	}
	if timeText == "" {
		return core.Success("I didn't get the event time.")
	}

	if d.calendar == nil {
		return core.Failure(core.FailCalendar)
	}

	start := calendar.ParseNaturalDate(timeText, time.Now())
	ev := calendar.Event{Summary: summary, Start: start, DurationMinutes: 60}
	if err := d.calendar.Add(ctx, ev); err != nil {
		return core.Failure(core.FailCalendar)
	}
	return core.Success(fmt.Sprintf("Added event: %s at %s", summary, calendar.FormatEventTime(start)))
}

func (d *Dispatcher) handleViewEvents(ctx context.Context, _ *turn) core.HandlerResult {
	if d.calendar == nil {
		return core.Failure(core.FailCalendar)
	}

	const days = 7
	events, err := d.calendar.Upcoming(ctx, time.Now(), days)
	if err != nil {
		return core.Failure(core.FailCalendar)
	}
	return core.Success(calendar.FormatList(events, days))
}

func (d *Dispatcher) handleSearch(ctx context.Context, t *turn) core.HandlerResult {
	if len(t.followUps) == 0 {
		return core.NeedsFollowUp("What should I search for?")
	}

	term := t.followUps[0]
	if term == "" {
		return core.Success("I didn't catch a search term.")
	}

	if err := d.opener.Open(ctx, browser.SearchURL(term)); err != nil {
		return core.Failure(core.FailSearch)
	}
	return core.Success("Here are results for " + term)
}
