// Package calendar provides event scheduling: natural-language date
// parsing and a persistent event store.
package calendar

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Event is a scheduled calendar entry.
type Event struct {
	ID              string
	Summary         string
	Description     string
	Start           time.Time
	DurationMinutes int
}

// Service stores and lists events.
type Service interface {
	Add(ctx context.Context, ev Event) error
	Upcoming(ctx context.Context, from time.Time, days int) ([]Event, error)
	Close() error
}

var clockPattern = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)

// ParseNaturalDate interprets phrases like "tomorrow at 3 pm" relative
// to now. Unrecognized phrases default to one hour from now.
func ParseNaturalDate(text string, now time.Time) time.Time {
	lower := strings.ToLower(text)

	day := now
	switch {
	case strings.Contains(lower, "tomorrow"):
		day = now.AddDate(0, 0, 1)
	case strings.Contains(lower, "next week"):
		day = now.AddDate(0, 0, 7)
	case strings.Contains(lower, "next month"):
		day = now.AddDate(0, 1, 0)
	case strings.Contains(lower, "today"):
		day = now
	}

	if m := clockPattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	}

	// No explicit clock time. Same-day phrasing means an hour from
	// now, anything else defaults to 9 AM on the target day.
	if day.Year() == now.Year() && day.YearDay() == now.YearDay() {
		return now.Add(time.Hour)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, now.Location())
}

// FormatEventTime renders an event start for spoken confirmations.
func FormatEventTime(t time.Time) string {
	return t.Format("3:04 PM on January 2")
}

// FormatList renders events as a bulleted agenda.
func FormatList(events []Event, days int) string {
	if len(events) == 0 {
		return fmt.Sprintf("You don't have any events in the next %d days.", days)
	}
	var b strings.Builder
	b.WriteString("Here are your upcoming events:")
	for _, ev := range events {
		fmt.Fprintf(&b, "\n- %s at %s", ev.Summary, FormatEventTime(ev.Start))
	}
	return b.String()
}
