package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridaylabs/friday-go/calendar"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "events.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndUpcoming(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Add(ctx, calendar.Event{
		Summary: "standup",
		Start:   now.Add(24 * time.Hour),
	}))
	require.NoError(t, s.Add(ctx, calendar.Event{
		Summary: "dentist",
		Start:   now.Add(48 * time.Hour),
	}))

	events, err := s.Upcoming(ctx, now, 7)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Soonest first.
	assert.Equal(t, "standup", events[0].Summary)
	assert.Equal(t, "dentist", events[1].Summary)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, 60, events[0].DurationMinutes)
}

func TestUpcomingWindowExcludesDistantEvents(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Add(ctx, calendar.Event{Summary: "soon", Start: now.Add(time.Hour)}))
	require.NoError(t, s.Add(ctx, calendar.Event{Summary: "next quarter", Start: now.AddDate(0, 2, 0)}))

	events, err := s.Upcoming(ctx, now, 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "soon", events[0].Summary)
}

func TestUpcomingEmpty(t *testing.T) {
	s := newStore(t)

	events, err := s.Upcoming(context.Background(), time.Now(), 7)
	require.NoError(t, err)
	assert.Empty(t, events)
}
