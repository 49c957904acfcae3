// Package sqlite persists calendar events in an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/fridaylabs/friday-go/calendar"
	"github.com/fridaylabs/friday-go/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id               TEXT PRIMARY KEY,
	summary          TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	start_at         TIMESTAMP NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 60
);
CREATE INDEX IF NOT EXISTS idx_events_start_at ON events (start_at);
`

// Store is a SQLite-backed calendar.Service.
type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

// New opens (and if needed creates) the event database at path. Use
// ":memory:" for an ephemeral calendar.
func New(path string, log *logrus.Logger) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open calendar db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	return &Store{db: db, log: log.WithField("component", "calendar")}, nil
}

// Add stores an event, assigning an ID when none is set.
func (s *Store) Add(ctx context.Context, ev calendar.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.DurationMinutes <= 0 {
		ev.DurationMinutes = 60
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, summary, description, start_at, duration_minutes) VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.Summary, ev.Description, ev.Start.UTC(), ev.DurationMinutes,
	)
	if err != nil {
		s.log.WithError(err).Warn("failed to insert event")
		return fmt.Errorf("%w: insert event: %v", core.ErrCollaboratorUnavailable, err)
	}

	s.log.WithFields(logrus.Fields{"summary": ev.Summary, "start": ev.Start}).Info("event added")
	return nil
}

// Upcoming lists events starting within days of from, soonest first.
func (s *Store) Upcoming(ctx context.Context, from time.Time, days int) ([]calendar.Event, error) {
	until := from.AddDate(0, 0, days)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, summary, description, start_at, duration_minutes
		 FROM events WHERE start_at >= ? AND start_at < ?
		 ORDER BY start_at ASC`,
		from.UTC(), until.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query events: %v", core.ErrCollaboratorUnavailable, err)
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		var ev calendar.Event
		var start time.Time
		if err := rows.Scan(&ev.ID, &ev.Summary, &ev.Description, &start, &ev.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: scan event: %v", core.ErrCollaboratorUnavailable, err)
		}
		ev.Start = start.Local()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate events: %v", core.ErrCollaboratorUnavailable, err)
	}
	return events, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
