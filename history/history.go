// Package history keeps the short-term exchange buffer: a bounded,
// ordered window of the most recent validated exchanges, used only to
// build the generative-completion prompt. Rule-based handlers never
// consult it.
package history

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/core"
)

// DefaultCapacity is the number of exchanges retained when no capacity
// is given.
const DefaultCapacity = 8

// Buffer is a FIFO window of exchanges. Insertion order is
// chronological order; entries beyond capacity are silently dropped
// and never persisted elsewhere.
type Buffer struct {
	mu       sync.Mutex
	entries  []core.Exchange
	capacity int
	log      *logrus.Entry
}

// NewBuffer creates a buffer retaining up to capacity exchanges.
// A non-positive capacity falls back to DefaultCapacity.
func NewBuffer(capacity int, log *logrus.Logger) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Buffer{
		capacity: capacity,
		log:      log.WithField("component", "history"),
	}
}

// Append validates the exchange shape and stores it, evicting the
// oldest entry when the buffer is full. Invalid entries are dropped
// with a logged warning rather than returned as an error to the turn.
func (b *Buffer) Append(e core.Exchange) {
	if err := e.Validate(); err != nil {
		b.log.WithFields(logrus.Fields{
			"role":    string(e.Role),
			"content": truncate(e.Content, 40),
		}).Warn("dropping invalid exchange")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.capacity {
		b.entries = b.entries[len(b.entries)-b.capacity:]
	}
}

// Window returns up to n most recent exchanges in chronological order.
func (b *Buffer) Window(n int) []core.Exchange {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.entries) {
		n = len(b.entries)
	}
	if n <= 0 {
		return nil
	}

	out := make([]core.Exchange, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Len returns the number of retained exchanges.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
