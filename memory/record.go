package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// recordIDTimeFormat orders IDs lexicographically by creation time
// down to the microsecond.
const recordIDTimeFormat = "20060102150405.000000"

// NewRecord builds an append-only record for a completed exchange.
// The document is the assistant response; the embedding covers the
// concatenated user input and response so either side of the exchange
// can surface it on recall.
func NewRecord(embedding []float32, aiResponse string, metadata map[string]string) Record {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	now := time.Now()
	return Record{
		ID:        newRecordID(now),
		Embedding: embedding,
		Document:  aiResponse,
		Metadata:  metadata,
		CreatedAt: now,
	}
}

// newRecordID derives a globally unique, time-ordered ID. The
// timestamp prefix keeps IDs monotonic per microsecond; the UUID tail
// breaks collisions under writes faster than the clock resolution.
func newRecordID(t time.Time) string {
	return fmt.Sprintf("mem_%s_%s", t.UTC().Format(recordIDTimeFormat), uuid.New().String()[:8])
}
