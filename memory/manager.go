package memory

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/core"
)

// RecallPrefix marks documents returned by Recall as previously stated
// conversation context.
const RecallPrefix = "Previously: "

// Manager owns the semantic memory collection. It is the only
// component that mutates the embedding index and document store.
//
// Failures of the embedding backend or vector index surface as
// core.ErrMemoryUnavailable; callers treat that as non-fatal and
// continue without augmentation.
type Manager struct {
	store    Store
	embedder Embedder
	config   *Config
	log      *logrus.Entry
}

// Config holds Manager configuration.
type Config struct {
	// Enabled toggles the semantic tier on/off.
	Enabled bool

	// TopK is the default number of documents Recall returns.
	// Default: 3.
	TopK int

	// RecentLimit is the default RecentHistory window.
	// Default: 5.
	RecentLimit int

	// MinSimilarity drops recall results below this cosine similarity
	// [0.0-1.0]. Default: 0 (keep everything).
	// Tiny local models produce lower scores than production
	// embedders, so the default is permissive.
	MinSimilarity float32
}

// DefaultConfig returns sensible defaults for the embedded setup.
var DefaultConfig = &Config{
	Enabled:     true,
	TopK:        3,
	RecentLimit: 5,
}

// NewManager creates a Manager over the given store and embedder.
func NewManager(store Store, embedder Embedder, config *Config, log *logrus.Logger) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	if config.TopK <= 0 {
		config.TopK = 3
	}
	if config.RecentLimit <= 0 {
		config.RecentLimit = 5
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		store:    store,
		embedder: embedder,
		config:   config,
		log:      log.WithField("component", "memory"),
	}
}

// Remember appends a new record for a completed assistant turn. The
// embedding covers "userInput + ' ' + aiResponse"; the stored document
// is the response. Append-only: nothing is ever overwritten.
func (m *Manager) Remember(ctx context.Context, userInput, aiResponse string, metadata map[string]string) error {
	if !m.config.Enabled {
		return nil
	}

	embedding, err := m.embedder.Embed(ctx, userInput+" "+aiResponse)
	if err != nil {
		return fmt.Errorf("%w: embed exchange: %v", core.ErrMemoryUnavailable, err)
	}

	rec := NewRecord(embedding, aiResponse, metadata)
	if err := m.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("%w: insert record: %v", core.ErrMemoryUnavailable, err)
	}

	m.log.WithField("id", rec.ID).Debug("stored exchange")
	return nil
}

// Recall returns up to topK stored documents nearest to the query by
// cosine similarity, each prefixed with RecallPrefix, ordered by
// descending similarity. Ties break by insertion order (earlier wins),
// so re-running against an unchanged index is deterministic. topK <= 0
// uses the configured default.
func (m *Manager) Recall(ctx context.Context, query string, topK int) ([]string, error) {
	if !m.config.Enabled {
		return nil, nil
	}
	if topK <= 0 {
		topK = m.config.TopK
	}

	embedding, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", core.ErrMemoryUnavailable, err)
	}

	results, err := m.store.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: query store: %v", core.ErrMemoryUnavailable, err)
	}

	docs := make([]string, 0, len(results))
	for _, res := range results {
		if res.Similarity < m.config.MinSimilarity {
			continue
		}
		docs = append(docs, RecallPrefix+res.Record.Document)
	}

	m.log.WithFields(logrus.Fields{
		"query":   truncateLog(query, 50),
		"results": len(docs),
	}).Debug("recall")
	return docs, nil
}

// RecentHistory returns up to limit most recently stored documents in
// insertion order. This is a non-semantic access path for lightweight
// context review. limit <= 0 uses the configured default.
func (m *Manager) RecentHistory(ctx context.Context, limit int) ([]string, error) {
	if !m.config.Enabled {
		return nil, nil
	}
	if limit <= 0 {
		limit = m.config.RecentLimit
	}

	records, err := m.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent history: %v", core.ErrMemoryUnavailable, err)
	}

	docs := make([]string, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec.Document)
	}
	return docs, nil
}

// truncateLog truncates text for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
