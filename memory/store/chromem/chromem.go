// Package chromem backs the semantic memory store with chromem-go, a
// pure Go embedded vector database.
package chromem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"
	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/memory"
)

const collectionName = "conversation_history"

const createdAtKey = "created_at"

// Config configures the store.
type Config struct {
	// Path enables on-disk persistence when non-empty. Empty keeps
	// the index purely in memory.
	Path string

	// Compress gzips persisted documents. Ignored without Path.
	Compress bool

	// Dimensions is the embedding vector size, needed to enumerate a
	// reopened persistent collection when rebuilding the insertion
	// log. Default: 384.
	Dimensions int
}

// Store wraps a single chromem collection. It owns the embedding index
// and document store; writes go only through Insert.
type Store struct {
	db  *chromem.DB
	col *chromem.Collection
	log *logrus.Entry

	// insertion log for Recent: chromem has no chronological access
	// path of its own.
	mu  sync.RWMutex
	seq []memory.Record
}

// New creates a chromem-backed store. Reopening a persistent path
// rebuilds the insertion log from the collection, so Recent and Query
// agree about the same records across restarts.
func New(cfg Config, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = 384
	}

	var db *chromem.DB
	var err error
	if cfg.Path != "" {
		db, err = chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("open persistent db: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings are always provided by the caller, so no embedding
	// func is registered; distance is the default cosine.
	col, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s := &Store{
		db:  db,
		col: col,
		log: log.WithField("component", "chromem"),
	}
	if err := s.rebuildSeq(cfg.Dimensions); err != nil {
		return nil, fmt.Errorf("rebuild insertion log: %w", err)
	}
	return s, nil
}

// rebuildSeq reconstructs the insertion log from a reopened
// collection. chromem has no enumeration API, so all documents are
// pulled through an exhaustive similarity query with a probe vector;
// IDs are microsecond-time-prefixed, so sorting by ID restores
// insertion order.
func (s *Store) rebuildSeq(dimensions int) error {
	count := s.col.Count()
	if count == 0 {
		return nil
	}

	probe := make([]float32, dimensions)
	probe[0] = 1

	results, err := s.col.QueryEmbedding(context.Background(), probe, count, nil, nil)
	if err != nil {
		return fmt.Errorf("enumerate collection: %w", err)
	}

	records := make([]memory.Record, 0, len(results))
	for _, res := range results {
		records = append(records, resultToRecord(res))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	s.seq = records
	s.log.WithField("records", len(records)).Debug("insertion log rebuilt")
	return nil
}

// Insert appends a record to the collection and the insertion log.
func (s *Store) Insert(ctx context.Context, rec memory.Record) error {
	metadata := make(map[string]string, len(rec.Metadata)+1)
	for k, v := range rec.Metadata {
		metadata[k] = v
	}
	metadata[createdAtKey] = rec.CreatedAt.UTC().Format(time.RFC3339Nano)

	doc := chromem.Document{
		ID:        rec.ID,
		Content:   rec.Document,
		Embedding: rec.Embedding,
		Metadata:  metadata,
	}
	if err := s.col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	s.mu.Lock()
	s.seq = append(s.seq, rec)
	s.mu.Unlock()

	s.log.WithField("id", rec.ID).Debug("stored document")
	return nil
}

// tieBreakSlack widens the fetch window past topK so equal-similarity
// records around the cutoff get the deterministic ID ordering below.
const tieBreakSlack = 16

// Query returns up to topK records by cosine similarity, highest
// first. Equal similarities order by ID ascending; IDs are
// time-prefixed, so earlier insertion wins and repeated queries over
// an unchanged index are deterministic.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]memory.SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	// Fetch past topK so equal-similarity records straddling the cutoff
	// are ranked by our tie-break instead of chromem's internal order.
	// Ties wider than the slack still fall to chromem's selection.
	// chromem rejects nResults larger than the collection.
	fetch := topK + tieBreakSlack
	if count := s.col.Count(); fetch > count {
		fetch = count
	}
	if fetch <= 0 {
		return nil, nil
	}

	results, err := s.col.QueryEmbedding(ctx, embedding, fetch, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	out := make([]memory.SearchResult, 0, len(results))
	for _, res := range results {
		out = append(out, memory.SearchResult{
			Record:     resultToRecord(res),
			Similarity: res.Similarity,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Record.ID < out[j].Record.ID
	})

	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// Recent returns up to limit most recently inserted records in
// insertion order.
func (s *Store) Recent(ctx context.Context, limit int) ([]memory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.seq) {
		limit = len(s.seq)
	}
	if limit <= 0 {
		return nil, nil
	}

	out := make([]memory.Record, limit)
	copy(out, s.seq[len(s.seq)-limit:])
	return out, nil
}

// Close releases resources. chromem keeps everything in memory (or
// flushed on write when persistent), so there is nothing to tear down.
func (s *Store) Close() error {
	return nil
}

func resultToRecord(res chromem.Result) memory.Record {
	createdAt, _ := time.Parse(time.RFC3339Nano, res.Metadata[createdAtKey])

	metadata := make(map[string]string, len(res.Metadata))
	for k, v := range res.Metadata {
		if k != createdAtKey {
			metadata[k] = v
		}
	}

	return memory.Record{
		ID:        res.ID,
		Embedding: res.Embedding,
		Document:  res.Content,
		Metadata:  metadata,
		CreatedAt: createdAt,
	}
}
