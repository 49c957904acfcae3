package memory

import (
	"context"
	"time"
)

// Record is one entry in the semantic tier: the embedding of a
// completed exchange, the assistant response as the stored document,
// and free-form string metadata.
//
// Records are append-only. The ID is time-prefixed to the microsecond
// so insertion order is derivable from the ID even under rapid writes,
// and the embedding dimensionality is fixed for the lifetime of the
// collection.
type Record struct {
	ID        string
	Embedding []float32
	Document  string
	Metadata  map[string]string
	CreatedAt time.Time
}

// SearchResult pairs a record with its cosine similarity to a query.
type SearchResult struct {
	Record     Record
	Similarity float32
}

// Store is the vector storage backend interface.
// Implementations: chromem (embedded, default), pgvector-style stores
// for production.
type Store interface {
	// Insert appends a record with its embedding. Records are never
	// overwritten or deleted through this interface.
	Insert(ctx context.Context, rec Record) error

	// Query retrieves up to topK records by cosine similarity,
	// highest first. Equal similarities order by record ID ascending,
	// which is insertion order.
	Query(ctx context.Context, embedding []float32, topK int) ([]SearchResult, error)

	// Recent returns up to limit most recently inserted records in
	// insertion order, independent of similarity.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close releases resources.
	Close() error
}

// Embedder converts text to vector embeddings. Embeddings must be
// deterministic for identical input.
// Implementations: mock (testing), onnx (local model), cache
// (ristretto wrapper around either).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}
