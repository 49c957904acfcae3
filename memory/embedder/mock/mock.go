// Package mock provides a deterministic embedder for tests and local
// runs without a model file.
package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Embedder hashes tokens into a fixed-size bag-of-words vector. The
// result is deterministic for identical input, and texts sharing
// tokens land near each other under cosine similarity, which is enough
// for retrieval tests without a real model.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder with all-MiniLM-L6-v2 dimensions.
func New() *Embedder {
	return &Embedder{dimensions: 384}
}

// Embed converts text to a deterministic unit vector.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding := make([]float32, m.dimensions)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?;:\"'")
		if token == "" {
			continue
		}
		h := fnv.New64a()
		h.Write([]byte(token))
		hash := h.Sum64()

		embedding[hash%uint64(m.dimensions)] += 1.0
		// Second bucket reduces collision sensitivity for short texts.
		embedding[(hash>>32)%uint64(m.dimensions)] += 0.5
	}

	return normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return m.dimensions
}

// normalize converts the vector to unit length.
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
