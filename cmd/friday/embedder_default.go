//go:build !onnx

package main

import (
	"github.com/fridaylabs/friday-go/memory"
	"github.com/fridaylabs/friday-go/memory/embedder/cache"
	"github.com/fridaylabs/friday-go/memory/embedder/mock"
)

// newEmbedder returns the deterministic token-hash embedder behind a
// memoization cache. Builds tagged onnx swap in local model inference.
func newEmbedder() (memory.Embedder, error) {
	return cache.New(mock.New(), cfg.Memory.EmbedCacheEntries)
}
