//go:build onnx

package main

import (
	"github.com/fridaylabs/friday-go/memory"
	"github.com/fridaylabs/friday-go/memory/embedder/cache"
	"github.com/fridaylabs/friday-go/memory/embedder/onnx"
)

// newEmbedder returns the local ONNX embedding model behind a
// memoization cache. Model construction failure aborts startup; no
// turn is processed without a working embedder.
func newEmbedder() (memory.Embedder, error) {
	inner, err := onnx.New(onnx.Config{
		ModelPath:     cfg.Memory.ModelPath,
		TokenizerPath: cfg.Memory.TokenizerPath,
	}, log)
	if err != nil {
		return nil, err
	}
	return cache.New(inner, cfg.Memory.EmbedCacheEntries)
}
