// Package memory provides the semantic (embedding-based) long-term
// tier of session memory.
//
// Each completed assistant turn is stored as an append-only record:
// the embedding of the user input concatenated with the response, the
// response text as the document, and string metadata. Recall is
// nearest-neighbor search by cosine similarity; RecentHistory is a
// separate chronological access path.
//
// Architecture:
//   - Store: vector storage backend (chromem-go embedded by default)
//   - Embedder: text-to-vector conversion (ONNX model locally, mock
//     for tests, ristretto cache wrapper for either)
//   - Manager: orchestrates Remember, Recall and RecentHistory and is
//     the sole owner of the collection
//
// Backend failures surface as core.ErrMemoryUnavailable and are
// non-fatal: the dispatcher continues the turn without augmentation.
package memory
