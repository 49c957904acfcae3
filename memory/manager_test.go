package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fridaylabs/friday-go/memory"
	"github.com/fridaylabs/friday-go/memory/embedder/mock"
	"github.com/fridaylabs/friday-go/memory/store/chromem"
)

func newManager(t *testing.T) *memory.Manager {
	t.Helper()

	store, err := chromem.New(chromem.Config{}, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return memory.NewManager(store, mock.New(), &memory.Config{Enabled: true}, nil)
}

func TestRememberAndRecall(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	err := mgr.Remember(ctx, "what is the capital of france", "The capital of France is Paris.", nil)
	if err != nil {
		t.Fatalf("Failed to remember: %v", err)
	}

	docs, err := mgr.Recall(ctx, "what is the capital of france", 3)
	if err != nil {
		t.Fatalf("Failed to recall: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected at least one recalled document")
	}
	if !strings.Contains(docs[0], "Paris") {
		t.Errorf("Expected top result to contain the stored response, got %q", docs[0])
	}
	if !strings.HasPrefix(docs[0], memory.RecallPrefix) {
		t.Errorf("Expected recall prefix on %q", docs[0])
	}
}

// A record recalled with its own query text must rank at least as high
// as any unrelated record.
func TestRetrievalSoundness(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	if err := mgr.Remember(ctx, "tell me about sushi restaurants", "Sushi restaurants serve raw fish.", nil); err != nil {
		t.Fatalf("Failed to remember: %v", err)
	}
	if err := mgr.Remember(ctx, "how do volcanoes erupt", "Volcanoes erupt when magma rises.", nil); err != nil {
		t.Fatalf("Failed to remember: %v", err)
	}

	docs, err := mgr.Recall(ctx, "tell me about sushi restaurants", 2)
	if err != nil {
		t.Fatalf("Failed to recall: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected recall results")
	}
	if !strings.Contains(docs[0], "Sushi") {
		t.Errorf("Expected the matching record first, got %q", docs[0])
	}
}

// Re-running recall against an unchanged index must return identical
// results.
func TestRecallIsDeterministic(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	responses := []string{
		"The time is noon.",
		"It is sunny in Oslo.",
		"Your meeting is at three.",
	}
	for _, resp := range responses {
		if err := mgr.Remember(ctx, "context", resp, nil); err != nil {
			t.Fatalf("Failed to remember: %v", err)
		}
	}

	first, err := mgr.Recall(ctx, "what did you say", 3)
	if err != nil {
		t.Fatalf("Failed first recall: %v", err)
	}
	second, err := mgr.Recall(ctx, "what did you say", 3)
	if err != nil {
		t.Fatalf("Failed second recall: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Result count changed between recalls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Result %d changed: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestRecallTopKBounds(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	if err := mgr.Remember(ctx, "only", "One single record.", nil); err != nil {
		t.Fatalf("Failed to remember: %v", err)
	}

	// Asking for more results than the index holds must not error.
	docs, err := mgr.Recall(ctx, "only record", 10)
	if err != nil {
		t.Fatalf("Failed to recall: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("Expected 1 result, got %d", len(docs))
	}
}

func TestRecallEmptyIndex(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	docs, err := mgr.Recall(ctx, "anything", 3)
	if err != nil {
		t.Fatalf("Recall on empty index should not error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected no results, got %d", len(docs))
	}
}

func TestRecentHistoryInsertionOrder(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	responses := []string{"first reply", "second reply", "third reply"}
	for _, resp := range responses {
		if err := mgr.Remember(ctx, "input", resp, nil); err != nil {
			t.Fatalf("Failed to remember: %v", err)
		}
	}

	docs, err := mgr.RecentHistory(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get recent history: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}
	if docs[0] != "second reply" || docs[1] != "third reply" {
		t.Errorf("Expected insertion order, got %v", docs)
	}
}

func TestDisabledManagerIsInert(t *testing.T) {
	ctx := context.Background()

	store, err := chromem.New(chromem.Config{}, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	mgr := memory.NewManager(store, mock.New(), &memory.Config{Enabled: false}, nil)

	if err := mgr.Remember(ctx, "in", "out", nil); err != nil {
		t.Fatalf("Remember should not error when disabled: %v", err)
	}
	docs, err := mgr.Recall(ctx, "in", 3)
	if err != nil {
		t.Fatalf("Recall should not error when disabled: %v", err)
	}
	if len(docs) != 0 {
		t.Error("Expected empty result when memory is disabled")
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	ctx := context.Background()

	store, err := chromem.New(chromem.Config{}, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	embedder := mock.New()

	vec, err := embedder.Embed(ctx, "tagged entry")
	if err != nil {
		t.Fatalf("Failed to embed: %v", err)
	}
	rec := memory.NewRecord(vec, "tagged entry", map[string]string{"intent": "ai"})
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	results, err := store.Query(ctx, vec, 1)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Record.Metadata["intent"] != "ai" {
		t.Errorf("Expected metadata to survive the round trip, got %v", results[0].Record.Metadata)
	}
}

// A persistent store reopened on the same path must serve the surviving
// records through both access paths: similarity recall and the
// insertion-ordered recent history.
func TestPersistentReopenRestoresRecentHistory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	embedder := mock.New()
	cfg := chromem.Config{Path: dir, Dimensions: embedder.Dimensions()}

	store, err := chromem.New(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	mgr := memory.NewManager(store, embedder, &memory.Config{Enabled: true}, nil)

	responses := []string{"The capital of France is Paris.", "Volcanoes erupt when magma rises."}
	for _, resp := range responses {
		if err := mgr.Remember(ctx, "context", resp, nil); err != nil {
			t.Fatalf("Failed to remember: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	reopened, err := chromem.New(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })
	mgr = memory.NewManager(reopened, embedder, &memory.Config{Enabled: true}, nil)

	docs, err := mgr.Recall(ctx, "capital of france", 3)
	if err != nil {
		t.Fatalf("Failed to recall after reopen: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected recall results after reopen")
	}

	recent, err := mgr.RecentHistory(ctx, 5)
	if err != nil {
		t.Fatalf("Failed to get recent history after reopen: %v", err)
	}
	if len(recent) != len(responses) {
		t.Fatalf("Expected %d recent documents after reopen, got %d", len(responses), len(recent))
	}
	for i, resp := range responses {
		if recent[i] != resp {
			t.Errorf("Expected insertion order after reopen, got %v", recent)
		}
	}
}

// Records with identical similarity must be selected by insertion
// order even when the tie straddles the topK cutoff.
func TestQueryTieBreakAcrossCutoff(t *testing.T) {
	ctx := context.Background()

	store, err := chromem.New(chromem.Config{}, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	vec, err := mock.New().Embed(ctx, "identical text")
	if err != nil {
		t.Fatalf("Failed to embed: %v", err)
	}
	ids := []string{"mem_0001_a", "mem_0002_b", "mem_0003_c"}
	for _, id := range ids {
		rec := memory.Record{ID: id, Embedding: vec, Document: "identical text", CreatedAt: time.Now()}
		if err := store.Insert(ctx, rec); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
	}

	results, err := store.Query(ctx, vec, 2)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Record.ID != ids[0] || results[1].Record.ID != ids[1] {
		t.Errorf("Expected the two earliest records %v, got %q and %q",
			ids[:2], results[0].Record.ID, results[1].Record.ID)
	}
}

func TestRecordIDsAreUniqueAndOrdered(t *testing.T) {
	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 100; i++ {
		rec := memory.NewRecord(nil, "doc", nil)
		if seen[rec.ID] {
			t.Fatalf("Duplicate record ID %s", rec.ID)
		}
		seen[rec.ID] = true
		if prev != "" && rec.ID[:len("mem_20060102150405.000000")] < prev[:len("mem_20060102150405.000000")] {
			t.Fatalf("Record ID time prefix went backwards: %s after %s", rec.ID, prev)
		}
		prev = rec.ID
	}
}
