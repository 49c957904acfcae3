package facts_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/fridaylabs/friday-go/facts"
)

func newTestStore() *facts.Store {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return facts.NewStore(log)
}

func TestRecordAndRecallName(t *testing.T) {
	s := newTestStore()

	reply, ok := s.TryRecord("my name is Ada")
	assert.True(t, ok)
	assert.Contains(t, reply, "Ada")

	reply, ok = s.TryRecall("what's my name")
	assert.True(t, ok)
	assert.Contains(t, reply, "Ada")
}

func TestRecallNameBeforeDeclaration(t *testing.T) {
	s := newTestStore()

	reply, ok := s.TryRecall("what's my name")
	assert.True(t, ok)
	assert.Contains(t, reply, "don't know your name yet")
}

func TestIdentityOverwrites(t *testing.T) {
	s := newTestStore()

	_, ok := s.TryRecord("call me Grace")
	assert.True(t, ok)
	_, ok = s.TryRecord("my name is Ada")
	assert.True(t, ok)

	reply, ok := s.TryRecall("my name")
	assert.True(t, ok)
	assert.Contains(t, reply, "Ada")
	assert.NotContains(t, reply, "Grace")
}

func TestNamePatternVariants(t *testing.T) {
	for _, utterance := range []string{
		"my name is Ada",
		"I am Ada",
		"i'm Ada",
		"call me Ada",
	} {
		s := newTestStore()
		reply, ok := s.TryRecord(utterance)
		assert.True(t, ok, "utterance %q", utterance)
		assert.Contains(t, reply, "Ada")
	}
}

func TestRecordAndRecallPreference(t *testing.T) {
	s := newTestStore()

	reply, ok := s.TryRecord("I like sushi")
	assert.True(t, ok)
	assert.Contains(t, reply, "like")
	assert.Contains(t, reply, "sushi")

	reply, ok = s.TryRecall("what do you think about sushi")
	assert.True(t, ok)
	assert.Contains(t, reply, "like")
	assert.Contains(t, reply, "sushi")
}

func TestPreferenceUpsert(t *testing.T) {
	s := newTestStore()

	_, _ = s.TryRecord("I like rain")
	_, _ = s.TryRecord("I hate rain")

	reply, ok := s.TryRecall("how do I feel about rain")
	assert.True(t, ok)
	assert.Contains(t, reply, "hate")
}

func TestNoMatchReturnsFalse(t *testing.T) {
	s := newTestStore()

	_, ok := s.TryRecord("what a lovely day")
	assert.False(t, ok)

	_, ok = s.TryRecall("what a lovely day")
	assert.False(t, ok)
}

func TestDeclarationsAreNotQueries(t *testing.T) {
	// The dispatcher calls TryRecall first, but declaration-shaped
	// utterances must fall through to TryRecord: otherwise "my name is
	// Ada" answers "I don't know your name yet" and a preference
	// redeclaration can never upsert.
	s := newTestStore()

	_, ok := s.TryRecall("my name is Ada")
	assert.False(t, ok)

	_, _ = s.TryRecord("I love coffee")
	_, ok = s.TryRecall("I like coffee now")
	assert.False(t, ok)
}
