// Package facts is the structured tier of session memory: the user's
// stated identity and their declared preferences. It is pure in-process
// state with session lifetime; facts are created or overwritten on
// natural-language assertion and never explicitly deleted.
package facts

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	namePattern = regexp.MustCompile(`(?i)\b(my name is|i am|i'm|call me)\s+([a-zA-Z]+)`)
	prefPattern = regexp.MustCompile(`(?i)\bi (like|love|hate|dislike)\s+(.+)`)
)

// Identity query phrases, checked by substring containment.
var identityQueries = []string{"my name", "what am i called", "what's my name"}

// Store holds identity and preference facts for one session.
//
// At most one identity value is live at a time; preference keys are
// unique per item string and upserted on redeclaration. The mutex
// covers exposure to multiple concurrent sessions; within one session
// the dispatcher guarantees at most one active turn.
type Store struct {
	mu          sync.Mutex
	userName    string
	preferences map[string]string // item -> sentiment
	order       []string          // items in first-declaration order, for deterministic recall
	log         *logrus.Entry
}

// NewStore creates an empty fact store.
func NewStore(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		preferences: make(map[string]string),
		log:         log.WithField("component", "facts"),
	}
}

// TryRecord inspects the utterance for an identity or preference
// declaration. On a match it writes the fact and returns a
// confirmation sentence; otherwise it returns "", false.
func (s *Store) TryRecord(utterance string) (string, bool) {
	if m := namePattern.FindStringSubmatch(utterance); m != nil {
		name := strings.TrimSpace(m[2])
		s.mu.Lock()
		s.userName = name
		s.mu.Unlock()
		s.log.WithField("name", name).Debug("recorded identity")
		return fmt.Sprintf("Got it, %s! I'll remember that.", name), true
	}

	if m := prefPattern.FindStringSubmatch(utterance); m != nil {
		sentiment := strings.ToLower(strings.TrimSpace(m[1]))
		item := strings.TrimSpace(m[2])
		s.mu.Lock()
		if _, exists := s.preferences[item]; !exists {
			s.order = append(s.order, item)
		}
		s.preferences[item] = sentiment
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{"item": item, "sentiment": sentiment}).Debug("recorded preference")
		return fmt.Sprintf("Noted that you %s %s.", sentiment, item), true
	}

	return "", false
}

// TryRecall answers identity queries and preference lookups. The
// dispatcher calls this before TryRecord. Declaration-shaped
// utterances are not queries: they pass through so "my name is Ada"
// records instead of answering "I don't know your name yet", and a
// preference redeclaration upserts instead of echoing the old value.
func (s *Store) TryRecall(utterance string) (string, bool) {
	if namePattern.MatchString(utterance) || prefPattern.MatchString(utterance) {
		return "", false
	}

	lowered := strings.ToLower(utterance)

	for _, phrase := range identityQueries {
		if strings.Contains(lowered, phrase) {
			s.mu.Lock()
			name := s.userName
			s.mu.Unlock()
			if name != "" {
				return fmt.Sprintf("Your name is %s!", name), true
			}
			return "I don't know your name yet. Tell me your name?", true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.order {
		if strings.Contains(lowered, strings.ToLower(item)) {
			return fmt.Sprintf("You told me you %s %s.", s.preferences[item], item), true
		}
	}

	return "", false
}

// UserName returns the stored identity, or "" if none was declared.
func (s *Store) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}
