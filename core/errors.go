package core

import "errors"

// Error taxonomy for a single turn. None of these may terminate a
// session: the dispatcher catches them at the handler boundary and
// converts them to user-visible text.
var (
	// ErrValidation marks a malformed exchange shape. Dropped and
	// logged, never surfaced to the user.
	ErrValidation = errors.New("invalid exchange shape")

	// ErrCollaboratorUnavailable marks a weather/calendar/completion
	// backend failure.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrMemoryUnavailable marks an unreachable embedding backend or
	// vector index. Recall degrades to an empty result set and record
	// attempts are skipped.
	ErrMemoryUnavailable = errors.New("memory unavailable")

	// ErrInputTimeout marks a listening window that produced no input.
	// Treated as an empty utterance.
	ErrInputTimeout = errors.New("input timed out")
)
