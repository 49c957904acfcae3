// Package voice defines the speech interfaces the dispatcher uses for
// spoken prompts and follow-up answers.
package voice

import (
	"context"

	"github.com/fridaylabs/friday-go/core"
)

// Speaker renders assistant text as speech. Speak is fire and forget;
// rendering failures never affect the turn.
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// Listener captures one utterance from the user. Implementations apply
// their own capture timeout and return core.ErrInputTimeout when
// nothing was heard.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// NoopSpeaker discards all speech output.
type NoopSpeaker struct{}

// Speak does nothing.
func (NoopSpeaker) Speak(context.Context, string) {}

// NoopListener never hears anything. Follow-up prompts answered by it
// take the polite-abort path.
type NoopListener struct{}

// Listen reports an input timeout immediately.
func (NoopListener) Listen(context.Context) (string, error) {
	return "", core.ErrInputTimeout
}
