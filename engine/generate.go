package engine

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/fridaylabs/friday-go/core"
	"github.com/fridaylabs/friday-go/history"
)

var personaLines = []string{
	"You are Friday, a helpful AI assistant with a friendly personality.",
	"You're knowledgeable, concise, and try to be helpful while maintaining a natural conversation flow.",
}

// The model sometimes echoes its own speaker label.
var assistantEcho = regexp.MustCompile(`^Friday:\s*`)

// generate is the fallback for utterances no rule matched: a
// memory-augmented completion over the conversation buffer. The
// exchange is appended to both memory tiers only after a successful
// reply.
func (d *Dispatcher) generate(ctx context.Context, utterance string) string {
	if d.completer == nil {
		return core.FailCompletion.Apology()
	}

	prompt := d.buildPrompt(ctx, utterance)

	reply, err := d.completer.Complete(ctx, prompt)
	if err != nil {
		d.log.WithError(err).Warn("completion failed")
		d.countFailure("completion")
		return core.FailCompletion.Apology()
	}
	reply = strings.TrimSpace(assistantEcho.ReplaceAllString(reply, ""))
	if reply == "" {
		return core.FailCompletion.Apology()
	}

	now := time.Now()
	d.buffer.Append(core.Exchange{Role: core.RoleUser, Content: utterance, Timestamp: now})
	d.buffer.Append(core.Exchange{Role: core.RoleAssistant, Content: reply, Timestamp: time.Now()})

	// Memory writes are best-effort: an unreachable index never costs
	// the user their reply.
	if d.memory != nil {
		if err := d.memory.Remember(ctx, utterance, reply, map[string]string{"intent": "ai"}); err != nil {
			d.log.WithError(err).Warn("memory record skipped")
		} else if d.metrics != nil {
			d.metrics.MemoryRecords.Inc()
		}
	}

	return reply
}

// buildPrompt assembles persona, recalled memories, the conversation
// window and the new utterance into a single completion prompt.
func (d *Dispatcher) buildPrompt(ctx context.Context, utterance string) string {
	var lines []string
	lines = append(lines, personaLines...)

	if d.memory != nil {
		if d.metrics != nil {
			d.metrics.MemoryRecalls.Inc()
		}
		docs, err := d.memory.Recall(ctx, utterance, 0)
		if err != nil {
			d.log.WithError(err).Warn("memory recall skipped")
		} else if len(docs) > 0 {
			lines = append(lines, "", "Relevant memory:")
			lines = append(lines, docs...)
		}
	}

	lines = append(lines, "", "Conversation History:")
	for _, exchange := range d.buffer.Window(history.DefaultCapacity) {
		speaker := "User"
		if exchange.Role == core.RoleAssistant {
			speaker = "Friday"
		}
		lines = append(lines, speaker+": "+exchange.Content)
	}

	lines = append(lines, "User: "+utterance)
	lines = append(lines, "Friday:")
	return strings.Join(lines, "\n")
}
