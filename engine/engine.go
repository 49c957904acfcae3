// Package engine is the response dispatcher: it runs one conversation
// turn through fact recall, fact record, intent classification and the
// matching handler, falling back to memory-augmented generation.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/browser"
	"github.com/fridaylabs/friday-go/calendar"
	"github.com/fridaylabs/friday-go/core"
	"github.com/fridaylabs/friday-go/facts"
	"github.com/fridaylabs/friday-go/history"
	"github.com/fridaylabs/friday-go/intent"
	"github.com/fridaylabs/friday-go/memory"
	"github.com/fridaylabs/friday-go/metrics"
	"github.com/fridaylabs/friday-go/voice"
)

// State is the dispatcher's position within a turn.
type State int

const (
	StateIdle State = iota
	StateClassifying
	StateHandling
	StateResponded
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassifying:
		return "classifying"
	case StateHandling:
		return "handling"
	case StateResponded:
		return "responded"
	default:
		return "unknown"
	}
}

// EmptyUtteranceReply is returned without touching memory or handlers
// when the utterance is blank.
const EmptyUtteranceReply = "I didn't catch that. Could you say it again?"

// maxFollowUps bounds sequential follow-up prompts per turn. add_event
// needs two (description, then time); nothing needs more.
const maxFollowUps = 2

// Completer generates a free-form reply for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WeatherService reports current conditions for a city.
type WeatherService interface {
	Current(ctx context.Context, city string) (string, error)
}

// Dispatcher owns a session's turn pipeline. It assumes at most one
// concurrent Respond call per session; the serving surface enforces
// that with its busy flag.
type Dispatcher struct {
	facts     *facts.Store
	buffer    *history.Buffer
	memory    *memory.Manager
	completer Completer
	weather   WeatherService
	calendar  calendar.Service
	speaker   voice.Speaker
	listener  voice.Listener
	opener    browser.Opener
	metrics   *metrics.Metrics
	log       *logrus.Entry

	handlers map[intent.Tag]handlerFunc
	state    State
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithCompleter sets the generative completion backend.
func WithCompleter(c Completer) Option {
	return func(d *Dispatcher) {
		d.completer = c
	}
}

// WithWeather sets the weather collaborator.
func WithWeather(w WeatherService) Option {
	return func(d *Dispatcher) {
		d.weather = w
	}
}

// WithCalendar sets the calendar collaborator.
func WithCalendar(c calendar.Service) Option {
	return func(d *Dispatcher) {
		d.calendar = c
	}
}

// WithVoice sets the speech interfaces used for follow-up prompts.
func WithVoice(s voice.Speaker, l voice.Listener) Option {
	return func(d *Dispatcher) {
		d.speaker = s
		d.listener = l
	}
}

// WithOpener sets the browser opener.
func WithOpener(o browser.Opener) Option {
	return func(d *Dispatcher) {
		d.opener = o
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log.WithField("component", "engine")
	}
}

// NewDispatcher creates a dispatcher over the session's fact store,
// conversation buffer and semantic memory. Collaborators are optional;
// handlers that need a missing one fail into their apology.
func NewDispatcher(f *facts.Store, buffer *history.Buffer, mem *memory.Manager, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		facts:    f,
		buffer:   buffer,
		memory:   mem,
		speaker:  voice.NoopSpeaker{},
		listener: voice.NoopListener{},
		opener:   browser.NewLogOpener(nil),
		log:      logrus.StandardLogger().WithField("component", "engine"),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.handlers = map[intent.Tag]handlerFunc{
		intent.TagGreet:       d.handleGreet,
		intent.TagTime:        d.handleTime,
		intent.TagDate:        d.handleDate,
		intent.TagJoke:        d.handleJoke,
		intent.TagHelp:        d.handleHelp,
		intent.TagExit:        d.handleExit,
		intent.TagOpenWebsite: d.handleOpenWebsite,
		intent.TagWeather:     d.handleWeather,
		intent.TagAddEvent:    d.handleAddEvent,
		intent.TagViewEvents:  d.handleViewEvents,
		intent.TagSearch:      d.handleSearch,
	}
	return d
}

// State reports the dispatcher's current position within a turn.
func (d *Dispatcher) State() State {
	return d.state
}

// turn carries per-turn handler input: the utterance plus any follow-up
// answers collected so far.
type turn struct {
	utterance string
	followUps []string
}

// Respond runs one full turn and always produces user-visible text.
// No failure inside a turn terminates the session; every error path
// converts to an apology.
func (d *Dispatcher) Respond(ctx context.Context, utterance string) string {
	start := time.Now()
	d.state = StateClassifying
	defer func() {
		d.state = StateResponded
		if d.metrics != nil {
			d.metrics.TurnDuration.Observe(time.Since(start).Seconds())
		}
	}()

	if strings.TrimSpace(utterance) == "" {
		d.countTurn(intent.TagUnknown)
		return EmptyUtteranceReply
	}

	// Recall before record: a query never doubles as a declaration.
	if reply, ok := d.facts.TryRecall(utterance); ok {
		d.countTurn("fact_recall")
		return reply
	}
	if reply, ok := d.facts.TryRecord(utterance); ok {
		d.countTurn("fact_record")
		return reply
	}

	tag := intent.Classify(utterance)
	d.countTurn(tag)
	d.state = StateHandling
	d.log.WithFields(logrus.Fields{"intent": tag, "state": d.state.String()}).Debug("dispatching")

	handler, ok := d.handlers[tag]
	if !ok {
		return d.generate(ctx, utterance)
	}

	t := &turn{utterance: utterance}
	for followUps := 0; ; followUps++ {
		result := d.runHandler(ctx, handler, t)

		switch result.Kind {
		case core.ResultSuccess:
			return result.Text

		case core.ResultFailure:
			d.countFailure(tag)
			return result.Failure.Apology()

		case core.ResultNeedsFollowUp:
			if followUps >= maxFollowUps {
				d.log.WithField("intent", tag).Warn("follow-up limit reached")
				return core.FailGeneric.Apology()
			}
			t.followUps = append(t.followUps, d.askFollowUp(ctx, result.Prompt))

		default:
			d.log.WithField("kind", result.Kind).Error("handler returned unknown result kind")
			return core.FailGeneric.Apology()
		}
	}
}

// runHandler invokes a handler with a panic boundary. A panicking
// handler yields a generic apology instead of ending the session.
func (d *Dispatcher) runHandler(ctx context.Context, h handlerFunc, t *turn) (result core.HandlerResult) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("panic", r).Error("handler panicked")
			result = core.Failure(core.FailGeneric)
		}
	}()
	return h(ctx, t)
}

// askFollowUp speaks the prompt and waits for one utterance. Timeouts
// and capture failures come back as empty input, which handlers treat
// as an abort.
func (d *Dispatcher) askFollowUp(ctx context.Context, prompt string) string {
	d.speaker.Speak(ctx, prompt)
	answer, err := d.listener.Listen(ctx)
	if err != nil {
		d.log.WithError(err).Debug("no follow-up input")
		return ""
	}
	return strings.TrimSpace(answer)
}

func (d *Dispatcher) countTurn(label intent.Tag) {
	if d.metrics != nil {
		d.metrics.TurnsByIntent.WithLabelValues(string(label)).Inc()
	}
}

func (d *Dispatcher) countFailure(tag intent.Tag) {
	if d.metrics != nil {
		d.metrics.CollaboratorFailures.WithLabelValues(string(tag)).Inc()
	}
}
