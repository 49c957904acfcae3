package main

import (
	"fmt"

	"github.com/fridaylabs/friday-go/browser"
	"github.com/fridaylabs/friday-go/calendar/sqlite"
	"github.com/fridaylabs/friday-go/completion"
	"github.com/fridaylabs/friday-go/engine"
	"github.com/fridaylabs/friday-go/facts"
	"github.com/fridaylabs/friday-go/history"
	"github.com/fridaylabs/friday-go/memory"
	"github.com/fridaylabs/friday-go/memory/store/chromem"
	"github.com/fridaylabs/friday-go/metrics"
	"github.com/fridaylabs/friday-go/voice"
	"github.com/fridaylabs/friday-go/weather"
)

// assistant bundles the collaborators every session shares. Per-session
// state (facts, buffer) is created in newDispatcher.
type assistant struct {
	memory   *memory.Manager
	store    *chromem.Store
	calendar *sqlite.Store
	metrics  *metrics.Metrics

	completer engine.Completer
	weather   engine.WeatherService
	opener    browser.Opener
}

// newAssistant constructs shared collaborators from configuration.
// Memory and calendar construction failures are fatal; absent API keys
// just leave those collaborators unconfigured.
func newAssistant(openLocal bool) (*assistant, error) {
	a := &assistant{metrics: metrics.New()}

	embedder, err := newEmbedder()
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	store, err := chromem.New(chromem.Config{
		Path:       cfg.Memory.Path,
		Dimensions: embedder.Dimensions(),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	a.store = store
	a.memory = memory.NewManager(store, embedder, &memory.Config{
		Enabled: cfg.Memory.Enabled,
		TopK:    cfg.Memory.TopK,
	}, log)

	cal, err := sqlite.New(cfg.Calendar.Path, log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open calendar: %w", err)
	}
	a.calendar = cal

	if cfg.Completion.APIKey != "" {
		a.completer = completion.New(completion.Config{
			APIKey:    cfg.Completion.APIKey,
			Model:     cfg.Completion.Model,
			MaxTokens: cfg.Completion.MaxTokens,
			Timeout:   cfg.Completion.Timeout,
		}, log)
	} else {
		log.Warn("no completion API key configured, generative fallback disabled")
	}

	if cfg.Weather.APIKey != "" {
		a.weather = weather.NewClient(cfg.Weather.APIKey, log)
	}

	if openLocal {
		a.opener = browser.NewExecOpener(log)
	} else {
		a.opener = browser.NewLogOpener(log)
	}

	return a, nil
}

// newDispatcher creates a session dispatcher over fresh per-session
// state and the shared collaborators.
func (a *assistant) newDispatcher(speaker voice.Speaker, listener voice.Listener) *engine.Dispatcher {
	opts := []engine.Option{
		engine.WithCalendar(a.calendar),
		engine.WithOpener(a.opener),
		engine.WithMetrics(a.metrics),
		engine.WithVoice(speaker, listener),
		engine.WithLogger(log),
	}
	if a.completer != nil {
		opts = append(opts, engine.WithCompleter(a.completer))
	}
	if a.weather != nil {
		opts = append(opts, engine.WithWeather(a.weather))
	}

	return engine.NewDispatcher(
		facts.NewStore(log),
		history.NewBuffer(history.DefaultCapacity, log),
		a.memory,
		opts...,
	)
}

func (a *assistant) close() {
	a.store.Close()
	a.calendar.Close()
}
