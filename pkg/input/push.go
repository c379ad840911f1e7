package input

import (
	"log/slog"
	"sync"
)

// Push is a push-driven adapter: callers hand it identifiers via Feed and
// it dispatches them to the sink on the caller's goroutine. The "text" and
// "gui" sources are Push adapters under different names.
type Push struct {
	name string
	sink Sink
	log  *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewPush creates a push-driven adapter with the given name.
func NewPush(name string, deps Deps) *Push {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Push{
		name: name,
		sink: deps.Sink,
		log:  logger.With("component", "input."+name),
	}
}

// Name returns the adapter's registry name.
func (p *Push) Name() string { return p.name }

// Start marks the adapter as accepting input.
func (p *Push) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true
	p.log.Info("adapter started")
	return nil
}

// Stop marks the adapter as no longer accepting input. Idempotent, safe
// on a never-started adapter.
func (p *Push) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		p.started = false
		p.log.Info("adapter stopped")
	}
	return nil
}

// Started reports whether the adapter currently accepts input.
func (p *Push) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Feed dispatches one identifier to the sink.
func (p *Push) Feed(identifier string) error {
	if !p.Started() {
		return ErrNotStarted
	}
	ok := p.sink.ExecuteCommand(identifier)
	p.log.Debug("command dispatched", "command", identifier, "executed", ok)
	return nil
}
