package voice

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hearthlabs/hearth/pkg/command"
	"github.com/hearthlabs/hearth/pkg/input"
)

// Pipeline is the voice-command state machine. One instance runs at most
// one command cycle at a time: wake triggers arriving while a cycle is in
// flight are dropped, never queued.
type Pipeline struct {
	wake     WakeWordSource
	stt      Transcriber
	speaker  Speaker
	sink     input.Sink
	commands func() []command.Command
	notify   func(state string)
	log      *slog.Logger

	// listening/processing are shared between the wake source's callback
	// context and status readers; reads are best-effort snapshots.
	listening  atomic.Bool
	processing atomic.Bool
	dropped    atomic.Uint64

	callbacks callbackList

	mu     sync.Mutex // guards start/stop transitions
	wakeID string
}

var _ input.Adapter = (*Pipeline)(nil)

// NewPipeline creates a pipeline from the given options.
func NewPipeline(opts Options) (*Pipeline, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		wake:     opts.Wake,
		stt:      opts.Transcriber,
		speaker:  opts.Speaker,
		sink:     opts.Sink,
		commands: opts.Commands,
		notify:   opts.Notify,
		log:      logger.With("component", "voice.pipeline"),
	}, nil
}

// Name returns the adapter's registry name.
func (p *Pipeline) Name() string { return "voice" }

// Start activates the wake word source and enters the idle-listening
// state. With no wake source configured the pipeline stays idle; that is
// a degraded mode, not an error.
func (p *Pipeline) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.listening.Load() {
		return ErrAlreadyStarted
	}
	if p.wake == nil {
		p.log.Warn("no wake word source, voice adapter idle")
		return nil
	}

	p.wakeID = p.wake.AddCallback(p.handleWake)
	if err := p.wake.StartListening(); err != nil {
		p.wake.RemoveCallback(p.wakeID)
		p.wakeID = ""
		return fmt.Errorf("voice: start listening: %w", err)
	}

	p.listening.Store(true)
	if p.notify != nil {
		p.notify("voice_listening")
	}
	p.log.Info("listening for wake word", "models", p.wake.AvailableModels())
	return nil
}

// Stop deactivates the wake word source. Idempotent; safe on a
// never-started pipeline. An in-flight cycle is not interrupted, but its
// result is discarded once stopped.
func (p *Pipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.listening.Load() {
		return nil
	}
	p.listening.Store(false)

	if p.wakeID != "" {
		p.wake.RemoveCallback(p.wakeID)
		p.wakeID = ""
	}
	if err := p.wake.StopListening(); err != nil {
		return fmt.Errorf("voice: stop listening: %w", err)
	}
	p.log.Info("stopped listening")
	return nil
}

// handleWake runs in the wake source's execution context. The processing
// guard is a single compare-and-set so two concurrent triggers can never
// both observe a free pipeline.
func (p *Pipeline) handleWake(word string, confidence float64) {
	if !p.listening.Load() {
		return
	}
	if !p.processing.CompareAndSwap(false, true) {
		p.dropped.Add(1)
		p.log.Debug("wake trigger dropped, cycle in flight", "word", word)
		return
	}

	p.log.Info("wake word detected", "word", word, "confidence", confidence)
	go p.runCycle()
}

// runCycle executes one command cycle on its own worker. Whatever happens
// inside — transcription errors, sink panics, matcher surprises — is
// contained here, and the processing guard is released on every exit path.
func (p *Pipeline) runCycle() {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("voice cycle panicked", "panic", r)
		}
		p.processing.Store(false)
	}()

	if p.stt == nil || !p.stt.IsAvailable() {
		p.log.Warn("transcriber unavailable, cycle aborted")
		return
	}

	transcript, err := p.stt.RecordAndTranscribe()
	if err != nil {
		p.log.Warn("transcription failed", "error", err)
		return
	}

	// A transcription that completes after Stop is discarded.
	if !p.listening.Load() {
		p.log.Debug("pipeline stopped mid-cycle, result discarded")
		return
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		p.log.Debug("empty transcript, returning to listening")
		return
	}

	matched := command.Match(transcript, p.commands())
	if matched == "" {
		p.log.Info("heard but not understood", "transcript", transcript)
		p.callbacks.notify("", transcript)
		return
	}

	executed := p.sink.ExecuteCommand(matched)
	p.log.Info("command executed", "command", matched, "ok", executed)
	p.callbacks.notify(matched, transcript)
	p.speakOutcome(matched, executed)
}

// speakOutcome voices the result of a cycle. Feedback failures are logged,
// never fatal; the execution outcome only shapes the phrase.
func (p *Pipeline) speakOutcome(identifier string, executed bool) {
	if p.speaker == nil || !p.speaker.IsAvailable() {
		return
	}

	phrase := identifier + " done"
	if !executed {
		phrase = identifier + " failed"
	}
	if err := p.speaker.Speak(phrase); err != nil {
		p.log.Warn("feedback speech failed", "error", err)
	}
}

// AddCommandCallback registers an observer invoked once per terminal cycle
// event with (identifier, transcript); identifier is empty when the
// transcript matched nothing. Returns a handle for removal.
func (p *Pipeline) AddCommandCallback(fn CommandCallback) Handle {
	return p.callbacks.add(fn)
}

// RemoveCommandCallback removes a previously registered observer.
func (p *Pipeline) RemoveCommandCallback(h Handle) {
	p.callbacks.remove(h)
}
