// Package voice turns a wake-word trigger into a transcribed, matched and
// executed command.
//
// The Pipeline composes a WakeWordSource and a Transcriber with the
// command matcher, the shared command sink, an optional Speaker for spoken
// feedback, and a callback list for observers. It is itself an input
// adapter and is registered with the orchestrator under the name "voice".
package voice

import (
	"errors"
	"log/slog"

	"github.com/hearthlabs/hearth/pkg/command"
	"github.com/hearthlabs/hearth/pkg/input"
)

// Common errors returned by pipelines.
var (
	ErrAlreadyStarted = errors.New("voice: pipeline already started")
	ErrNoSink         = errors.New("voice: no command sink configured")
	ErrNoCommands     = errors.New("voice: no command source configured")
)

// WakeCallback is invoked by a WakeWordSource when a wake word is matched,
// in the source's own execution context.
type WakeCallback func(word string, confidence float64)

// WakeWordSource detects wake words in ambient audio. AddCallback returns
// a registration id for later removal.
type WakeWordSource interface {
	StartListening() error
	StopListening() error
	AddCallback(fn WakeCallback) (id string)
	RemoveCallback(id string)
	AvailableModels() []string
	IsListening() bool
}

// Transcriber captures one utterance and returns its transcript.
// RecordAndTranscribe blocks for the duration of capture plus
// transcription and returns empty text on silence.
type Transcriber interface {
	RecordAndTranscribe() (string, error)
	IsAvailable() bool
	BackendInfo() map[string]string
}

// Speaker voices feedback about command outcomes. Optional; a nil Speaker
// disables spoken feedback.
type Speaker interface {
	Speak(text string) error
	IsAvailable() bool
}

// Options configures a Pipeline.
type Options struct {
	// Wake detects the trigger phrase. Optional: with no source the
	// pipeline stays idle rather than failing.
	Wake WakeWordSource

	// Transcriber captures and transcribes the command utterance.
	// Optional: without one, every cycle aborts with a log line.
	Transcriber Transcriber

	// Speaker voices outcomes. Optional.
	Speaker Speaker

	// Sink executes matched identifiers. Required.
	Sink input.Sink

	// Commands supplies the current matching table. Required.
	Commands func() []command.Command

	// Notify, if set, receives named state transitions such as
	// "voice_listening" when the pipeline starts.
	Notify func(state string)

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func (o Options) validate() error {
	if o.Sink == nil {
		return ErrNoSink
	}
	if o.Commands == nil {
		return ErrNoCommands
	}
	return nil
}
