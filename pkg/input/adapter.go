// Package input defines the adapter abstraction shared by every command
// source: typed text, GUI events, web requests, wake-word voice, computer
// vision and chat bridges all implement Adapter and feed identifiers into
// one shared Sink.
package input

import (
	"errors"
	"log/slog"
)

// Common errors returned by adapters and the registry.
var (
	ErrNotRegistered  = errors.New("input: adapter not registered")
	ErrAlreadyStarted = errors.New("input: adapter already started")
	ErrNotStarted     = errors.New("input: adapter not started")
)

// Sink executes a configured command identifier. The boolean result reports
// whether execution succeeded; it is information for the caller, never a
// reason to retry. Implementations must tolerate concurrent invocation from
// multiple adapters.
type Sink interface {
	ExecuteCommand(identifier string) bool
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(identifier string) bool

// ExecuteCommand calls f.
func (f SinkFunc) ExecuteCommand(identifier string) bool { return f(identifier) }

// Adapter is an independently controllable input source.
//
// Start begins producing identifiers and is safe to call once per
// lifecycle. Stop ceases production and releases owned resources; it is
// idempotent and safe even if Start was never called. Lifecycle errors
// propagate to the caller, they are never swallowed here.
type Adapter interface {
	Name() string
	Start() error
	Stop() error
}

// Feeder is implemented by push-driven adapters that accept identifiers
// from a caller instead of producing them from an event source.
type Feeder interface {
	Feed(identifier string) error
}

// Deps carries the collaborators an adapter factory needs. Adapters hold
// non-owning references to both.
type Deps struct {
	Sink   Sink
	Logger *slog.Logger
}

// Factory constructs an adapter instance. Registered per name in a
// Registry; anything beyond Deps is bound into the closure at
// registration time.
type Factory func(deps Deps) (Adapter, error)
