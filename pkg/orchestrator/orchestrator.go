// Package orchestrator resolves configuration flags into a concrete set of
// input adapters and manages their combined lifecycle.
package orchestrator

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hearthlabs/hearth/pkg/input"
)

// Adapter names resolved from flags, in selection order.
const (
	AdapterText           = "text"
	AdapterGUI            = "gui"
	AdapterWeb            = "web"
	AdapterVoice          = "voice"
	AdapterComputerVision = "computer_vision"
	AdapterDiscordBridge  = "discord_bridge"
)

// Config supplies the policy state consulted during adapter selection.
type Config interface {
	// AdvisorsEnabled reports whether the advisor subsystem is up. The
	// chat bridge is only selected when it is, regardless of its flag.
	AdvisorsEnabled() bool
}

// Flags is an immutable per-adapter selection snapshot.
type Flags struct {
	Text           bool
	GUI            bool
	Web            bool
	Voice          bool
	ComputerVision bool
	DiscordBridge  bool
}

// Orchestrator owns the adapters it constructs from the registry and
// starts/stops them as a unit. It holds non-owning references to the
// registry, config and the deps passed into adapter construction.
type Orchestrator struct {
	registry *input.Registry
	flags    Flags
	cfg      Config
	deps     input.Deps
	log      *slog.Logger

	mu       sync.Mutex
	adapters []input.Adapter
}

// New creates an orchestrator for the given flag snapshot.
func New(registry *input.Registry, flags Flags, cfg Config, deps input.Deps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		registry: registry,
		flags:    flags,
		cfg:      cfg,
		deps:     deps,
		log:      logger.With("component", "orchestrator"),
	}
}

// SelectAdapters resolves the flag snapshot into an ordered adapter name
// list. Deterministic for identical flags and config state. An adapter is
// included only if its flag is set and its preconditions hold; the chat
// bridge additionally requires the advisor subsystem (a policy guard, not
// an error).
func (o *Orchestrator) SelectAdapters() []string {
	var names []string
	if o.flags.Text {
		names = append(names, AdapterText)
	}
	if o.flags.GUI {
		names = append(names, AdapterGUI)
	}
	if o.flags.Web {
		names = append(names, AdapterWeb)
	}
	if o.flags.Voice {
		names = append(names, AdapterVoice)
	}
	if o.flags.ComputerVision {
		names = append(names, AdapterComputerVision)
	}
	if o.flags.DiscordBridge {
		if o.cfg != nil && o.cfg.AdvisorsEnabled() {
			names = append(names, AdapterDiscordBridge)
		} else {
			o.log.Info("chat bridge requested but advisors disabled, skipping")
		}
	}
	return names
}

// Start constructs the selected adapters (if not already constructed) and
// starts them in selection order. Construction failure for an unregistered
// name and adapter start failures both propagate; nothing is swallowed.
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.adapters == nil {
		names := o.SelectAdapters()
		adapters := make([]input.Adapter, 0, len(names))
		for _, name := range names {
			a, err := o.registry.New(name, o.deps)
			if err != nil {
				return fmt.Errorf("orchestrator: construct %q: %w", name, err)
			}
			adapters = append(adapters, a)
		}
		o.adapters = adapters
	}

	for _, a := range o.adapters {
		if err := a.Start(); err != nil {
			return fmt.Errorf("orchestrator: start %q: %w", a.Name(), err)
		}
		o.log.Info("adapter running", "adapter", a.Name())
	}
	return nil
}

// Stop stops every constructed adapter in selection order. A failing stop
// does not prevent the remaining adapters from stopping; every adapter
// ends not-started. Errors are joined and returned with the first failure
// first. The adapter set is released, so a later Start reconstructs from
// the registry.
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error
	for _, a := range o.adapters {
		if err := a.Stop(); err != nil {
			o.log.Error("adapter stop failed", "adapter", a.Name(), "error", err)
			errs = append(errs, fmt.Errorf("orchestrator: stop %q: %w", a.Name(), err))
			continue
		}
		o.log.Info("adapter stopped", "adapter", a.Name())
	}
	o.adapters = nil
	return errors.Join(errs...)
}

// Adapters returns the currently constructed adapters in selection order.
func (o *Orchestrator) Adapters() []input.Adapter {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]input.Adapter, len(o.adapters))
	copy(out, o.adapters)
	return out
}
