package visioninput

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hearthlabs/hearth/pkg/input"
)

// Defaults for the polling adapter.
const (
	DefaultInterval  = 200 * time.Millisecond
	DefaultThreshold = 0.15
	DefaultCooldown  = 2 * time.Second
)

// Options configures the vision adapter.
type Options struct {
	// Detector supplies per-frame detections. Required.
	Detector Detector

	// Bindings maps region names to command identifiers. Regions
	// without a binding are ignored.
	Bindings map[string]string

	// Threshold is the minimum confidence that fires a command.
	Threshold float64

	// Interval is the polling period between frames.
	Interval time.Duration

	// Cooldown suppresses repeat firings per region; motion tends to
	// span many consecutive frames.
	Cooldown time.Duration

	Logger *slog.Logger
}

// Adapter polls a Detector on a background worker and feeds bound command
// identifiers to the sink.
type Adapter struct {
	det       Detector
	bindings  map[string]string
	threshold float64
	interval  time.Duration
	cooldown  time.Duration
	sink      input.Sink
	log       *slog.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	started   bool
	lastFired map[string]time.Time
}

var _ input.Adapter = (*Adapter)(nil)

// New creates the vision adapter.
func New(opts Options, deps input.Deps) *Adapter {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}

	return &Adapter{
		det:       opts.Detector,
		bindings:  opts.Bindings,
		threshold: opts.Threshold,
		interval:  opts.Interval,
		cooldown:  opts.Cooldown,
		sink:      deps.Sink,
		log:       logger.With("component", "input.computer_vision"),
		lastFired: make(map[string]time.Time),
	}
}

// Name returns the adapter's registry name.
func (a *Adapter) Name() string { return "computer_vision" }

// Start launches the polling worker.
func (a *Adapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return input.ErrAlreadyStarted
	}
	if a.det == nil {
		return fmt.Errorf("visioninput: no detector configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	a.started = true

	go a.loop(ctx, a.done)
	a.log.Info("vision adapter started", "bindings", len(a.bindings))
	return nil
}

// Stop cancels the worker, waits for it, and closes the detector.
// Idempotent, safe before Start.
func (a *Adapter) Stop() error {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return nil
	}
	a.started = false
	cancel, done := a.cancel, a.done
	a.mu.Unlock()

	cancel()
	<-done

	if err := a.det.Close(); err != nil {
		return fmt.Errorf("visioninput: close detector: %w", err)
	}
	a.log.Info("vision adapter stopped")
	return nil
}

func (a *Adapter) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			detections, err := a.det.Detect()
			if err != nil {
				a.log.Debug("frame skipped", "error", err)
				continue
			}
			for _, d := range detections {
				a.handle(d)
			}
		}
	}
}

// handle fires the bound command for a detection above the threshold,
// honoring the per-region cooldown.
func (a *Adapter) handle(d Detection) {
	if d.Confidence < a.threshold {
		return
	}
	identifier, ok := a.bindings[d.Region]
	if !ok {
		return
	}

	a.mu.Lock()
	last := a.lastFired[d.Region]
	now := time.Now()
	if now.Sub(last) < a.cooldown {
		a.mu.Unlock()
		return
	}
	a.lastFired[d.Region] = now
	a.mu.Unlock()

	executed := a.sink.ExecuteCommand(identifier)
	a.log.Info("vision command dispatched",
		"region", d.Region,
		"confidence", d.Confidence,
		"command", identifier,
		"executed", executed,
	)
}
