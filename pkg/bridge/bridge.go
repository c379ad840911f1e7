// Package bridge relays command events from a chat gateway into the
// shared command sink: the "discord_bridge" input adapter. The
// orchestrator only selects it when the advisor subsystem is enabled.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/oauth2"

	"github.com/hearthlabs/hearth/internal/httpc"
	"github.com/hearthlabs/hearth/pkg/input"
)

// dialer reuses the shared TCP dialer so gateway connects honor the same
// timeouts as the rest of the process.
var dialer = &websocket.Dialer{
	Proxy:            http.ProxyFromEnvironment,
	NetDialContext:   httpc.Dialer.DialContext,
	HandshakeTimeout: httpc.DefaultConnectTimeout,
}

// Reconnect backoff bounds.
const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// event is one JSON frame from the gateway. Only command events are
// relayed; everything else is ignored.
type event struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Author  string `json:"author,omitempty"`
}

// Options configures the bridge adapter.
type Options struct {
	// GatewayURL is the websocket endpoint, e.g. wss://gateway.example/ws.
	GatewayURL string

	// Tokens supplies the bearer token presented on dial. Optional.
	Tokens oauth2.TokenSource

	Logger *slog.Logger
}

// StaticToken wraps a fixed bot token as a TokenSource.
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

// Adapter consumes gateway command events on a background worker and
// feeds them to the sink. The connection is re-dialed with backoff until
// Stop is called.
type Adapter struct {
	url    string
	tokens oauth2.TokenSource
	sink   input.Sink
	log    *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

var _ input.Adapter = (*Adapter)(nil)

// New creates the bridge adapter.
func New(opts Options, deps input.Deps) *Adapter {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Logger != nil {
		logger = opts.Logger
	}
	return &Adapter{
		url:    opts.GatewayURL,
		tokens: opts.Tokens,
		sink:   deps.Sink,
		log:    logger.With("component", "input.discord_bridge"),
	}
}

// Name returns the adapter's registry name.
func (a *Adapter) Name() string { return "discord_bridge" }

// Start launches the gateway worker.
func (a *Adapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return input.ErrAlreadyStarted
	}
	if a.url == "" {
		return fmt.Errorf("bridge: no gateway URL configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	a.started = true

	go a.run(ctx, a.done)
	a.log.Info("bridge started", "gateway", a.url)
	return nil
}

// Stop cancels the worker and waits for it to exit. Idempotent, safe
// before Start.
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
	a.log.Info("bridge stopped")
	return nil
}

// run dials the gateway and pumps messages until the context ends,
// re-dialing with exponential backoff on any failure.
func (a *Adapter) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	backoff := minBackoff
	for {
		if err := a.pump(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			a.log.Warn("gateway connection lost", "error", err, "retry_in", backoff)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (a *Adapter) pump(ctx context.Context) error {
	header := http.Header{}
	if a.tokens != nil {
		tok, err := a.tokens.Token()
		if err != nil {
			return fmt.Errorf("bridge: token: %w", err)
		}
		header.Set("Authorization", tok.Type()+" "+tok.AccessToken)
	}

	conn, _, err := dialer.DialContext(ctx, a.url, header)
	if err != nil {
		return fmt.Errorf("bridge: dial: %w", err)
	}
	defer conn.Close()
	a.log.Info("gateway connected")

	// Unblock the read loop when the context is cancelled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("bridge: read: %w", err)
		}
		a.dispatch(raw)
	}
}

// dispatch parses one gateway frame and relays command events. Malformed
// frames are logged and skipped, never fatal.
func (a *Adapter) dispatch(raw []byte) {
	var ev event
	if err := json.Unmarshal(raw, &ev); err != nil {
		a.log.Debug("unparseable gateway frame", "error", err)
		return
	}
	if ev.Type != "command" || ev.Command == "" {
		return
	}

	executed := a.sink.ExecuteCommand(ev.Command)
	a.log.Info("bridge command dispatched",
		"command", ev.Command,
		"author", ev.Author,
		"executed", executed,
	)
}
