// Package webinput exposes the command sink over HTTP and WebSocket: the
// "web" input adapter. It also serves the voice pipeline's status snapshot
// for dashboards.
package webinput

import (
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/hearthlabs/hearth/pkg/input"
)

// commandRequest is the body of POST /api/commands and of websocket
// command frames.
type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Command  string `json:"command"`
	Executed bool   `json:"executed"`
}

// Options configures the web adapter.
type Options struct {
	// Addr is the listen address, e.g. ":8089".
	Addr string

	// Status, if set, is served on GET /api/status.
	Status func() any

	Logger *slog.Logger
}

// Adapter is the web input adapter. Commands arrive over HTTP POST or a
// websocket stream and are dispatched to the shared sink; ordering across
// concurrent requests is up to the sink.
type Adapter struct {
	app    *fiber.App
	addr   string
	sink   input.Sink
	status func() any
	log    *slog.Logger

	mu      sync.Mutex
	ln      net.Listener
	started bool
}

var _ input.Adapter = (*Adapter)(nil)

// New creates the web adapter.
func New(opts Options, deps input.Deps) *Adapter {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Logger != nil {
		logger = opts.Logger
	}

	a := &Adapter{
		addr:   opts.Addr,
		sink:   deps.Sink,
		status: opts.Status,
		log:    logger.With("component", "input.web"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "hearth",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Post("/api/commands", a.handleCommand)
	app.Get("/api/status", a.handleStatus)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/commands", websocket.New(a.handleSocket))

	a.app = app
	return a
}

// Name returns the adapter's registry name.
func (a *Adapter) Name() string { return "web" }

// Start binds the listen address and serves in the background. Bind
// failures surface synchronously.
func (a *Adapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return input.ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("webinput: listen %s: %w", a.addr, err)
	}
	a.ln = ln
	a.started = true

	go func() {
		if err := a.app.Listener(ln); err != nil {
			a.log.Error("server stopped", "error", err)
		}
	}()

	a.log.Info("web adapter listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down. Idempotent, safe before Start.
func (a *Adapter) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return nil
	}
	a.started = false

	if err := a.app.Shutdown(); err != nil {
		return fmt.Errorf("webinput: shutdown: %w", err)
	}
	a.log.Info("web adapter stopped")
	return nil
}

func (a *Adapter) handleCommand(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil || req.Command == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"command\": \"<identifier>\"}",
		})
	}

	executed := a.sink.ExecuteCommand(req.Command)
	a.log.Debug("command dispatched", "command", req.Command, "executed", executed)
	return c.JSON(commandResponse{Command: req.Command, Executed: executed})
}

func (a *Adapter) handleStatus(c *fiber.Ctx) error {
	if a.status == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no status source configured",
		})
	}
	return c.JSON(a.status())
}

// handleSocket serves one websocket client. Each JSON frame carries a
// command identifier; the reply acknowledges the dispatch.
func (a *Adapter) handleSocket(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var req commandRequest
		if err := conn.ReadJSON(&req); err != nil {
			a.log.Debug("websocket client gone", "error", err)
			return
		}
		if req.Command == "" {
			continue
		}

		executed := a.sink.ExecuteCommand(req.Command)
		if err := conn.WriteJSON(commandResponse{Command: req.Command, Executed: executed}); err != nil {
			a.log.Debug("websocket write failed", "error", err)
			return
		}
	}
}
