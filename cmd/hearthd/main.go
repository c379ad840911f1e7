// Command hearthd runs the hearth input hub: it selects input adapters
// from flags, wires them to a shared command sink, and serves until
// interrupted.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hearthlabs/hearth/internal/config"
	"github.com/hearthlabs/hearth/internal/log"
	"github.com/hearthlabs/hearth/pkg/bridge"
	"github.com/hearthlabs/hearth/pkg/command"
	"github.com/hearthlabs/hearth/pkg/input"
	"github.com/hearthlabs/hearth/pkg/orchestrator"
	"github.com/hearthlabs/hearth/pkg/visioninput"
	"github.com/hearthlabs/hearth/pkg/voice"
	"github.com/hearthlabs/hearth/pkg/webinput"
)

func main() {
	text := flag.Bool("text", true, "Enable the text input adapter")
	gui := flag.Bool("gui", false, "Enable the GUI input adapter")
	web := flag.Bool("web", false, "Enable the web input adapter")
	voiceFlag := flag.Bool("voice", false, "Enable the voice input adapter")
	vision := flag.Bool("vision", false, "Enable the computer vision adapter")
	chat := flag.Bool("bridge", false, "Enable the chat bridge adapter (requires advisors)")
	httpAddr := flag.String("http", "", "Web adapter listen address (default from HEARTH_HTTP_ADDR)")
	camera := flag.Int("camera", 0, "Camera device for the vision adapter")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := config.FromEnv()
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	// The action-execution engine is an external collaborator; the
	// daemon's sink acknowledges identifiers it knows about.
	sink := input.SinkFunc(func(identifier string) bool {
		_, known := cfg.ModelActions[identifier]
		log.Info("command received", "command", identifier, "known", known)
		return known
	})

	// Acoustic backends plug in here; without them the voice adapter
	// runs against in-memory sources so the rest of the hub still works.
	pipeline, err := voice.NewPipeline(voice.Options{
		Wake:        voice.NewMockWake("hey hearth"),
		Transcriber: &voice.MockTranscriber{},
		Sink:        sink,
		Commands:    func() []command.Command { return cfg.Commands() },
		Logger:      log.L(),
	})
	if err != nil {
		log.Error("voice pipeline setup failed", "error", err)
		os.Exit(1)
	}

	deps := input.Deps{Sink: sink, Logger: log.L()}

	registry := input.NewRegistry()
	registry.Register(orchestrator.AdapterText, func(d input.Deps) (input.Adapter, error) {
		return input.NewPush(orchestrator.AdapterText, d), nil
	})
	registry.Register(orchestrator.AdapterGUI, func(d input.Deps) (input.Adapter, error) {
		return input.NewPush(orchestrator.AdapterGUI, d), nil
	})
	registry.Register(orchestrator.AdapterWeb, func(d input.Deps) (input.Adapter, error) {
		return webinput.New(webinput.Options{
			Addr:   cfg.HTTPAddr,
			Status: func() any { return pipeline.Status() },
		}, d), nil
	})
	registry.Register(orchestrator.AdapterVoice, func(input.Deps) (input.Adapter, error) {
		return pipeline, nil
	})
	registry.Register(orchestrator.AdapterComputerVision, func(d input.Deps) (input.Adapter, error) {
		detector, err := visioninput.NewMotionDetector(*camera)
		if err != nil {
			return nil, err
		}
		return visioninput.New(visioninput.Options{
			Detector: detector,
			Bindings: map[string]string{
				visioninput.RegionLeft:  "lights",
				visioninput.RegionRight: "music",
			},
		}, d), nil
	})
	registry.Register(orchestrator.AdapterDiscordBridge, func(d input.Deps) (input.Adapter, error) {
		return bridge.New(bridge.Options{
			GatewayURL: cfg.GatewayURL,
			Tokens:     bridge.StaticToken(cfg.GatewayToken),
		}, d), nil
	})

	flags := orchestrator.Flags{
		Text:           *text,
		GUI:            *gui,
		Web:            *web,
		Voice:          *voiceFlag,
		ComputerVision: *vision,
		DiscordBridge:  *chat,
	}

	orch := orchestrator.New(registry, flags, cfg, deps)
	log.Info("starting hearth", "adapters", orch.SelectAdapters())

	if err := orch.Start(); err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	if err := orch.Stop(); err != nil {
		log.Error("shutdown finished with errors", "error", err)
		os.Exit(1)
	}
}
