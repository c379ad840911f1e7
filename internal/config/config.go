// Package config provides configuration helpers for hearth commands.
// Values come from the environment; persistence formats live elsewhere.
package config

import (
	"os"

	"github.com/hearthlabs/hearth/pkg/command"
)

// Defaults.
const (
	DefaultHTTPAddr = ":8089"
	DefaultLogLevel = "info"
)

// Config is the runtime configuration snapshot consulted by the
// orchestrator and the adapters.
type Config struct {
	LogLevel     string
	HTTPAddr     string
	GatewayURL   string
	GatewayToken string
	GoogleAPIKey string

	// Advisors reports whether the advisor subsystem is enabled; the
	// chat bridge is only selected when it is.
	Advisors bool

	// ModelActions maps command identifiers to their trigger keywords.
	ModelActions map[string]command.Action
}

// FromEnv builds a Config from environment variables, with defaults.
func FromEnv() *Config {
	return &Config{
		LogLevel:     envOr("HEARTH_LOG_LEVEL", DefaultLogLevel),
		HTTPAddr:     envOr("HEARTH_HTTP_ADDR", DefaultHTTPAddr),
		GatewayURL:   os.Getenv("HEARTH_GATEWAY_URL"),
		GatewayToken: os.Getenv("HEARTH_GATEWAY_TOKEN"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		Advisors:     os.Getenv("HEARTH_ADVISORS") == "1",
		ModelActions: DefaultActions(),
	}
}

// AdvisorsEnabled reports whether the advisor subsystem is enabled.
func (c *Config) AdvisorsEnabled() bool { return c.Advisors }

// Commands returns the ordered matching table built from ModelActions.
func (c *Config) Commands() []command.Command {
	return command.TableFromActions(c.ModelActions)
}

// DefaultActions is the built-in command table used when no action table
// is supplied.
func DefaultActions() map[string]command.Action {
	return map[string]command.Action{
		"lights":  {Keyword: "lamp", Keywords: []string{"bright", "dark"}},
		"music":   {Keyword: "play", Keywords: []string{"song"}},
		"weather": {Keyword: "forecast", Keywords: []string{"temperature"}},
		"timer":   {Keyword: "countdown", Keywords: []string{"remind"}},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
