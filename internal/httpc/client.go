// Package httpc provides shared HTTP client plumbing with sensible
// defaults. Use this instead of http.DefaultClient to ensure timeouts
// are set.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// Default timeouts for outbound connections.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultConnectTimeout  = 10 * time.Second
	DefaultKeepAlive       = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second
)

// Dialer is the shared TCP dialer. The chat bridge reuses it for its
// websocket handshakes so connect behavior stays uniform.
var Dialer = &net.Dialer{
	Timeout:   DefaultConnectTimeout,
	KeepAlive: DefaultKeepAlive,
}

// Client is a shared HTTP client with production-ready defaults.
var Client = &http.Client{
	Timeout:   DefaultTimeout,
	Transport: newTransport(),
}

// NewClient creates an HTTP client with a custom overall timeout.
// For most cases, use the shared Client variable instead.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(),
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		DialContext:           Dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       DefaultIdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
