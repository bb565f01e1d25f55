package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"ADDR" envDefault:":8080"`

	// CORSOrigin is sent as Access-Control-Allow-Origin on /api/ responses.
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// CompressionEnabled enables gzip compression for text-based assets.
	CompressionEnabled bool `env:"COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"COMPRESSION_LEVEL" envDefault:"6"`

	// CompressionMinSize is the smallest body, in bytes, worth compressing.
	CompressionMinSize int `env:"COMPRESSION_MIN_SIZE" envDefault:"1024"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr = strings.TrimSpace(h.Addr); h.Addr == "" {
		h.Addr = ":8080"
	}
	if h.CORSOrigin = strings.TrimSpace(h.CORSOrigin); h.CORSOrigin == "" {
		h.CORSOrigin = "*"
	}
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
	if h.CompressionMinSize < 0 {
		h.CompressionMinSize = 0
	}
}
