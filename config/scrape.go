package config

import (
	"strings"
	"time"
)

// ScrapeConfig controls the upstream HTML sources.
type ScrapeConfig struct {
	UserAgent string        `env:"USER_AGENT"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"30s"`

	// Minimum spacing between requests to the same site.
	WikipediaInterval   time.Duration `env:"WIKIPEDIA_INTERVAL"   envDefault:"1s"`
	EurocontrolInterval time.Duration `env:"EUROCONTROL_INTERVAL" envDefault:"2s"`
	CommonsInterval     time.Duration `env:"COMMONS_INTERVAL"     envDefault:"500ms"`

	// EurocontrolMaxPages caps list pagination; 0 follows every page.
	EurocontrolMaxPages int `env:"EUROCONTROL_MAX_PAGES" envDefault:"0"`

	EurocontrolURL string `env:"EUROCONTROL_URL" envDefault:"https://contentzone.eurocontrol.int/aircraftperformance"`
	WikipediaURL   string `env:"WIKIPEDIA_URL"   envDefault:"https://en.wikipedia.org"`
	CommonsURL     string `env:"COMMONS_URL"     envDefault:"https://commons.wikimedia.org"`
	UploadURL      string `env:"UPLOAD_URL"      envDefault:"https://upload.wikimedia.org"`
}

// Sanitize trims URLs and clamps negative durations to zero.
func (c *ScrapeConfig) Sanitize() {
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	c.WikipediaInterval = max(c.WikipediaInterval, 0)
	c.EurocontrolInterval = max(c.EurocontrolInterval, 0)
	c.CommonsInterval = max(c.CommonsInterval, 0)
	c.EurocontrolMaxPages = max(c.EurocontrolMaxPages, 0)
	c.EurocontrolURL = trimURL(c.EurocontrolURL)
	c.WikipediaURL = trimURL(c.WikipediaURL)
	c.CommonsURL = trimURL(c.CommonsURL)
	c.UploadURL = trimURL(c.UploadURL)
}

// AviationStackConfig holds the Aviation Stack API credentials.
type AviationStackConfig struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL" envDefault:"http://api.aviationstack.com/v1"`
}

// Sanitize trims the key and URL.
func (c *AviationStackConfig) Sanitize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = trimURL(c.BaseURL)
}

// Enabled reports whether an API key is configured.
func (c *AviationStackConfig) Enabled() bool {
	return c.APIKey != ""
}

// ImagesConfig controls the image downloader.
type ImagesConfig struct {
	OutputDir string        `env:"OUTPUT_DIR" envDefault:"images"`
	Workers   int           `env:"WORKERS"    envDefault:"4"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"10s"`
	MinSize   int           `env:"MIN_SIZE"   envDefault:"100"`
}

// Sanitize applies the downloader defaults.
func (c *ImagesConfig) Sanitize() {
	if c.OutputDir = strings.TrimSpace(c.OutputDir); c.OutputDir == "" {
		c.OutputDir = "images"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MinSize < 0 {
		c.MinSize = 0
	}
}

func trimURL(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}
