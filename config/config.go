package config

import (
	"os"
	"strings"
)

// AppConfig composes the per-concern configuration structs. Values are read
// from the environment with github.com/caarlos0/env; see the individual files
// for the variables each section understands:
//   - database.go: Postgres, Redis and the stats cache
//   - http.go: HTTP server
//   - scrape.go: upstream sources and the image downloader
//   - observability.go: StatsD metrics
type AppConfig struct {
	// IsDev switches on text logs and serving web/ from disk.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig `envPrefix:"CACHE_"`

	HTTP HTTPConfig `envPrefix:"HTTP_"`

	Scrape        ScrapeConfig        `envPrefix:"SCRAPE_"`
	AviationStack AviationStackConfig `envPrefix:"AVIATION_STACK_"`
	Images        ImagesConfig        `envPrefix:"IMAGES_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Postgres.Sanitize()
	c.Redis.Sanitize()
	c.Cache.Sanitize()
	c.HTTP.Sanitize()
	c.Scrape.Sanitize()
	c.AviationStack.Sanitize()
	c.Images.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks NODE_ENV as a fallback for DEV (common in frontend
// tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
