package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/aircraft-catalog/config"
	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/data"
	"github.com/target/aircraft-catalog/internal/imagefetch"
	"github.com/target/aircraft-catalog/internal/observability/statsd"
	"github.com/target/aircraft-catalog/internal/scrape"
	"github.com/target/aircraft-catalog/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Aircraft *service.AircraftService
	Stats    *service.StatsService
	Import   *service.ImportService

	AircraftRepo *data.AircraftRepo
	ImportRuns   *data.ImportRunRepo

	Commons *scrape.Commons
	Sources Sources
	Metrics *statsd.Client
}

// Sources groups the online scrapers. AviationStack is nil without an API key.
type Sources struct {
	Wikipedia     *scrape.Wikipedia
	Eurocontrol   *scrape.Eurocontrol
	AviationStack *scrape.AviationStack
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional
	Logger      *slog.Logger
}

// NewServices builds repositories, scrapers and services from deps.
func NewServices(deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := buildMetrics(logger, cfg.Observability.Metrics)
	aircraftRepo := data.NewAircraftRepo(deps.DB)
	runRepo := data.NewImportRunRepo(deps.DB)

	var cacheRepo core.CacheRepository
	if deps.RedisClient != nil {
		cacheRepo = data.NewRedisCacheRepo(deps.RedisClient, cfg.Cache.Prefix)
	}
	statsCache := core.NewGenerationCache(core.GenerationCacheOptions{
		Cache:     cacheRepo,
		Namespace: "stats",
		TTL:       cfg.Cache.StatsTTL,
		Logger:    logger,
	})

	sources := buildSources(cfg, metrics, logger)
	aircraft := service.NewAircraftService(service.AircraftServiceOptions{
		Repo:   aircraftRepo,
		Cache:  statsCache,
		Logger: logger,
	})

	return ServiceContainer{
		Aircraft: aircraft,
		Stats: service.NewStatsService(service.StatsServiceOptions{
			Repo:   aircraftRepo,
			Cache:  statsCache,
			Logger: logger,
		}),
		Import: service.NewImportService(service.ImportServiceOptions{
			Aircraft: aircraft,
			Runs:     runRepo,
			Sources:  sources.list(),
			Metrics:  metricsSink(metrics),
			Logger:   logger,
		}),
		AircraftRepo: aircraftRepo,
		ImportRuns:   runRepo,
		Commons:      NewCommons(cfg, metrics, logger),
		Sources:      sources,
		Metrics:      metrics,
	}
}

func (s Sources) list() []core.AircraftSource {
	out := []core.AircraftSource{s.Wikipedia, s.Eurocontrol}
	if s.AviationStack != nil {
		out = append(out, s.AviationStack)
	}
	return out
}

// buildMetrics returns nil when metrics are disabled or the sink cannot be
// dialed.
func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// metricsSink keeps a nil *statsd.Client from becoming a non-nil interface.
//
//nolint:ireturn // callers take the Sink interface.
func metricsSink(c *statsd.Client) statsd.Sink {
	if c == nil {
		return nil
	}
	return c
}

func newScrapeClient(cfg *config.AppConfig, source string, metrics *statsd.Client, logger *slog.Logger) *scrape.Client {
	opts := scrape.ClientOptions{
		Source:    source,
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   cfg.Scrape.Timeout,
		Metrics:   metricsSink(metrics),
		Logger:    logger,
	}
	switch source {
	case "wikipedia":
		opts.Interval = cfg.Scrape.WikipediaInterval
	case "eurocontrol":
		opts.Interval = cfg.Scrape.EurocontrolInterval
	case "commons":
		opts.Interval = cfg.Scrape.CommonsInterval
	}
	return scrape.NewClient(opts)
}

func buildSources(cfg *config.AppConfig, metrics *statsd.Client, logger *slog.Logger) Sources {
	s := Sources{
		Wikipedia: scrape.NewWikipedia(newScrapeClient(cfg, "wikipedia", metrics, logger), cfg.Scrape.WikipediaURL),
		Eurocontrol: scrape.NewEurocontrol(newScrapeClient(cfg, "eurocontrol", metrics, logger),
			cfg.Scrape.EurocontrolURL, cfg.Scrape.EurocontrolMaxPages),
	}
	if cfg.AviationStack.Enabled() {
		s.AviationStack = scrape.NewAviationStack(newScrapeClient(cfg, "aviationstack", metrics, logger),
			cfg.AviationStack.BaseURL, cfg.AviationStack.APIKey)
	}
	return s
}

// NewCommons builds the Wikimedia Commons scraper.
func NewCommons(cfg *config.AppConfig, metrics *statsd.Client, logger *slog.Logger) *scrape.Commons {
	return scrape.NewCommons(newScrapeClient(cfg, "commons", metrics, logger), cfg.Scrape.CommonsURL, cfg.Scrape.UploadURL)
}

// NewImageFetcher builds the image downloader writing under outDir, or under
// the configured directory when outDir is empty.
func NewImageFetcher(cfg *config.AppConfig, outDir string, metrics *statsd.Client, logger *slog.Logger) *imagefetch.Fetcher {
	if outDir == "" {
		outDir = cfg.Images.OutputDir
	}
	return imagefetch.New(imagefetch.Options{
		OutputDir: outDir,
		Workers:   cfg.Images.Workers,
		Timeout:   cfg.Images.Timeout,
		MinSize:   cfg.Images.MinSize,
		Client:    newScrapeClient(cfg, "images", metrics, logger),
		Metrics:   metricsSink(metrics),
		Logger:    logger,
	})
}
