// Package imagefetch downloads aircraft images into a local directory,
// validates them and writes per-image metadata plus an index.
package imagefetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/target/aircraft-catalog/internal/catalog"
	"github.com/target/aircraft-catalog/internal/domain/model"
	"github.com/target/aircraft-catalog/internal/observability/metrics"
	"github.com/target/aircraft-catalog/internal/observability/statsd"
	"github.com/target/aircraft-catalog/internal/scrape"
)

// Defaults applied by New.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
	DefaultMinSize = 100
)

const (
	aircraftDir = "aircraft"
	fallbackDir = "fallback"
	// IndexFile maps aircraft ids to their local image.
	IndexFile = "aircraft_images.json"

	resultDownloaded = "downloaded"
	resultCached     = "cached"
	resultFallback   = "fallback"
	resultFailed     = "failed"
)

// DefaultFallbacks are Commons images used when an aircraft's own image
// cannot be fetched, keyed by category type.
var DefaultFallbacks = map[string]string{
	catalog.TypeCommercial: "https://upload.wikimedia.org/wikipedia/commons/4/44/Boeing_787_first_flight.jpg",
	catalog.TypeBusiness:   "https://upload.wikimedia.org/wikipedia/commons/b/b3/Gulfstream_G650ER_N650GD_EDDB_2019_1.jpg",
	catalog.TypeCargo:      "https://upload.wikimedia.org/wikipedia/commons/c/c5/FedEx_Express_Boeing_777F_N886FD_approaching_NRT.jpg",
	catalog.TypeMilitary:   "https://upload.wikimedia.org/wikipedia/commons/c/cb/F-22_Raptor_edit1_%28cropped%29.jpg",
	catalog.TypeGeneral:    "https://upload.wikimedia.org/wikipedia/commons/e/e8/Cessna_172S_Skyhawk_SP%2C_Private_JP6817606.jpg",
	catalog.TypeHistorical: "https://upload.wikimedia.org/wikipedia/commons/a/a3/Wright_Flyer_in_flight_1908_Kitty_Hawk.jpg",
	catalog.TypeBird:       "https://upload.wikimedia.org/wikipedia/commons/1/1a/Bald_Eagle_in_flight%2C_Alaska.jpg",
}

// ErrImageTooSmall is returned for images below the minimum size.
var ErrImageTooSmall = errors.New("image too small")

// Options configures a Fetcher.
type Options struct {
	OutputDir string
	Workers   int           // default 4
	Timeout   time.Duration // per download, default 10s
	MinSize   int           // minimum width and height, default 100
	// Fallbacks overrides DefaultFallbacks.
	Fallbacks map[string]string
	Client    *scrape.Client
	Metrics   statsd.Sink
	Logger    *slog.Logger
}

// Summary reports the outcome of a Run.
type Summary struct {
	Total      int
	Downloaded int
	Fallback   int
	Failed     int
	Records    []model.ImageRecord
}

// Fetcher downloads images with a bounded worker pool.
type Fetcher struct {
	outDir    string
	workers   int
	timeout   time.Duration
	minSize   int
	fallbacks map[string]string
	client    *scrape.Client
	metrics   statsd.Sink
	logger    *slog.Logger

	group         singleflight.Group
	mu            sync.Mutex
	fallbackFiles map[string]model.ImageRecord
}

// New creates a Fetcher. OutputDir is required.
func New(opts Options) *Fetcher {
	if opts.OutputDir == "" {
		panic("imagefetch: OutputDir is required")
	}
	f := &Fetcher{
		outDir:        opts.OutputDir,
		workers:       opts.Workers,
		timeout:       opts.Timeout,
		minSize:       opts.MinSize,
		fallbacks:     opts.Fallbacks,
		client:        opts.Client,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
		fallbackFiles: make(map[string]model.ImageRecord),
	}
	if f.workers <= 0 {
		f.workers = DefaultWorkers
	}
	if f.timeout <= 0 {
		f.timeout = DefaultTimeout
	}
	if f.minSize <= 0 {
		f.minSize = DefaultMinSize
	}
	if f.fallbacks == nil {
		f.fallbacks = DefaultFallbacks
	}
	if f.client == nil {
		f.client = scrape.NewClient(scrape.ClientOptions{Source: "images", Timeout: f.timeout, Metrics: f.metrics})
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	f.logger = f.logger.With("component", "imagefetch")
	return f
}

// Run downloads the image of every aircraft, writes "<id>_info.json" next
// to each image and the id index. Per-aircraft failures are recorded in the
// summary; only filesystem setup errors and cancellation abort the run.
func (f *Fetcher) Run(ctx context.Context, aircraft []model.Aircraft) (*Summary, error) {
	for _, dir := range []string{filepath.Join(f.outDir, aircraftDir), filepath.Join(f.outDir, fallbackDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	records := make([]model.ImageRecord, len(aircraft))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i := range aircraft {
		g.Go(func() error {
			rec := f.process(gctx, &aircraft[i])
			if err := f.writeInfo(rec); err != nil {
				return err
			}
			records[i] = rec
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{Total: len(records), Records: records}
	for _, r := range records {
		switch {
		case r.LocalPath == "":
			sum.Failed++
		case r.UsedFallback:
			sum.Fallback++
		default:
			sum.Downloaded++
		}
	}
	if err := f.writeIndex(records); err != nil {
		return nil, err
	}
	f.logger.InfoContext(ctx, "image download finished",
		"total", sum.Total, "downloaded", sum.Downloaded, "fallback", sum.Fallback, "failed", sum.Failed)
	return sum, nil
}

func (f *Fetcher) process(ctx context.Context, a *model.Aircraft) model.ImageRecord {
	rec := model.ImageRecord{
		ID:           a.ID,
		Name:         a.Name,
		Manufacturer: deref(a.Manufacturer),
		Model:        deref(a.Model),
		Category:     deref(a.CategoryType),
		OriginalURL:  deref(a.ImageURL),
	}

	if rec.OriginalURL != "" {
		rel := filepath.ToSlash(filepath.Join(aircraftDir, FileName(a.ID, a.Name, rec.OriginalURL)))
		cfg, format, cached, err := f.fetch(ctx, rec.OriginalURL, rel)
		if err == nil {
			rec.LocalPath, rec.Width, rec.Height, rec.Format = rel, cfg.Width, cfg.Height, format
			result := resultDownloaded
			if cached {
				result = resultCached
			}
			metrics.EmitImageFetch(f.metrics, result, nil)
			return rec
		}
		f.logger.WarnContext(ctx, "image download failed", "id", a.ID, "name", a.Name, "url", rec.OriginalURL, "error", err)
		rec.Error = err.Error()
	}

	fb, err := f.fallback(ctx, rec.Category)
	if err != nil {
		f.logger.ErrorContext(ctx, "fallback image unavailable", "id", a.ID, "category", rec.Category, "error", err)
		rec.Error = err.Error()
		metrics.EmitImageFetch(f.metrics, resultFailed, err)
		return rec
	}
	rec.LocalPath, rec.Width, rec.Height, rec.Format = fb.LocalPath, fb.Width, fb.Height, fb.Format
	rec.UsedFallback = true
	metrics.EmitImageFetch(f.metrics, resultFallback, nil)
	return rec
}

// fallback downloads the category image once and shares it between workers.
func (f *Fetcher) fallback(ctx context.Context, category string) (model.ImageRecord, error) {
	if _, ok := f.fallbacks[category]; !ok {
		category = catalog.TypeGeneral
	}
	f.mu.Lock()
	if rec, ok := f.fallbackFiles[category]; ok {
		f.mu.Unlock()
		return rec, nil
	}
	f.mu.Unlock()

	v, err, _ := f.group.Do(category, func() (any, error) {
		src, ok := f.fallbacks[category]
		if !ok {
			return nil, fmt.Errorf("no fallback image for category %q", category)
		}
		rel := filepath.ToSlash(filepath.Join(fallbackDir, category+defaultExt))
		cfg, format, _, err := f.fetch(ctx, src, rel)
		if err != nil {
			return nil, err
		}
		rec := model.ImageRecord{LocalPath: rel, Width: cfg.Width, Height: cfg.Height, Format: format}
		f.mu.Lock()
		f.fallbackFiles[category] = rec
		f.mu.Unlock()
		return rec, nil
	})
	if err != nil {
		return model.ImageRecord{}, err
	}
	return v.(model.ImageRecord), nil
}

// fetch stores the image at rel unless a valid file is already there.
func (f *Fetcher) fetch(ctx context.Context, src, rel string) (image.Config, string, bool, error) {
	dst := filepath.Join(f.outDir, filepath.FromSlash(rel))
	if data, err := os.ReadFile(dst); err == nil {
		if cfg, format, err := f.probe(data); err == nil {
			return cfg, format, true, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	data, err := f.client.Get(ctx, src)
	if err != nil {
		return image.Config{}, "", false, err
	}
	cfg, format, err := f.probe(data)
	if err != nil {
		return image.Config{}, "", false, err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return image.Config{}, "", false, fmt.Errorf("write %s: %w", dst, err)
	}
	return cfg, format, false, nil
}

// probe decodes the image header and enforces the minimum size.
func (f *Fetcher) probe(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("invalid image: %w", err)
	}
	if cfg.Width < f.minSize || cfg.Height < f.minSize {
		return image.Config{}, "", fmt.Errorf("%w: %dx%d", ErrImageTooSmall, cfg.Width, cfg.Height)
	}
	return cfg, format, nil
}

func (f *Fetcher) writeInfo(rec model.ImageRecord) error {
	return writeJSON(filepath.Join(f.outDir, aircraftDir, strconv.FormatInt(rec.ID, 10)+"_info.json"), rec)
}

type indexEntry struct {
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}

func (f *Fetcher) writeIndex(records []model.ImageRecord) error {
	index := make(map[string]indexEntry, len(records))
	for _, r := range records {
		if r.LocalPath == "" {
			continue
		}
		index[strconv.FormatInt(r.ID, 10)] = indexEntry{Name: r.Name, ImagePath: r.LocalPath}
	}
	return writeJSON(filepath.Join(f.outDir, IndexFile), index)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
