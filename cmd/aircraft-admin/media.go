package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/target/aircraft-catalog/internal/aero"
	"github.com/target/aircraft-catalog/internal/bootstrap"
	"github.com/target/aircraft-catalog/internal/domain/model"
	"github.com/target/aircraft-catalog/internal/scrape"
)

const defaultAttributionWorkers = 4

type processOptions struct {
	OutDir  string
	StartID int
	Files   []string
}

func parseProcessFlags(args []string) (processOptions, error) {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	opts := processOptions{}
	fs.StringVar(&opts.OutDir, "out", filepath.Join("data", "processed"), "Output directory")
	fs.IntVar(&opts.StartID, "start-id", 1, "First ID to assign")
	if err := fs.Parse(args); err != nil {
		return processOptions{}, err
	}
	opts.Files = fs.Args()
	if len(opts.Files) == 0 {
		opts.Files = []string{filepath.Join("data", "aircraft.json"), filepath.Join("data", "birds.json")}
	}
	if opts.StartID < 1 {
		return processOptions{}, errors.New("--start-id must be positive")
	}
	return opts, nil
}

// runProcess numbers records across every file in order, so birds continue
// after the last aircraft.
func runProcess(cmdCtx *commandContext, args []string) error {
	opts, err := parseProcessFlags(args)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := &aero.Pipeline{Logger: cmdCtx.Logger}
	next := opts.StartID
	for _, in := range opts.Files {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out := filepath.Join(opts.OutDir, base+"_processed.json")
		rep, procErr := p.ProcessFile(in, out, next)
		if procErr != nil {
			return procErr
		}
		next = rep.NextID
		if err = writef(cmdCtx.Out, "%s -> %s: %d processed, %d dropped\n", in, out, rep.Processed, rep.Dropped); err != nil {
			return err
		}
	}
	return nil
}

type attributionOptions struct {
	File    string
	URL     string
	Output  string
	Sample  int
	Workers int
}

func parseAttributionFlags(args []string) (attributionOptions, error) {
	fs := flag.NewFlagSet("attribution", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	opts := attributionOptions{}
	fs.StringVar(&opts.File, "file", "", "JSON file with aircraft or birds carrying image_url")
	fs.StringVar(&opts.URL, "url", "", "Single image URL to resolve")
	fs.StringVar(&opts.Output, "output", "output", "Output directory")
	fs.IntVar(&opts.Sample, "sample", 0, "Only resolve the first N images of --file")
	fs.IntVar(&opts.Workers, "workers", defaultAttributionWorkers, "Concurrent page fetches")
	if err := fs.Parse(args); err != nil {
		return attributionOptions{}, err
	}
	if (opts.File == "") == (opts.URL == "") {
		return attributionOptions{}, errors.New("exactly one of --file or --url is required")
	}
	if opts.Sample < 0 {
		return attributionOptions{}, errors.New("--sample must not be negative")
	}
	return opts, nil
}

func runAttribution(cmdCtx *commandContext, args []string) error {
	opts, err := parseAttributionFlags(args)
	if err != nil {
		return err
	}
	commons := bootstrap.NewCommons(&cmdCtx.Config, nil, cmdCtx.Logger)

	if opts.URL != "" {
		out := commons.AttributionBatch(cmdCtx.Ctx, []model.ImageItem{{Name: "url", URL: opts.URL}}, 1)
		return printAttribution(cmdCtx, out[0])
	}

	body, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.File, err)
	}
	var doc map[string]any
	if err = json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", opts.File, err)
	}
	items, err := scrape.ImageItems(doc, "image_url")
	if err != nil {
		return err
	}
	suffix := "_attribution.json"
	if opts.Sample > 0 {
		items = items[:min(opts.Sample, len(items))]
		suffix = "_sample_attribution.json"
	}
	cmdCtx.Logger.Info("resolving attributions", "file", opts.File, "images", len(items))

	results := commons.AttributionBatch(cmdCtx.Ctx, items, opts.Workers)
	found := 0
	for _, r := range results {
		if r.Found() {
			found++
		}
	}

	if err = os.MkdirAll(opts.Output, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(opts.File), filepath.Ext(opts.File))
	path := filepath.Join(opts.Output, base+suffix)
	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err = os.WriteFile(path, encoded, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return writef(cmdCtx.Out, "%d of %d attributions found, saved to %s\n", found, len(results), path)
}

func printAttribution(cmdCtx *commandContext, a model.Attribution) error {
	if a.Error != "" {
		return fmt.Errorf("attribution for %s: %s", a.OriginalURL, a.Error)
	}
	for _, f := range []struct {
		label string
		value *string
	}{
		{"Author", a.Author},
		{"License", a.License},
		{"Description", a.Description},
		{"Date", a.Date},
		{"Source", a.Source},
		{"Attribution", a.FormattedAttribution},
	} {
		if f.value == nil {
			continue
		}
		if err := writef(cmdCtx.Out, "%-12s %s\n", f.label+":", *f.value); err != nil {
			return err
		}
	}
	return writef(cmdCtx.Out, "%-12s %s\n", "Page:", a.URL)
}

type thumbnailOptions struct {
	In   string
	Out  string
	Test string
}

func parseThumbnailFlags(args []string) (thumbnailOptions, error) {
	fs := flag.NewFlagSet("thumbnails", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	opts := thumbnailOptions{}
	fs.StringVar(&opts.In, "in", "aircraft_images.csv", "Input CSV (code first, Commons URL fourth)")
	fs.StringVar(&opts.Out, "out", "aircraft_images_with_thumbnails.csv", "Output CSV")
	fs.StringVar(&opts.Test, "test", "", "Resolve a single aircraft code and print it without writing")
	if err := fs.Parse(args); err != nil {
		return thumbnailOptions{}, err
	}
	return opts, nil
}

func runThumbnails(cmdCtx *commandContext, args []string) error {
	opts, err := parseThumbnailFlags(args)
	if err != nil {
		return err
	}
	rows, err := readCSV(opts.In)
	if err != nil {
		return err
	}

	commons := bootstrap.NewCommons(&cmdCtx.Config, nil, cmdCtx.Logger)
	rep, err := commons.ThumbnailTable(cmdCtx.Ctx, rows, opts.Test)
	if err != nil {
		return err
	}

	if opts.Test != "" {
		col := len(rows[0]) - 1
		for _, row := range rows[1:] {
			if len(row) > 0 && row[0] == opts.Test && len(row) > col && row[col] != "" {
				return writef(cmdCtx.Out, "Thumbnail URL for %s: %s\n", opts.Test, row[col])
			}
		}
		return writef(cmdCtx.Out, "No thumbnail URL found for %s\n", opts.Test)
	}

	if err = writeCSV(opts.Out, rows); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "%d of %d rows have thumbnails, saved to %s\n", rep.Found, rep.Processed, opts.Out)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}
	return rows, nil
}

func writeCSV(path string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	w := csv.NewWriter(f)
	if err = w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runDownloadImages(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("download-images", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("out", "", "Output directory (defaults to IMAGES_OUTPUT_DIR)")
	updateDB := fs.Bool("update-db", false, "Point each record's image_url at its downloaded or fallback image")
	prefix := fs.String("url-prefix", "/images/", "URL prefix the output directory is served under")
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, closeAll, err := connectServices(cmdCtx)
	if err != nil {
		return err
	}
	defer closeAll()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	rows, err := services.AircraftRepo.List(ctx, model.AircraftListOptions{Sort: "id"})
	if err != nil {
		return fmt.Errorf("list aircraft: %w", err)
	}
	aircraft := make([]model.Aircraft, 0, len(rows))
	for _, a := range rows {
		aircraft = append(aircraft, *a)
	}

	fetcher := bootstrap.NewImageFetcher(&cmdCtx.Config, *out, services.Metrics, cmdCtx.Logger)
	sum, err := fetcher.Run(ctx, aircraft)
	if err != nil {
		return err
	}
	if err = writef(cmdCtx.Out, "%d images: %d downloaded, %d fallback, %d failed\n",
		sum.Total, sum.Downloaded, sum.Fallback, sum.Failed); err != nil {
		return err
	}
	if !*updateDB {
		return nil
	}

	report, err := services.Import.ApplyImagePaths(ctx, sum.Records, *prefix)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "image_url updated on %d records (%d fallback), %d unchanged, %d without image\n",
		report.Updated, report.Fallback, report.Unchanged, report.Skipped)
}
