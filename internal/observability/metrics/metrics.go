// Package metrics defines the catalog's metric names and tag conventions.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/target/aircraft-catalog/internal/observability/errors"
	"github.com/target/aircraft-catalog/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// ResultFor maps an error to ResultSuccess or ResultError.
func ResultFor(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// ImportMetric describes one finished import from a single source.
type ImportMetric struct {
	Source   string
	Result   string
	Count    int
	Duration time.Duration
	Err      error
}

// EmitImport emits import.source with the number of upserted records and
// import.duration when a duration is known.
func EmitImport(sink statsd.Sink, in ImportMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{"source": in.Source, "result": in.Result}
	addErrorClass(tags, in.Result, in.Err)

	sink.Count("import.source", int64(in.Count), tags)
	if in.Duration > 0 {
		sink.Timing("import.duration", in.Duration, CloneTags(tags))
	}
}

// ScrapeMetric describes one outbound HTTP request made by a scraper.
type ScrapeMetric struct {
	Source   string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitScrape emits scrape.request and scrape.duration.
func EmitScrape(sink statsd.Sink, in ScrapeMetric) {
	if sink == nil {
		return
	}
	result := ResultFor(in.Err)
	tags := map[string]string{"source": in.Source, "result": result}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	addErrorClass(tags, result, in.Err)

	sink.Count("scrape.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("scrape.duration", in.Duration, CloneTags(tags))
	}
}

// EmitImageFetch counts one image download attempt. Result is one of
// success, error or noop (already on disk).
func EmitImageFetch(sink statsd.Sink, result string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": result}
	addErrorClass(tags, result, err)
	sink.Count("images.fetch", 1, tags)
}

func addErrorClass(tags map[string]string, result string, err error) {
	if err == nil || result != ResultError {
		return
	}
	if class := obserrors.Classify(err); class != "" {
		tags["error_class"] = class
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
