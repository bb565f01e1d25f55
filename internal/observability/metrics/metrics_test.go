package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/observability/statsd"
)

func TestEmitImport(t *testing.T) {
	t.Parallel()

	var rec statsd.Recorder
	EmitImport(&rec, ImportMetric{Source: "sample", Result: ResultSuccess, Count: 10, Duration: time.Second})

	counts := rec.Named("import.source")
	require.Len(t, counts, 1)
	assert.Equal(t, float64(10), counts[0].Value)
	assert.Equal(t, map[string]string{"source": "sample", "result": "success"}, counts[0].Tags)
	assert.Len(t, rec.Named("import.duration"), 1)
}

func TestEmitImportErrorClass(t *testing.T) {
	t.Parallel()

	var rec statsd.Recorder
	EmitImport(&rec, ImportMetric{Source: "wikipedia", Result: ResultError, Err: context.DeadlineExceeded})

	counts := rec.Named("import.source")
	require.Len(t, counts, 1)
	assert.Equal(t, "timeout", counts[0].Tags["error_class"])
	assert.Empty(t, rec.Named("import.duration"))
}

func TestEmitScrape(t *testing.T) {
	t.Parallel()

	var rec statsd.Recorder
	EmitScrape(&rec, ScrapeMetric{Source: "eurocontrol", Status: 503, Err: errors.New("bad status")})

	reqs := rec.Named("scrape.request")
	require.Len(t, reqs, 1)
	assert.Equal(t, "error", reqs[0].Tags["result"])
	assert.Equal(t, "503", reqs[0].Tags["status"])
	assert.NotEmpty(t, reqs[0].Tags["error_class"])
}

func TestEmitNilSink(t *testing.T) {
	t.Parallel()

	EmitImport(nil, ImportMetric{Source: "sample"})
	EmitScrape(nil, ScrapeMetric{Source: "sample"})
	EmitImageFetch(nil, ResultNoop, nil)
	assert.Nil(t, CloneTags(nil))
	assert.Equal(t, ResultError, ResultFor(errors.New("x")))
	assert.Equal(t, ResultSuccess, ResultFor(nil))
}
