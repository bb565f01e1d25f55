package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/observability/statsd"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server, *statsd.Recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	rec := &statsd.Recorder{}
	return NewClient(ClientOptions{Source: "test", Metrics: rec}), srv, rec
}

func TestClientGetSetsUserAgent(t *testing.T) {
	t.Parallel()
	var ua string
	c, srv, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
		_, _ = w.Write([]byte("hello"))
	}))

	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, DefaultUserAgent, ua)

	samples := rec.Named("scrape.request")
	require.Len(t, samples, 1)
	assert.Equal(t, "test", samples[0].Tags["source"])
	assert.Equal(t, "200", samples[0].Tags["status"])
}

func TestClientGetStatusError(t *testing.T) {
	t.Parallel()
	c, srv, rec := newTestClient(t, http.NotFoundHandler())

	_, err := c.Get(context.Background(), srv.URL+"/missing")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)

	samples := rec.Named("scrape.request")
	require.Len(t, samples, 1)
	assert.Equal(t, "error", samples[0].Tags["result"])
}

func TestClientExists(t *testing.T) {
	t.Parallel()
	c, srv, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/ok" {
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	ok, err := c.Exists(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(context.Background(), srv.URL+"/nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientGetJSON(t *testing.T) {
	t.Parallel()
	c, srv, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value": 42}`))
	}))

	var dst struct {
		Value int `json:"value"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, &dst))
	assert.Equal(t, 42, dst.Value)
}

func TestClientPacingHonorsContext(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)
	c := NewClient(ClientOptions{Interval: time.Hour})

	_, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, srv.URL)
	require.Error(t, err)
}
