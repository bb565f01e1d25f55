package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/config"
)

func TestNewServices_WiresOptionalSources(t *testing.T) {
	t.Parallel()
	cfg := &config.AppConfig{}
	cfg.Sanitize()

	svc := NewServices(&ServiceDeps{Config: cfg})
	require.NotNil(t, svc.Aircraft)
	require.NotNil(t, svc.Stats)
	require.NotNil(t, svc.Import)
	require.NotNil(t, svc.Commons)
	assert.NotNil(t, svc.Sources.Wikipedia)
	assert.NotNil(t, svc.Sources.Eurocontrol)
	assert.Nil(t, svc.Sources.AviationStack)
	assert.Nil(t, svc.Metrics)
	assert.Len(t, svc.Sources.list(), 2)

	cfg.AviationStack.APIKey = "key"
	svc = NewServices(&ServiceDeps{Config: cfg})
	assert.NotNil(t, svc.Sources.AviationStack)
	assert.Len(t, svc.Sources.list(), 3)
}

func TestBuildHandler_ServesHealthAndStatic(t *testing.T) {
	t.Parallel()
	cfg := &config.AppConfig{}
	cfg.Sanitize()
	h := BuildHandler(&HTTPServerConfig{
		Config:   cfg,
		Services: NewServices(&ServiceDeps{Config: cfg}),
		Static:   fstest.MapFS{"index.html": {Data: []byte("catalog")}},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "catalog", rec.Body.String())
}

func TestNewImageFetcher_DefaultsToConfiguredDir(t *testing.T) {
	t.Parallel()
	cfg := &config.AppConfig{}
	cfg.Sanitize()
	assert.NotNil(t, NewImageFetcher(cfg, "", nil, nil))
	assert.NotNil(t, NewImageFetcher(cfg, t.TempDir(), nil, nil))
}
