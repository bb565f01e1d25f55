package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()
	tests := []struct {
		method string
		body   string
	}{
		{http.MethodGet, `{"status":"ok","service":"aircraft-catalog"}`},
		{http.MethodHead, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		healthHandler(rec, httptest.NewRequest(tt.method, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code, tt.method)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), tt.method)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"), tt.method)
		assert.Equal(t, tt.body, rec.Body.String(), tt.method)
	}
}
