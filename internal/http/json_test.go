package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// chunked builds a POST whose length is unknown, as with Transfer-Encoding: chunked.
func chunked(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/import/online", io.NopCloser(strings.NewReader(body)))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	return req
}

func TestDecodeOptionalJSON(t *testing.T) {
	t.Parallel()

	t.Run("empty chunked body keeps defaults", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		var req model.OnlineImportRequest
		require.True(t, DecodeOptionalJSON(rec, chunked(""), &req))
		assert.Empty(t, req.Source)
		assert.Nil(t, req.MaxAircraft)
		assert.Equal(t, model.DefaultMaxAircraft, req.Limit())
	})

	t.Run("chunked body is decoded", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		var req model.OnlineImportRequest
		require.True(t, DecodeOptionalJSON(rec, chunked(`{"source":"wikipedia","max_aircraft":5}`), &req))
		assert.Equal(t, "wikipedia", req.Source)
		assert.Equal(t, 5, req.Limit())
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		var req model.OnlineImportRequest
		assert.False(t, DecodeOptionalJSON(rec, chunked(`{"source":`), &req))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_json")
	})
}

func TestDecodeJSONRejectsEmptyBody(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	var dst map[string]any
	assert.False(t, DecodeJSON(rec, chunked(""), &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body is empty")
}
