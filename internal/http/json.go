package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/target/aircraft-catalog/internal/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst. Unknown fields are ignored
// so clients can send back records they received, derived values included.
// Returns false after writing a 400 response when the body is not valid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}
	return true
}

// DecodeOptionalJSON is DecodeJSON for endpoints where an empty body means
// defaults. It works from the stream, so chunked bodies without a length
// are handled too.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// Write errors mean the client went away.
	_, _ = buf.WriteTo(w)
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes {"error": code, "message": msg}.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteServiceError maps a service error onto a status and error code.
// fallback is the error code used for unexpected failures.
func WriteServiceError(w http.ResponseWriter, err error, fallback string) {
	p := ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallback, Err: err}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		p.Code, p.ErrCode = http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeNotFound:
		p.Code, p.ErrCode = http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		p.Code, p.ErrCode = http.StatusConflict, "conflict"
	case apperrors.ErrCodeUnavailable:
		p.Code, p.ErrCode = http.StatusBadGateway, "upstream_unavailable"
	case apperrors.ErrCodeTimeout:
		p.Code, p.ErrCode = http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		// 499: client closed request.
		p.Code, p.ErrCode = 499, "canceled"
	}
	WriteError(w, p)
}
