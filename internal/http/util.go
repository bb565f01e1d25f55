package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/target/aircraft-catalog/internal/domain/model"
	apperrors "github.com/target/aircraft-catalog/internal/errors"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses pagination params. A missing or non-positive
// limit means no limit; values above maxLimit are clamped.
func ParseLimitOffset(r *http.Request, maxLimit int) (int, int) {
	lim := parseIntQuery(r, "limit", 0)
	off := parseIntQuery(r, "offset", 0)
	if lim < 0 {
		lim = 0
	}
	if maxLimit > 0 && lim > maxLimit {
		lim = maxLimit
	}
	if off < 0 {
		off = 0
	}
	return lim, off
}

// parseListOptions reads limit, offset, q, sort and dir.
func parseListOptions(r *http.Request) model.AircraftListOptions {
	q := r.URL.Query()
	limit, offset := ParseLimitOffset(r, maxListLimit)
	sort, dir := ParseSortParam(q, "sort", "dir")
	opts := model.AircraftListOptions{Limit: limit, Offset: offset, Sort: sort, Dir: dir}
	if term := strings.TrimSpace(q.Get("q")); term != "" {
		opts.Q = &term
	}
	return opts
}

// queryOr returns the trimmed query value for key, or def when it is blank.
func queryOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

// pathID parses the {id} path value as a positive integer.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField("id", "id must be a positive integer")
	}
	return id, nil
}
