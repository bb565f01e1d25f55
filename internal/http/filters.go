package httpx

import (
	"net/url"
	"strings"
)

const (
	// SortDirAsc represents ascending sort direction.
	SortDirAsc = "asc"
	// SortDirDesc represents descending sort direction.
	SortDirDesc = "desc"
)

// ParseSortParam reads the sort field and direction from either
// ?sort=field:dir or ?sort=field&dir=dir. The direction is lowercased and
// dropped unless it is asc or desc; the colon form wins when both are given.
func ParseSortParam(q url.Values, sortKey, dirKey string) (string, string) {
	field := strings.TrimSpace(q.Get(sortKey))
	dir := strings.ToLower(strings.TrimSpace(q.Get(dirKey)))
	if f, d, ok := strings.Cut(field, ":"); ok {
		field, dir = strings.TrimSpace(f), strings.ToLower(strings.TrimSpace(d))
	}
	if dir != SortDirAsc && dir != SortDirDesc {
		dir = ""
	}
	return field, dir
}
