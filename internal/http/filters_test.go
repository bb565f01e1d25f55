package httpx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortParam(t *testing.T) {
	t.Parallel()
	tests := []struct {
		query     string
		wantField string
		wantDir   string
	}{
		{"", "", ""},
		{"sort=mtow", "mtow", ""},
		{"sort=mtow&dir=DESC", "mtow", "desc"},
		{"sort=name:asc", "name", "asc"},
		{"sort=name:asc&dir=desc", "name", "asc"},
		{"sort=name&dir=sideways", "name", ""},
	}
	for _, tt := range tests {
		q, err := url.ParseQuery(tt.query)
		assert.NoError(t, err)
		field, dir := ParseSortParam(q, "sort", "dir")
		assert.Equal(t, tt.wantField, field, tt.query)
		assert.Equal(t, tt.wantDir, dir, tt.query)
	}
}
