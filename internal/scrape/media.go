package scrape

import (
	"context"
	"errors"
	"fmt"
	"slices"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// Thumbnail CSV layout: the ICAO code leads each row and the Commons page
// URL sits in the fourth column.
const (
	thumbCodeCol    = 0
	thumbCommonsCol = 3
	thumbColumn     = "thumbnail_url"
)

// ErrCodeNotFound reports a --test code absent from the table.
var ErrCodeNotFound = errors.New("aircraft code not found")

// ImageItems lists the {name, url} pairs of an aircraft or birds document.
// Records without the key are skipped; a missing name reads "Unknown".
func ImageItems(doc map[string]any, key string) ([]model.ImageItem, error) {
	if key == "" {
		key = "image_url"
	}
	collection := "aircraft"
	if _, ok := doc["aircraft"]; !ok {
		collection = "birds"
	}
	expr := fmt.Sprintf("%s[?%s].{name: name, url: %s}", collection, jmespathIdent(key), jmespathIdent(key))
	res, err := jmespath.Search(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	rows, _ := res.([]any)
	items := make([]model.ImageItem, 0, len(rows))
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		url, _ := m["url"].(string)
		if url == "" {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			name = "Unknown"
		}
		items = append(items, model.ImageItem{Name: name, URL: url})
	}
	return items, nil
}

func jmespathIdent(s string) string {
	return fmt.Sprintf("%q", s)
}

// ThumbnailReport summarizes a ThumbnailTable pass.
type ThumbnailReport struct {
	Processed int
	Found     int
}

// ThumbnailTable fills the thumbnail_url column of rows (header first) from
// each row's Commons page, appending the column when absent. With only set,
// just the row whose code matches is resolved. Rows whose lookup fails keep
// their current value.
func (c *Commons) ThumbnailTable(ctx context.Context, rows [][]string, only string) (ThumbnailReport, error) {
	var rep ThumbnailReport
	if len(rows) == 0 {
		return rep, errors.New("thumbnail table has no header")
	}
	col := slices.Index(rows[0], thumbColumn)
	if col < 0 {
		rows[0] = append(rows[0], thumbColumn)
		col = len(rows[0]) - 1
	}

	matched := false
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= thumbCodeCol {
			continue
		}
		if only != "" && row[thumbCodeCol] != only {
			continue
		}
		matched = true
		rep.Processed++
		if len(row) <= thumbCommonsCol || row[thumbCommonsCol] == "" {
			c.client.logger.WarnContext(ctx, "no commons URL", "code", row[thumbCodeCol])
			continue
		}
		thumb, err := c.Thumbnail(ctx, row[thumbCommonsCol])
		if err != nil {
			if ctx.Err() != nil {
				return rep, ctx.Err()
			}
			c.client.logger.WarnContext(ctx, "no thumbnail found", "code", row[thumbCodeCol], "error", err)
			continue
		}
		for len(row) <= col {
			row = append(row, "")
		}
		row[col] = thumb
		rows[i] = row
		rep.Found++
	}
	if only != "" && !matched {
		return rep, fmt.Errorf("%w: %s", ErrCodeNotFound, only)
	}
	return rep, nil
}
