package scrape

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

func TestImageItems(t *testing.T) {
	t.Parallel()
	doc := map[string]any{
		"aircraft": []any{
			map[string]any{"name": "A320", "image_url": "https://upload.wikimedia.org/a.jpg"},
			map[string]any{"name": "No image"},
			map[string]any{"image_url": "https://upload.wikimedia.org/b.jpg"},
			map[string]any{"name": "Blank", "image_url": ""},
		},
	}
	items, err := ImageItems(doc, "")
	require.NoError(t, err)
	assert.Equal(t, []model.ImageItem{
		{Name: "A320", URL: "https://upload.wikimedia.org/a.jpg"},
		{Name: "Unknown", URL: "https://upload.wikimedia.org/b.jpg"},
	}, items)

	birds := map[string]any{"birds": []any{map[string]any{"name": "Albatroz", "photo": "https://x/y.jpg"}}}
	items, err = ImageItems(birds, "photo")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Albatroz", items[0].Name)

	items, err = ImageItems(map[string]any{}, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func thumbServer(t *testing.T) *Commons {
	t.Helper()
	c, _ := commonsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wiki/File:A320.jpg" {
			fmt.Fprint(w, `<a class="mw-thumbnail-link" href="https://upload.example/320px-A320.jpg">320px</a>`)
			return
		}
		http.NotFound(w, r)
	})
	return c
}

func TestThumbnailTable(t *testing.T) {
	t.Parallel()
	c := thumbServer(t)
	base := c.baseURL + "/wiki/File:"
	rows := [][]string{
		{"icao", "name", "image", "commons_url"},
		{"A320", "Airbus A320", "", base + "A320.jpg"},
		{"B738", "Boeing 737-800", "", base + "Missing.jpg"},
		{"C172", "Cessna 172"},
	}

	rep, err := c.ThumbnailTable(context.Background(), rows, "")
	require.NoError(t, err)
	assert.Equal(t, ThumbnailReport{Processed: 3, Found: 1}, rep)
	assert.Equal(t, "thumbnail_url", rows[0][4])
	assert.Equal(t, "https://upload.example/320px-A320.jpg", rows[1][4])
	assert.Len(t, rows[2], 4)
}

func TestThumbnailTableSingleCode(t *testing.T) {
	t.Parallel()
	c := thumbServer(t)
	rows := [][]string{
		{"icao", "name", "image", "commons_url", "thumbnail_url"},
		{"B738", "Boeing 737-800", "", c.baseURL + "/wiki/File:Missing.jpg", "old"},
		{"A320", "Airbus A320", "", c.baseURL + "/wiki/File:A320.jpg", ""},
	}

	rep, err := c.ThumbnailTable(context.Background(), rows, "A320")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Processed)
	assert.Equal(t, "old", rows[1][4])
	assert.Equal(t, "https://upload.example/320px-A320.jpg", rows[2][4])

	_, err = c.ThumbnailTable(context.Background(), rows, "ZZZZ")
	require.ErrorIs(t, err, ErrCodeNotFound)
}
