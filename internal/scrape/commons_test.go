package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

const commonsInfoPage = `<html><body>
<table class="fileinfotpl-type-information">
<tr><td id="fileinfotpl_aut">Author</td><td>John   Doe</td></tr>
<tr><th>Description</th><td>An A320 on approach</td></tr>
<tr><th>Date</th><td>2010-05-01</td></tr>
<tr><th>Source</th><td>Own work</td></tr>
</table>
<div class="licensetpl">Creative Commons Attribution-Share Alike 3.0 Unported</div>
</body></html>`

const commonsPublicDomainPage = `<html><body>
<div class="mw-parser-output"><p>This file is in the public domain because it was published before 1927.</p></div>
<table><tr><th>Photographer</th><td>Wilbur Wright</td></tr></table>
</body></html>`

const commonsStockPage = `<html><body>
<input id="stockphoto_attribution" value="Jane Roe, CC BY-SA 4.0, via Wikimedia Commons">
</body></html>`

func TestDescriptionURL(t *testing.T) {
	t.Parallel()
	c := NewCommons(NewClient(ClientOptions{}), "", "")

	tests := []struct {
		in, want string
	}{
		{
			"https://upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Airbus_A320.jpg/640px-Airbus_A320.jpg",
			"https://commons.wikimedia.org/wiki/File:Airbus_A320.jpg",
		},
		{
			"https://upload.wikimedia.org/wikipedia/commons/a/ab/Wright_Flyer_%281903%29.jpg",
			"https://commons.wikimedia.org/wiki/File:Wright_Flyer_(1903).jpg",
		},
	}
	for _, tt := range tests {
		got, err := c.DescriptionURL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := c.DescriptionURL("https://example.com/a/ab/Foo.jpg")
	require.ErrorIs(t, err, ErrNotCommonsURL)
}

func TestShortLicense(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"", "Unknown License"},
		{"This work is in the Public Domain", "Public Domain"},
		{"CC0 1.0 Universal", "CC0 (Public Domain)"},
		{"Licensed under CC BY-SA 4.0 terms", "CC BY-SA 4.0"},
		{"CC BY 2.0", "CC BY 2.0"},
		{"Creative Commons Attribution 3.0 Unported", "Creative Commons Attribution 3.0"},
		{"GNU Free Documentation License, Version 1.2", "GFDL 1.2"},
		{"GNU Free Documentation License", "GFDL"},
		{"creative commons attribution share alike", "Creative Commons Attribution-Share Alike"},
		{"Some Creative Commons license", "Creative Commons License"},
		{"All rights reserved", "See License Information"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortLicense(tt.in), tt.in)
	}
}

func TestExtractAttributionInfoTable(t *testing.T) {
	t.Parallel()
	a := ExtractAttribution(parse(t, commonsInfoPage), "https://commons.example/wiki/File:A.jpg")

	require.True(t, a.Found())
	assert.Equal(t, "John Doe", *a.Author)
	assert.Equal(t, "An A320 on approach", *a.Description)
	assert.Equal(t, "2010-05-01", *a.Date)
	assert.Equal(t, "Own work", *a.Source)
	assert.Equal(t, "Creative Commons Attribution-Share Alike 3.0 Unported", *a.License)
	assert.Equal(t, "John Doe, Creative Commons Attribution-Share Alike 3.0, via Wikimedia Commons", *a.FormattedAttribution)
}

func TestExtractAttributionPublicDomain(t *testing.T) {
	t.Parallel()
	a := ExtractAttribution(parse(t, commonsPublicDomainPage), "u")

	assert.Equal(t, "Public Domain", *a.License)
	assert.Equal(t, "Wilbur Wright", *a.Author)
	assert.Equal(t, "Wilbur Wright, Public Domain, via Wikimedia Commons", *a.FormattedAttribution)
}

func TestExtractAttributionStockPhoto(t *testing.T) {
	t.Parallel()
	a := ExtractAttribution(parse(t, commonsStockPage), "u")

	assert.Equal(t, "Jane Roe, CC BY-SA 4.0, via Wikimedia Commons", *a.FormattedAttribution)
	assert.Nil(t, a.Author)
}

func TestExtractAttributionNothingFound(t *testing.T) {
	t.Parallel()
	a := ExtractAttribution(parse(t, `<p>empty</p>`), "u")
	assert.False(t, a.Found())
	assert.Equal(t, "u", a.URL)
}

func commonsServer(t *testing.T, h http.HandlerFunc) (*Commons, *httptest.Server) {
	t.Helper()
	c, srv, _ := newTestClient(t, h)
	return NewCommons(c, srv.URL, srv.URL), srv
}

func TestCommonsAttributionReportsFetchError(t *testing.T) {
	t.Parallel()
	c, srv := commonsServer(t, http.NotFound)

	a := c.Attribution(context.Background(), srv.URL+"/wiki/File:Gone.jpg")
	assert.NotEmpty(t, a.Error)
	assert.False(t, a.Found())
}

func TestCommonsAttributionBatchKeepsOrder(t *testing.T) {
	t.Parallel()
	c, _ := commonsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wiki/File:A320.jpg" {
			fmt.Fprint(w, commonsInfoPage)
			return
		}
		http.NotFound(w, r)
	})

	items := []model.ImageItem{
		{Name: "A320", URL: "https://upload.wikimedia.org/wikipedia/commons/a/ab/A320.jpg"},
		{Name: "Elsewhere", URL: "https://example.com/x.jpg"},
		{Name: "Gone", URL: "https://upload.wikimedia.org/wikipedia/commons/c/cd/Gone.jpg"},
	}
	out := c.AttributionBatch(context.Background(), items, 2)

	require.Len(t, out, 3)
	assert.Equal(t, "A320", out[0].ItemName)
	assert.Equal(t, "John Doe", *out[0].Author)
	assert.Equal(t, items[0].URL, out[0].OriginalURL)
	assert.Equal(t, "Elsewhere", out[1].ItemName)
	assert.NotEmpty(t, out[1].Error)
	assert.NotEmpty(t, out[2].Error)
}

func TestThumbnailFromPageLink(t *testing.T) {
	t.Parallel()
	c, srv := commonsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a class="mw-thumbnail-link" href="https://upload.example/320px-Foo.jpg">320px</a>`)
	})

	got, err := c.Thumbnail(context.Background(), srv.URL+"/wiki/File:Foo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://upload.example/320px-Foo.jpg", got)
}

func TestThumbnailFromHashPath(t *testing.T) {
	t.Parallel()
	thumbPath := "/wikipedia/commons/thumb/" + hashPath("Foo.jpg") + "/Foo.jpg/320px-Foo.jpg"
	c, srv := commonsServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && r.URL.Path == thumbPath:
		case r.URL.Path == "/wiki/File:Foo.jpg":
			fmt.Fprint(w, `<p>no thumbnails here</p>`)
		default:
			http.NotFound(w, r)
		}
	})

	got, err := c.Thumbnail(context.Background(), srv.URL+"/wiki/File:Foo.jpg")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+thumbPath, got)
}

func TestThumbnailFromFileHistory(t *testing.T) {
	t.Parallel()
	c, srv := commonsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<table class="filehistory">
<tr><th>Date/Time</th></tr>
<tr><td><a href="https://upload.wikimedia.org/wikipedia/commons/a/ab/Foo.jpg">2010</a></td></tr>
</table>`)
	})

	got, err := c.Thumbnail(context.Background(), srv.URL+"/wiki/File:Foo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Foo.jpg/320px-Foo.jpg", got)
}

func TestThumbnailErrors(t *testing.T) {
	t.Parallel()
	c, srv := commonsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<p>nothing</p>`)
	})

	_, err := c.Thumbnail(context.Background(), "https://example.com/wiki/File:Foo.jpg")
	require.ErrorIs(t, err, ErrNotCommonsURL)

	_, err = c.Thumbnail(context.Background(), srv.URL+"/wiki/File:Foo.jpg")
	require.ErrorIs(t, err, ErrThumbnailNotFound)
}
