package scrape

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wikipediaList = `<html><body>
<table class="wikitable">
<tr><th>Aircraft</th><th>Manufacturer</th><th>Introduced</th></tr>
<tr><td><a href="/wiki/Boeing_737">Boeing 737</a></td><td><a href="/wiki/Boeing">Boeing</a></td><td>1968</td></tr>
<tr><td><a href="https://example.com/external">External</a></td><td>Nobody</td><td>2000</td></tr>
<tr><td><a href="/wiki/Missing_plane">Missing plane</a></td><td>Ghost</td><td>2001</td></tr>
</table>
<table class="wikitable"><tr><th>Year</th></tr><tr><td>1999</td></tr></table>
</body></html>`

const wikipediaArticle = `<html><body>
<h1 id="firstHeading">Boeing 737</h1>
<table class="infobox">
<tr><td><img src="//upload.wikimedia.org/wikipedia/commons/a/ab/B737.jpg"></td></tr>
<tr><th>Manufacturer</th><td>Boeing</td></tr>
<tr><th>First flight</th><td>April 9, 1967</td></tr>
<tr><th>Maximum takeoff weight</th><td>79,010 kg (174,200 lb)</td></tr>
<tr><th>Wingspan</th><td>35.9 m (117 ft 10 in)</td></tr>
<tr><th>Wing area</th><td>124.6 m2</td></tr>
<tr><th>Cruise speed</th><td>453 kn (839 km/h)</td></tr>
<tr><th>Service ceiling:</th><td>41,000 ft</td></tr>
<tr><th>Powerplant</th><td>2 × CFM56 turbofan</td></tr>
</table>
</body></html>`

func TestParseWikipediaArticle(t *testing.T) {
	t.Parallel()
	in, err := parseWikipediaArticle(parse(t, wikipediaArticle))
	require.NoError(t, err)

	assert.Equal(t, "Boeing 737", in.Name)
	assert.Equal(t, "Boeing", *in.Manufacturer)
	assert.Equal(t, "737", *in.Model)
	assert.Equal(t, "https://upload.wikimedia.org/wikipedia/commons/a/ab/B737.jpg", *in.ImageURL)
	assert.Equal(t, 1967, *in.FirstFlightYear)
	assert.InDelta(t, 79010.0, *in.MTOW, 0.001)
	assert.InDelta(t, 35.9, *in.Wingspan, 0.001)
	assert.InDelta(t, 124.6, *in.WingArea, 0.001)
	assert.InDelta(t, 839.0, *in.CruiseSpeed, 0.001)
	assert.InDelta(t, 12496.8, *in.ServiceCeiling, 0.001)
	assert.Equal(t, 2, *in.EngineCount)
	assert.Equal(t, "Turbofan", *in.EngineType)
}

func TestParseWikipediaArticleWithoutTitle(t *testing.T) {
	t.Parallel()
	_, err := parseWikipediaArticle(parse(t, `<p>nothing</p>`))
	require.Error(t, err)
}

func TestFirstConversionFallsBack(t *testing.T) {
	t.Parallel()
	v := firstConversion("100 lb", conversion{kgRe, 1}, conversion{lbRe, lbToKG})
	require.NotNil(t, v)
	assert.InDelta(t, 45.359, *v, 0.0001)
	assert.Nil(t, firstConversion("", conversion{kgRe, 1}))
	assert.Nil(t, firstConversion("unknown", conversion{kgRe, 1}))
}

func TestWikipediaFetch(t *testing.T) {
	t.Parallel()
	c, srv, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DefaultWikipediaListPath:
			fmt.Fprint(w, wikipediaList)
		case "/wiki/Boeing_737":
			fmt.Fprint(w, wikipediaArticle)
		default:
			http.NotFound(w, r)
		}
	}))
	w := NewWikipedia(c, srv.URL)

	entries, err := w.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, WikipediaEntry{Name: "Boeing 737", Manufacturer: "Boeing", URL: srv.URL + "/wiki/Boeing_737"}, entries[0])

	out, err := w.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Boeing 737", out[0].Name)
}
