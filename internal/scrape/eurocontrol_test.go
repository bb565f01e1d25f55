package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eurocontrolPage1 = `<html><body>
<table id="ctl00_MainContent_wsBasicSearchGridView">
<tr><th>ICAO</th><th>Aircraft</th><th>Manufacturer</th></tr>
<tr><td><a href="details.aspx?ICAO=A320">A320</a></td><td>A-320</td><td>AIRBUS</td></tr>
<tr><td><a href="details.aspx?ICAO=B738">B738</a></td><td><a href="#">737-800</a></td><td>BOEING</td></tr>
</table>
<a href="default.aspx?page=2">2</a>
</body></html>`

const eurocontrolPage2 = `<html><body>
<table id="ctl00_MainContent_wsBasicSearchGridView">
<tr><th>ICAO</th><th>Aircraft</th><th>Manufacturer</th></tr>
<tr><td><a href="details.aspx?ICAO=ZZZZ">ZZZZ</a></td><td>Broken</td><td>NONE</td></tr>
</table>
<a href="default.aspx">1</a>
</body></html>`

const eurocontrolDetails = `<html><body>
<h1 id="ctl00_MainContent_AircraftNameLabel">A320 by AIRBUS</h1>
<img id="ctl00_MainContent_AircraftImage" src="images/a320.jpg">
<div id="ctl00_MainContent_AircraftTypePanel">Type: L2J WTC: M</div>
<table class="performanceTable">
<tr class="performanceTableTitle"><td>Cruise</td></tr>
<tr class="performanceTableItem"><td>TAS</td><td>450 kts</td></tr>
<tr class="performanceTableItem"><td>Ceiling</td><td>FL390</td></tr>
</table>
<table class="performanceTable">
<tr class="performanceTableTitle"><td>Approach</td></tr>
<tr class="performanceTableItem"><td>IAS</td><td>140</td></tr>
</table>
<div id="performance"><table><tr><td>Cruise altitude</td><td>FL350</td></tr></table></div>
</body></html>`

func eurocontrolServer(t *testing.T) (*Eurocontrol, *httptest.Server) {
	t.Helper()
	c, srv, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/default.aspx":
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, eurocontrolPage2)
				return
			}
			fmt.Fprint(w, eurocontrolPage1)
		case "/details.aspx":
			switch r.URL.Query().Get("ICAO") {
			case "A320", "B738":
				fmt.Fprint(w, eurocontrolDetails)
			default:
				http.NotFound(w, r)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	return NewEurocontrol(c, srv.URL, 0), srv
}

func TestEurocontrolList(t *testing.T) {
	t.Parallel()
	e, _ := eurocontrolServer(t)

	entries, err := e.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, EurocontrolEntry{ICAO: "A320", Name: "A-320", Href: "details.aspx?ICAO=A320"}, entries[0])
	assert.Equal(t, "737-800", entries[1].Name)
	assert.Equal(t, "ZZZZ", entries[2].ICAO)
}

func TestEurocontrolListRespectsMaxPages(t *testing.T) {
	t.Parallel()
	e, srv := eurocontrolServer(t)
	e = NewEurocontrol(e.client, srv.URL, 1)

	entries, err := e.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEurocontrolDetailsMapping(t *testing.T) {
	t.Parallel()
	e, srv := eurocontrolServer(t)

	d, err := e.Details(context.Background(), "A320")
	require.NoError(t, err)
	assert.Equal(t, "AIRBUS", d.Manufacturer)
	assert.Equal(t, "A320", d.Model)
	assert.Equal(t, "L2J", d.TypeCode)
	assert.Equal(t, "M", d.WeightCategory)
	assert.Equal(t, srv.URL+"/images/a320.jpg", d.ImageURL)
	assert.Equal(t, "450 kts", d.Performance["cruise_tas"])

	in := d.AircraftInput()
	assert.Equal(t, "AIRBUS A320", in.Name)
	require.NotNil(t, in.EngineCount)
	assert.Equal(t, 2, *in.EngineCount)
	assert.Equal(t, "Jet", *in.EngineType)
	assert.InDelta(t, 833.4, *in.CruiseSpeed, 0.01)
	assert.InDelta(t, 259.3, *in.LandingSpeed, 0.01)
	assert.Nil(t, in.TakeoffSpeed)
	assert.InDelta(t, 11887.2, *in.ServiceCeiling, 0.01)
	assert.InDelta(t, 10668.0, *in.CruiseAltitude, 0.01)
}

func TestEurocontrolFetchSkipsBrokenDetails(t *testing.T) {
	t.Parallel()
	e, _ := eurocontrolServer(t)

	all, err := e.Fetch(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := e.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestDecodeTypeCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code   string
		count  int
		engine string
		ok     bool
	}{
		{"L2J", 2, "Jet", true},
		{"L4T", 4, "Turboprop", true},
		{"L1P", 1, "Piston", true},
		{"H2T", 2, "Turboprop", true},
		{"L2X", 0, "", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		count, engine, ok := decodeTypeCode(tt.code)
		assert.Equal(t, tt.ok, ok, tt.code)
		assert.Equal(t, tt.count, count, tt.code)
		assert.Equal(t, tt.engine, engine, tt.code)
	}
}

func TestParseAltitude(t *testing.T) {
	t.Parallel()
	v, ok := parseAltitude("35,000 ft")
	require.True(t, ok)
	assert.InDelta(t, 10668.0, v, 0.01)

	v, ok = parseAltitude("11000")
	require.True(t, ok)
	assert.InDelta(t, 11000.0, v, 0.01)

	_, ok = parseAltitude("n/a")
	assert.False(t, ok)
}
