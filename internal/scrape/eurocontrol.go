package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/domain/model"
)

// DefaultEurocontrolURL is the Aircraft Performance Database root.
const DefaultEurocontrolURL = "https://contentzone.eurocontrol.int/aircraftperformance"

const (
	knotsToKMH = 1.852
	feetToM    = 0.3048
)

var (
	eurocontrolTableIDs = []string{
		"ctl00_MainContent_wsBasicSearchGridView",
		"MainContent_wsBasicSearchGridView",
		"wsBasicSearchGridView",
	}
	typeCodeRe = regexp.MustCompile(`Type:\s+([A-Z0-9]+)`)
	wtcRe      = regexp.MustCompile(`WTC:\s+([A-Z])`)
	flightLvRe = regexp.MustCompile(`(?i)FL\s*(\d+)`)
	numberRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// EurocontrolEntry is one row of the search results table.
type EurocontrolEntry struct {
	ICAO string
	Name string
	Href string
}

// EurocontrolDetails is the parsed details page of one type.
type EurocontrolDetails struct {
	Name           string
	Manufacturer   string
	Model          string
	ImageURL       string
	TypeCode       string // e.g. L2J
	WeightCategory string // H, M or L
	// Performance maps "<table title>_<parameter>" to the raw cell text,
	// e.g. "cruise_tas" -> "450".
	Performance    map[string]string
	CruiseAltitude string
}

// Eurocontrol scrapes the EUROCONTROL Aircraft Performance Database.
type Eurocontrol struct {
	client   *Client
	baseURL  string
	maxPages int
	logger   *slog.Logger
}

var _ core.AircraftSource = (*Eurocontrol)(nil)

// NewEurocontrol creates a scraper rooted at baseURL (DefaultEurocontrolURL
// when empty). maxPages <= 0 follows pagination until it ends.
func NewEurocontrol(client *Client, baseURL string, maxPages int) *Eurocontrol {
	if baseURL == "" {
		baseURL = DefaultEurocontrolURL
	}
	return &Eurocontrol{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxPages: maxPages,
		logger:   client.logger,
	}
}

// Source implements core.AircraftSource.
func (e *Eurocontrol) Source() model.ImportSource { return model.SourceEurocontrol }

// Fetch lists aircraft and loads details until limit records are mapped.
// Types whose details cannot be loaded are skipped.
func (e *Eurocontrol) Fetch(ctx context.Context, limit int) ([]model.AircraftInput, error) {
	entries, err := e.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("eurocontrol: no aircraft found")
	}

	var out []model.AircraftInput
	for _, entry := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		d, err := e.Details(ctx, entry.ICAO)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			e.logger.WarnContext(ctx, "details unavailable", "icao", entry.ICAO, "error", err)
			continue
		}
		out = append(out, d.AircraftInput())
	}
	return out, nil
}

// List walks the search results pages.
func (e *Eurocontrol) List(ctx context.Context) ([]EurocontrolEntry, error) {
	var all []EurocontrolEntry
	pageURL := e.baseURL + "/default.aspx"
	for page := 1; e.maxPages <= 0 || page <= e.maxPages; page++ {
		doc, err := e.client.FetchDocument(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			e.logger.WarnContext(ctx, "stopping pagination", "page", page, "error", err)
			break
		}
		table := findResultsTable(doc)
		if table == nil {
			if page == 1 {
				return nil, fmt.Errorf("eurocontrol: results table not found")
			}
			break
		}
		rows := parseResultRows(table)
		if len(rows) == 0 {
			break
		}
		all = append(all, rows...)

		next := e.nextPageURL(doc, page+1)
		if next == "" {
			break
		}
		pageURL = next
	}
	return all, nil
}

func findResultsTable(doc *html.Node) *html.Node {
	for _, id := range eurocontrolTableIDs {
		if t := Find(doc, All(Tag("table"), ID(id))); t != nil {
			return t
		}
	}
	for _, t := range FindAll(doc, Tag("table")) {
		headers := FindAll(t, Tag("th"))
		if len(headers) < 3 {
			continue
		}
		for _, h := range headers {
			txt := Text(h)
			if strings.Contains(txt, "ICAO") || strings.Contains(txt, "Aircraft") {
				return t
			}
		}
	}
	return nil
}

func parseResultRows(table *html.Node) []EurocontrolEntry {
	rows := FindAll(table, Tag("tr"))
	if len(rows) > 0 {
		rows = rows[1:]
	}
	var out []EurocontrolEntry
	for _, row := range rows {
		cells := FindAll(row, Tag("td"))
		if len(cells) < 2 {
			continue
		}
		link := Find(cells[0], Tag("a"))
		if link == nil || Attr(link, "href") == "" {
			continue
		}
		name := Text(cells[1])
		if a := Find(cells[1], Tag("a")); a != nil {
			name = Text(a)
		}
		out = append(out, EurocontrolEntry{ICAO: Text(link), Name: name, Href: Attr(link, "href")})
	}
	return out
}

// nextPageURL finds the pager link labelled with page. ASP.NET postback
// links are rewritten into the query form the site also accepts.
func (e *Eurocontrol) nextPageURL(doc *html.Node, page int) string {
	label := strconv.Itoa(page)
	link := Find(doc, All(Tag("a"), TextMatches(func(s string) bool { return s == label })))
	if link == nil {
		return ""
	}
	href := Attr(link, "href")
	if href == "" || strings.HasPrefix(href, "javascript:") {
		return fmt.Sprintf("%s/default.aspx?__doPostBack('ctl00$MainContent$wsBasicSearchGridView','Page$%d')", e.baseURL, page)
	}
	return e.resolve(href)
}

func (e *Eurocontrol) resolve(ref string) string {
	base, err := url.Parse(e.baseURL + "/")
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

// Details loads and parses the details page of an ICAO type designator.
func (e *Eurocontrol) Details(ctx context.Context, icao string) (*EurocontrolDetails, error) {
	doc, err := e.client.FetchDocument(ctx, e.baseURL+"/details.aspx?ICAO="+url.QueryEscape(icao))
	if err != nil {
		return nil, err
	}
	d := parseEurocontrolDetails(doc)
	if d == nil {
		return nil, fmt.Errorf("eurocontrol: name of %s not found", icao)
	}
	if d.ImageURL != "" {
		d.ImageURL = e.resolve(d.ImageURL)
	}
	return d, nil
}

func parseEurocontrolDetails(doc *html.Node) *EurocontrolDetails {
	title := Find(doc, All(Tag("h1"), ID("ctl00_MainContent_AircraftNameLabel")))
	if title == nil {
		return nil
	}
	d := &EurocontrolDetails{Name: Text(title), Performance: map[string]string{}}

	// Labels read "Model by Manufacturer".
	modelName, maker, _ := strings.Cut(d.Name, " by ")
	d.Model, d.Manufacturer = strings.TrimSpace(modelName), strings.TrimSpace(maker)

	if img := Find(doc, All(Tag("img"), ID("ctl00_MainContent_AircraftImage"))); img != nil {
		d.ImageURL = Attr(img, "src")
	}
	if panel := Find(doc, All(Tag("div"), ID("ctl00_MainContent_AircraftTypePanel"))); panel != nil {
		txt := Text(panel)
		if m := typeCodeRe.FindStringSubmatch(txt); m != nil {
			d.TypeCode = m[1]
		}
		if m := wtcRe.FindStringSubmatch(txt); m != nil {
			d.WeightCategory = m[1]
		}
	}

	for _, table := range FindAll(doc, All(Tag("table"), Class("performanceTable"))) {
		titleRow := Find(table, All(Tag("tr"), Class("performanceTableTitle")))
		if titleRow == nil {
			continue
		}
		prefix := snakeKey(Text(titleRow))
		for _, row := range FindAll(table, All(Tag("tr"), Class("performanceTableItem"))) {
			cells := FindAll(row, Tag("td"))
			if len(cells) < 2 {
				continue
			}
			d.Performance[prefix+"_"+snakeKey(Text(cells[0]))] = Text(cells[1])
		}
	}

	if perf := Find(doc, All(Tag("div"), ID("performance"))); perf != nil {
		label := Find(perf, All(Tag("td"), TextMatches(func(s string) bool {
			return strings.Contains(strings.ToLower(s), "cruise altitude")
		})))
		if label != nil {
			d.CruiseAltitude = Text(FindNext(label, Tag("td")))
		}
	}
	return d
}

// AircraftInput maps the details onto a catalog record. Speeds are
// published in knots and ceilings as flight levels.
func (d *EurocontrolDetails) AircraftInput() model.AircraftInput {
	in := model.AircraftInput{
		Name:         strings.TrimSpace(d.Manufacturer + " " + d.Model),
		Manufacturer: optional(d.Manufacturer),
		Model:        optional(d.Model),
		ImageURL:     optional(d.ImageURL),
	}
	if in.Name == "" {
		in.Name = d.Name
	}
	if count, engine, ok := decodeTypeCode(d.TypeCode); ok {
		in.EngineCount = &count
		in.EngineType = &engine
	}

	knots := func(key string) *float64 {
		if v, ok := parseNumber(d.Performance[key]); ok {
			kmh := round1(v * knotsToKMH)
			return &kmh
		}
		return nil
	}
	in.CruiseSpeed = knots("cruise_tas")
	in.LandingSpeed = knots("approach_ias")
	in.TakeoffSpeed = knots("initial_climb_ias")

	if m := flightLvRe.FindStringSubmatch(d.Performance["cruise_ceiling"]); m != nil {
		fl, _ := strconv.ParseFloat(m[1], 64)
		ceiling := round1(fl * 100 * feetToM)
		in.ServiceCeiling = &ceiling
	}
	if alt, ok := parseAltitude(d.CruiseAltitude); ok {
		in.CruiseAltitude = &alt
	}
	return in
}

// decodeTypeCode reads an ICAO aircraft description such as L2J: landplane,
// two engines, jet.
func decodeTypeCode(code string) (int, string, bool) {
	if len(code) != 3 {
		return 0, "", false
	}
	count, err := strconv.Atoi(code[1:2])
	if err != nil {
		return 0, "", false
	}
	var engine string
	switch code[2] {
	case 'J':
		engine = "Jet"
	case 'T':
		engine = "Turboprop"
	case 'P':
		engine = "Piston"
	case 'E':
		engine = "Electric"
	default:
		return 0, "", false
	}
	return count, engine, true
}

// parseAltitude converts "FL350", "35000 ft" or a bare meter value.
func parseAltitude(s string) (float64, bool) {
	if m := flightLvRe.FindStringSubmatch(s); m != nil {
		fl, _ := strconv.ParseFloat(m[1], 64)
		return round1(fl * 100 * feetToM), true
	}
	v, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	if strings.Contains(strings.ToLower(s), "ft") {
		return round1(v * feetToM), true
	}
	return v, true
}

func parseNumber(s string) (float64, bool) {
	m := numberRe.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	return v, err == nil
}

func snakeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(CollapseSpace(s)), " ", "_")
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
