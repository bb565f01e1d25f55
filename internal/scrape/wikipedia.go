package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/domain/model"
)

const (
	// DefaultWikipediaURL is the English Wikipedia root.
	DefaultWikipediaURL = "https://en.wikipedia.org"
	// DefaultWikipediaListPath lists commercial aircraft in wikitables.
	DefaultWikipediaListPath = "/wiki/List_of_commercial_aircraft"

	lbToKG    = 0.453592
	sqftToM2  = 0.092903
	mphToKMH  = 1.60934
	wikiThumb = "https:"
)

var (
	yearRe     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	kgRe       = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*kg`)
	lbRe       = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*lb`)
	metersRe   = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*m\b`)
	feetRe     = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*ft\b`)
	m2Re       = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(?:m2|m²)`)
	ft2Re      = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(?:ft2|ft²|sq\s*ft)`)
	kmhRe      = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*km/h`)
	knotsRe    = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(?:kn|knots)\b`)
	mphRe      = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*mph`)
	engineQtRe = regexp.MustCompile(`(\d+)\s*×`)
)

// WikipediaEntry is one aircraft link from a list page.
type WikipediaEntry struct {
	Name         string
	Manufacturer string
	URL          string
}

// Wikipedia scrapes the commercial aircraft list and each type's infobox.
type Wikipedia struct {
	client   *Client
	baseURL  string
	listPath string
	logger   *slog.Logger
}

var _ core.AircraftSource = (*Wikipedia)(nil)

// NewWikipedia creates a scraper rooted at baseURL (DefaultWikipediaURL
// when empty).
func NewWikipedia(client *Client, baseURL string) *Wikipedia {
	if baseURL == "" {
		baseURL = DefaultWikipediaURL
	}
	return &Wikipedia{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		listPath: DefaultWikipediaListPath,
		logger:   client.logger,
	}
}

// Source implements core.AircraftSource.
func (w *Wikipedia) Source() model.ImportSource { return model.SourceWikipedia }

// Fetch reads the list page and parses detail pages until limit records
// are collected.
func (w *Wikipedia) Fetch(ctx context.Context, limit int) ([]model.AircraftInput, error) {
	entries, err := w.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wikipedia: no aircraft found")
	}

	var out []model.AircraftInput
	for _, entry := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		in, err := w.Details(ctx, entry.URL)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			w.logger.WarnContext(ctx, "details unavailable", "name", entry.Name, "error", err)
			continue
		}
		if in.Manufacturer == nil && entry.Manufacturer != "" {
			in.Manufacturer = optional(entry.Manufacturer)
		}
		out = append(out, *in)
	}
	return out, nil
}

// List extracts aircraft links from every wikitable with an Aircraft or
// Model column.
func (w *Wikipedia) List(ctx context.Context) ([]WikipediaEntry, error) {
	doc, err := w.client.FetchDocument(ctx, w.baseURL+w.listPath)
	if err != nil {
		return nil, err
	}

	var out []WikipediaEntry
	for _, table := range FindAll(doc, All(Tag("table"), Class("wikitable"))) {
		rows := FindAll(table, Tag("tr"))
		if len(rows) == 0 {
			continue
		}
		headers := cellTexts(rows[0])
		nameIdx := indexOf(headers, "Aircraft")
		if nameIdx < 0 {
			nameIdx = indexOf(headers, "Model")
		}
		if nameIdx < 0 {
			continue
		}
		makerIdx := indexOf(headers, "Manufacturer")

		for _, row := range rows[1:] {
			cells := FindAll(row, Tag("td", "th"))
			if len(cells) <= nameIdx {
				continue
			}
			link := Find(cells[nameIdx], Tag("a"))
			href := Attr(link, "href")
			if link == nil || !strings.HasPrefix(href, "/wiki/") {
				continue
			}
			entry := WikipediaEntry{Name: Text(link), URL: w.baseURL + href}
			if makerIdx >= 0 && len(cells) > makerIdx {
				cell := cells[makerIdx]
				if a := Find(cell, Tag("a")); a != nil {
					entry.Manufacturer = Text(a)
				} else {
					entry.Manufacturer = Text(cell)
				}
			}
			out = append(out, entry)
		}
	}
	return out, nil
}

// Details parses an aircraft article's infobox.
func (w *Wikipedia) Details(ctx context.Context, pageURL string) (*model.AircraftInput, error) {
	doc, err := w.client.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return parseWikipediaArticle(doc)
}

func parseWikipediaArticle(doc *html.Node) (*model.AircraftInput, error) {
	title := Find(doc, All(Tag("h1"), ID("firstHeading")))
	if title == nil {
		return nil, fmt.Errorf("wikipedia: page title not found")
	}
	name := Text(title)
	in := &model.AircraftInput{Name: name}

	infobox := Find(doc, All(Tag("table"), Class("infobox")))
	details := map[string]string{}
	if infobox != nil {
		if img := Find(infobox, Tag("img")); img != nil {
			if src := Attr(img, "src"); src != "" {
				if strings.HasPrefix(src, "//") {
					src = wikiThumb + src
				}
				in.ImageURL = &src
			}
		}
		for _, row := range FindAll(infobox, Tag("tr")) {
			th, td := Find(row, Tag("th")), Find(row, Tag("td"))
			if th == nil || td == nil {
				continue
			}
			key := strings.ReplaceAll(snakeKey(Text(th)), ":", "")
			details[key] = Text(td)
		}
	}

	maker := details["manufacturer"]
	modelName := name
	if maker != "" && strings.HasPrefix(name, maker) {
		modelName = strings.TrimSpace(strings.TrimPrefix(name, maker))
	}
	in.Manufacturer = optional(maker)
	in.Model = optional(modelName)

	if m := yearRe.FindString(details["first_flight"]); m != "" {
		year, _ := strconv.Atoi(m)
		in.FirstFlightYear = &year
	}
	in.MTOW = firstConversion(firstNonEmpty(details["maximum_takeoff_weight"], details["mtow"]),
		conversion{kgRe, 1}, conversion{lbRe, lbToKG})
	in.Wingspan = firstConversion(details["wingspan"], conversion{metersRe, 1}, conversion{feetRe, feetToM})
	in.WingArea = firstConversion(details["wing_area"], conversion{m2Re, 1}, conversion{ft2Re, sqftToM2})
	in.CruiseSpeed = firstConversion(details["cruise_speed"],
		conversion{kmhRe, 1}, conversion{knotsRe, knotsToKMH}, conversion{mphRe, mphToKMH})
	in.ServiceCeiling = firstConversion(firstNonEmpty(details["service_ceiling"], details["ceiling"]),
		conversion{metersRe, 1}, conversion{feetRe, feetToM})

	if pp := details["powerplant"]; pp != "" {
		if m := engineQtRe.FindStringSubmatch(pp); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				in.EngineCount = &n
			}
		}
		if engine := engineKeyword(pp); engine != "" {
			in.EngineType = &engine
		}
	}
	return in, nil
}

type conversion struct {
	re     *regexp.Regexp
	factor float64
}

// firstConversion applies the first pattern that matches text and scales
// its number.
func firstConversion(text string, convs ...conversion) *float64 {
	if text == "" {
		return nil
	}
	for _, c := range convs {
		m := c.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		v = math.Round(v*c.factor*1000) / 1000
		return &v
	}
	return nil
}

func engineKeyword(powerplant string) string {
	lower := strings.ToLower(powerplant)
	switch {
	case strings.Contains(lower, "turbofan"):
		return "Turbofan"
	case strings.Contains(lower, "turboprop"):
		return "Turboprop"
	case strings.Contains(lower, "piston"):
		return "Piston"
	case strings.Contains(lower, "jet"):
		return "Jet"
	default:
		return ""
	}
}

func cellTexts(row *html.Node) []string {
	cells := FindAll(row, Tag("th", "td"))
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = Text(c)
	}
	return out
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
