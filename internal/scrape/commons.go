package scrape

import (
	"context"
	"crypto/md5" //nolint:gosec // Commons addresses files by the MD5 of their name
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

const (
	// DefaultCommonsURL is the Wikimedia Commons root.
	DefaultCommonsURL = "https://commons.wikimedia.org"
	// DefaultUploadURL serves Commons media files.
	DefaultUploadURL = "https://upload.wikimedia.org"

	commonsDomain  = "wikimedia.org"
	thumbWidthPath = "/320px-"
)

// ErrNotCommonsURL is returned for URLs outside wikimedia.org.
var ErrNotCommonsURL = errors.New("not a Wikimedia Commons URL")

// ErrThumbnailNotFound is returned when no strategy yields a thumbnail.
var ErrThumbnailNotFound = errors.New("thumbnail not found")

var (
	hashPathRe   = regexp.MustCompile(`^[0-9a-f]/[0-9a-f]{2}/`)
	gfdlRe       = regexp.MustCompile(`Version (\d+\.\d+)`)
	ccShortRe    = regexp.MustCompile(`CC BY(-SA)? \d\.\d`)
	ccLongRe     = regexp.MustCompile(`Creative Commons Attribution(-Share Alike)? \d\.\d`)
	gfdlShortRe  = regexp.MustCompile(`GNU Free Documentation License(,\s*[Vv]ersion\s*(\d+\.\d+))?`)
	authorHeadRe = regexp.MustCompile(`(?i)Author|Creator|Photographer`)
	licenseRe    = regexp.MustCompile(`(?i)License|Copyright`)
	descRe       = regexp.MustCompile(`(?i)Description`)
	dateRe       = regexp.MustCompile(`(?i)Date`)
	sourceRe     = regexp.MustCompile(`(?i)Source`)

	publicDomainMarkers = []string{
		"This file is in the public domain",
		"This work is in the public domain",
		"Public domain",
		"PD-old",
		"Creative Commons Public Domain Mark",
		"CC0",
		"CC-Zero",
	}
)

// Commons reads attribution and thumbnail data from Wikimedia Commons file
// description pages.
type Commons struct {
	client    *Client
	baseURL   string
	uploadURL string
}

// NewCommons creates a Commons scraper. Empty URLs select the public hosts.
func NewCommons(client *Client, baseURL, uploadURL string) *Commons {
	if baseURL == "" {
		baseURL = DefaultCommonsURL
	}
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	return &Commons{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadURL: strings.TrimRight(uploadURL, "/"),
	}
}

// DescriptionURL converts an upload.wikimedia.org media or thumbnail URL
// into its File: description page.
func (c *Commons) DescriptionURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotCommonsURL, err)
	}
	host := u.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil || etld != commonsDomain {
		return "", fmt.Errorf("%w: %s", ErrNotCommonsURL, host)
	}

	parts := strings.Split(u.EscapedPath(), "/")
	var filename string
	if i := indexOf(parts, "thumb"); i >= 0 {
		// .../thumb/a/ab/File.jpg/640px-File.jpg
		rest := parts[i+1:]
		if len(rest) > 0 {
			rest = rest[:len(rest)-1]
		}
		filename = strings.Join(rest, "/")
	} else {
		filename = parts[len(parts)-1]
	}
	if hashPathRe.MatchString(filename) {
		filename = strings.SplitN(filename, "/", 3)[2]
	}
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}
	if filename == "" {
		return "", fmt.Errorf("%w: no file name in %s", ErrNotCommonsURL, imageURL)
	}
	return c.baseURL + "/wiki/File:" + filename, nil
}

// Attribution loads a description page and extracts author and license
// metadata. Fetch failures are reported in the Error field.
func (c *Commons) Attribution(ctx context.Context, descriptionURL string) model.Attribution {
	doc, err := c.client.FetchDocument(ctx, descriptionURL)
	if err != nil {
		return model.Attribution{URL: descriptionURL, Error: err.Error()}
	}
	return ExtractAttribution(doc, descriptionURL)
}

// attribution accumulates fields while the strategies run.
type attribution struct {
	author, license, description, date, source, formatted string
}

func (a *attribution) empty() bool {
	return a.author == "" && a.license == "" && a.description == "" &&
		a.date == "" && a.source == "" && a.formatted == ""
}

// ExtractAttribution runs the fallback strategies over a parsed description
// page, first match per field wins.
func ExtractAttribution(doc *html.Node, pageURL string) model.Attribution {
	var a attribution

	if in := Find(doc, All(Tag("input"), ID("stockphoto_attribution"))); in != nil {
		a.formatted = Attr(in, "value")
	}

	infoTable(doc, &a)

	if a.author == "" {
		if div := Find(doc, All(Tag("div"), Class("commons-file-information-credit"))); div != nil {
			a.author = Text(div)
		}
	}

	structuredData(doc, &a)

	if a.license == "" {
		a.license = licenseMarkers(doc)
	}

	if a.empty() {
		parserOutput(doc, &a)
	}
	if a.empty() {
		genericInfoRows(doc, &a)
	}
	if a.empty() {
		imagePageSpans(doc, &a)
	}
	if a.author == "" {
		directAuthor(doc, &a)
	}

	out := model.Attribution{
		URL:         pageURL,
		Author:      cleaned(a.author),
		License:     cleaned(a.license),
		Description: cleaned(a.description),
		Date:        cleaned(a.date),
		Source:      cleaned(a.source),
	}
	out.FormattedAttribution = cleaned(a.formatted)
	if out.FormattedAttribution == nil && out.Author != nil {
		short := ShortLicense("")
		if out.License != nil {
			short = ShortLicense(*out.License)
		}
		f := fmt.Sprintf("%s, %s, via Wikimedia Commons", *out.Author, short)
		out.FormattedAttribution = &f
	}
	return out
}

func nextCellText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return Text(FindNext(n, Tag("td")))
}

// infoTable reads the fileinfotpl-type-information summary table.
func infoTable(doc *html.Node, a *attribution) {
	info := Find(doc, All(Tag("table"), Class("fileinfotpl-type-information")))
	if info == nil {
		return
	}
	if td := Find(doc, All(Tag("td"), ID("fileinfotpl_aut"))); td != nil {
		a.author = nextCellText(td)
	}
	header := func(re *regexp.Regexp) *html.Node {
		return Find(info, All(Tag("th"), TextMatches(re.MatchString)))
	}
	if a.author == "" {
		a.author = nextCellText(header(authorHeadRe))
	}
	a.license = nextCellText(header(licenseRe))
	a.description = nextCellText(header(descRe))
	a.date = nextCellText(header(dateRe))
	a.source = nextCellText(header(sourceRe))
}

// structuredData reads the "Structured data" tab when the page has one.
func structuredData(doc *html.Node, a *attribution) {
	heading := Find(doc, All(Tag("h2"), TextMatches(func(s string) bool {
		return strings.Contains(s, "Structured data")
	})))
	if heading == nil {
		return
	}
	after := func(marker string) string {
		label := FindString(doc, func(s string) bool { return strings.Contains(strings.ToLower(s), marker) })
		if label == nil {
			return ""
		}
		return Text(FindNext(label, Tag("a", "div", "span")))
	}
	if a.license == "" {
		a.license = after("copyright license")
	}
	if a.author == "" {
		a.author = after("creator")
	}
}

func licenseMarkers(doc *html.Node) string {
	for _, marker := range publicDomainMarkers {
		if FindString(doc, func(s string) bool { return strings.Contains(s, marker) }) != nil {
			return "Public Domain"
		}
	}
	if gfdl := FindString(doc, func(s string) bool { return strings.Contains(s, "GNU Free Documentation License") }); gfdl != nil {
		if m := gfdlRe.FindStringSubmatch(gfdl.Data); m != nil {
			return "GNU Free Documentation License, version " + m[1]
		}
		return "GNU Free Documentation License"
	}
	for _, tpl := range FindAll(doc, All(Tag("div"), Class("licensetpl"))) {
		if txt := Text(tpl); txt != "" {
			return txt
		}
	}
	return ""
}

func mentionsAuthor(lower string) bool {
	return strings.Contains(lower, "author") || strings.Contains(lower, "creator") || strings.Contains(lower, "photographer")
}

func parserOutput(doc *html.Node, a *attribution) {
	body := Find(doc, All(Tag("div"), Class("mw-parser-output")))
	if body == nil {
		return
	}
	paragraphs := FindAll(body, Tag("p"))
	for _, p := range paragraphs {
		txt := Text(p)
		if mentionsAuthor(strings.ToLower(txt)) {
			a.author = txt
			break
		}
	}
	if a.license != "" {
		return
	}
	for _, p := range paragraphs {
		lower := strings.ToLower(Text(p))
		if strings.Contains(lower, "public domain") || strings.Contains(lower, "pd-old") || strings.Contains(lower, "cc0") {
			a.license = "Public Domain"
			return
		}
	}
}

func genericInfoRows(doc *html.Node, a *attribution) {
	for _, table := range FindAll(doc, All(Tag("table"), ClassContains("fileinfotpl"))) {
		for _, row := range FindAll(table, Tag("tr")) {
			th, td := Find(row, Tag("th")), Find(row, Tag("td"))
			if th == nil || td == nil {
				continue
			}
			head, value := strings.ToLower(Text(th)), Text(td)
			switch {
			case mentionsAuthor(head):
				a.author = value
			case strings.Contains(head, "license") || strings.Contains(head, "copyright"):
				a.license = value
			case strings.Contains(head, "description"):
				a.description = value
			case strings.Contains(head, "date"):
				a.date = value
			case strings.Contains(head, "source"):
				a.source = value
			}
		}
	}
}

func imagePageSpans(doc *html.Node, a *attribution) {
	content := Find(doc, All(Tag("div"), ID("mw-imagepage-content")))
	if content == nil {
		return
	}
	for _, span := range FindAll(content, Tag("span")) {
		lower := strings.ToLower(Text(span))
		if !strings.Contains(lower, "author") && !strings.Contains(lower, "creator") {
			continue
		}
		if sib := span.NextSibling; sib != nil {
			a.author = Text(sib)
		}
	}
}

func directAuthor(doc *html.Node, a *attribution) {
	if td := Find(doc, All(Tag("td"), ID("fileinfotpl_aut"))); td != nil {
		a.author = nextCellText(td)
	}
	if th := Find(doc, All(Tag("th"), TextMatches(func(s string) bool { return s == "Photographer" }))); th != nil {
		if v := nextCellText(th); v != "" {
			a.author = v
		}
	}
}

func cleaned(s string) *string {
	s = CollapseSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ShortLicense condenses a license statement into the short form used in
// attributions.
func ShortLicense(text string) string {
	if text == "" {
		return "Unknown License"
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "public domain"):
		return "Public Domain"
	case strings.Contains(lower, "cc0") || strings.Contains(lower, "cc-zero"):
		return "CC0 (Public Domain)"
	}
	if m := ccShortRe.FindString(text); m != "" {
		return m
	}
	if m := ccLongRe.FindString(text); m != "" {
		return m
	}
	if m := gfdlShortRe.FindStringSubmatch(text); m != nil {
		if m[2] != "" {
			return "GFDL " + m[2]
		}
		return "GFDL"
	}
	switch {
	case strings.Contains(lower, "creative commons"):
		if strings.Contains(lower, "attribution") && strings.Contains(lower, "share alike") {
			return "Creative Commons Attribution-Share Alike"
		}
		if strings.Contains(lower, "attribution") {
			return "Creative Commons Attribution"
		}
		return "Creative Commons License"
	case strings.Contains(lower, "gnu") && strings.Contains(lower, "free documentation"):
		return "GNU Free Documentation License"
	}
	return "See License Information"
}

// Thumbnail finds the smallest published thumbnail for a File: page. It
// tries the page's thumbnail links, then the 320px rendition at the
// MD5-derived path, then the file history.
func (c *Commons) Thumbnail(ctx context.Context, commonsURL string) (string, error) {
	prefix := c.baseURL + "/wiki/File:"
	if !strings.HasPrefix(commonsURL, prefix) {
		return "", fmt.Errorf("%w: %s", ErrNotCommonsURL, commonsURL)
	}
	doc, err := c.client.FetchDocument(ctx, commonsURL)
	if err != nil {
		return "", err
	}

	if link := Find(doc, All(Tag("a"), Class("mw-thumbnail-link"))); link != nil {
		if href := Attr(link, "href"); href != "" {
			return href, nil
		}
	}

	filename := strings.TrimPrefix(commonsURL, prefix)
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}
	candidate := c.uploadURL + "/wikipedia/commons/thumb/" + hashPath(filename) + "/" + filename + thumbWidthPath + filename
	if ok, err := c.client.Exists(ctx, candidate); err == nil && ok {
		return candidate, nil
	} else if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if history := Find(doc, All(Tag("table"), Class("filehistory"))); history != nil {
		rows := FindAll(history, Tag("tr"))
		if len(rows) > 1 {
			if link := Find(rows[1], Tag("a")); link != nil {
				if href := Attr(link, "href"); href != "" {
					return strings.Replace(href, "/commons/", "/commons/thumb/", 1) + thumbWidthPath + filename, nil
				}
			}
		}
	}
	return "", ErrThumbnailNotFound
}

// hashPath returns the "a/ab" directory Commons stores filename under.
func hashPath(filename string) string {
	sum := md5.Sum([]byte(strings.ReplaceAll(filename, " ", "_"))) //nolint:gosec // path derivation only
	h := hex.EncodeToString(sum[:])
	return h[:1] + "/" + h[:2]
}

// AttributionBatch resolves the attribution of every item using up to
// workers concurrent requests. Results keep the input order; items outside
// Commons carry an error.
func (c *Commons) AttributionBatch(ctx context.Context, items []model.ImageItem, workers int) []model.Attribution {
	out := make([]model.Attribution, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, item := range items {
		g.Go(func() error {
			descURL, err := c.DescriptionURL(item.URL)
			var attr model.Attribution
			if err != nil {
				attr = model.Attribution{Error: err.Error()}
			} else {
				attr = c.Attribution(gctx, descURL)
			}
			attr.ItemName = item.Name
			attr.OriginalURL = item.URL
			out[i] = attr
			return nil
		})
	}
	_ = g.Wait()
	return out
}
