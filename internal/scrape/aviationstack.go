package scrape

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/target/aircraft-catalog/internal/core"
	"github.com/target/aircraft-catalog/internal/domain/model"
)

// DefaultAviationStackURL is the Aviation Stack API root.
const DefaultAviationStackURL = "http://api.aviationstack.com/v1"

// ErrMissingAPIKey is returned when no Aviation Stack access key is set.
var ErrMissingAPIKey = errors.New("aviation stack: AVIATION_STACK_API_KEY is not set")

// aviationFields maps record fields to JMESPath expressions over one API
// item. Alternatives cover the nested and the flat response layouts.
var aviationFields = map[string]string{
	"manufacturer": "production_line.manufacturer.name || manufacturer_name",
	"model":        "production_line.model.name || model_name",
	"year":         "first_flight_date.year || first_flight_date",
	"engine_type":  "engines.type || engines_type",
	"engine_count": "engines.count || engines_count",
	"wingspan":     "specifications.wingspan",
	"mtow_lb":      "specifications.mtow",
	"cruise_speed": "specifications.cruise_speed",
	"ceiling":      "specifications.ceiling",
}

// AviationStack reads the airplanes endpoint of the Aviation Stack API.
type AviationStack struct {
	client  *Client
	baseURL string
	apiKey  string
}

var _ core.AircraftSource = (*AviationStack)(nil)

// NewAviationStack creates a client for baseURL (DefaultAviationStackURL
// when empty).
func NewAviationStack(client *Client, baseURL, apiKey string) *AviationStack {
	if baseURL == "" {
		baseURL = DefaultAviationStackURL
	}
	return &AviationStack{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

// Source implements core.AircraftSource.
func (a *AviationStack) Source() model.ImportSource { return model.SourceAviation }

type aviationResponse struct {
	Data  []map[string]any `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch requests up to limit airplanes. Items without a manufacturer or a
// name are skipped.
func (a *AviationStack) Fetch(ctx context.Context, limit int) ([]model.AircraftInput, error) {
	if a.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if limit <= 0 {
		limit = 100
	}
	q := url.Values{}
	q.Set("access_key", a.apiKey)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", "0")

	var resp aviationResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/airplanes?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("aviation stack: %s", resp.Error.Message)
	}

	var out []model.AircraftInput
	for _, item := range resp.Data {
		in, err := mapAviationItem(item)
		if err != nil {
			a.client.logger.WarnContext(ctx, "skipping airplane", "error", err)
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func mapAviationItem(item map[string]any) (model.AircraftInput, error) {
	fields := make(map[string]any, len(aviationFields))
	for key, expr := range aviationFields {
		v, err := jmespath.Search(expr, item)
		if err != nil {
			return model.AircraftInput{}, fmt.Errorf("field %s: %w", key, err)
		}
		fields[key] = v
	}

	maker := asString(fields["manufacturer"])
	modelName := asString(fields["model"])
	name := strings.TrimSpace(maker + " " + modelName)
	if maker == "" || name == "" {
		return model.AircraftInput{}, errors.New("insufficient data: manufacturer or name missing")
	}

	in := model.AircraftInput{
		Name:         name,
		Manufacturer: optional(maker),
		Model:        optional(modelName),
		EngineType:   optional(asString(fields["engine_type"])),
	}
	if year, ok := asNumber(fields["year"]); ok {
		y := int(year)
		in.FirstFlightYear = &y
	}
	if n, ok := asNumber(fields["engine_count"]); ok {
		c := int(n)
		in.EngineCount = &c
	}
	if v, ok := asNumber(fields["wingspan"]); ok {
		in.Wingspan = &v
	}
	if lb, ok := asNumber(fields["mtow_lb"]); ok && lb > 0 {
		kg := math.Round(lb*lbToKG*1000) / 1000
		in.MTOW = &kg
	}
	if v, ok := asNumber(fields["cruise_speed"]); ok {
		in.CruiseSpeed = &v
	}
	if v, ok := asNumber(fields["ceiling"]); ok {
		in.ServiceCeiling = &v
	}
	return in, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// asNumber accepts JSON numbers and numeric strings; a date string yields
// its leading year.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		return parseNumber(t)
	default:
		return 0, false
	}
}
