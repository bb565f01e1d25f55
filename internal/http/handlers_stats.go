package httpx

import (
	"net/http"

	"github.com/target/aircraft-catalog/internal/service"
)

// Chart axes used when the query leaves them out.
const (
	defaultScatterX      = "mtow"
	defaultScatterY      = "cruise_speed"
	defaultTimelineParam = "mtow"
)

// StatsHandlers serves the chart endpoints.
type StatsHandlers struct {
	Svc *service.StatsService
}

// Scatter handles GET /api/stats/scatter?x=&y=. x defaults to mtow and y to
// cruise_speed.
func (h *StatsHandlers) Scatter(w http.ResponseWriter, r *http.Request) {
	x, y := queryOr(r, "x", defaultScatterX), queryOr(r, "y", defaultScatterY)
	points, err := h.Svc.Scatter(r.Context(), x, y)
	if err != nil {
		WriteServiceError(w, err, "stats_failed")
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// Timeline handles GET /api/stats/timeline?param=, defaulting to mtow.
func (h *StatsHandlers) Timeline(w http.ResponseWriter, r *http.Request) {
	points, err := h.Svc.Timeline(r.Context(), queryOr(r, "param", defaultTimelineParam))
	if err != nil {
		WriteServiceError(w, err, "stats_failed")
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// Comparison handles GET /api/stats/comparison?ids=1,2.
func (h *StatsHandlers) Comparison(w http.ResponseWriter, r *http.Request) {
	ids, err := service.ParseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		WriteServiceError(w, err, "invalid_ids")
		return
	}
	rows, err := h.Svc.Comparison(r.Context(), ids)
	if err != nil {
		WriteServiceError(w, err, "stats_failed")
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

// Parameters handles GET /api/parameters.
func (h *StatsHandlers) Parameters(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, h.Svc.Parameters())
}
