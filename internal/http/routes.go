package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/target/aircraft-catalog/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Aircraft *service.AircraftService
	Stats    *service.StatsService
	Import   *service.ImportService
	// Static is served at / (index.html at the root). Optional.
	Static fs.FS

	CORSOrigin  string
	Compression *CompressionConfig // nil disables gzip
	Logger      *slog.Logger
}

// NewRouter registers the API routes and wraps them with CORS,
// compression, access logging and panic recovery, outermost first.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	if services.Aircraft != nil {
		registerAircraftRoutes(mux, &AircraftHandlers{Svc: services.Aircraft})
	}
	if services.Stats != nil {
		registerStatsRoutes(mux, &StatsHandlers{Svc: services.Stats})
	}
	if services.Import != nil {
		registerImportRoutes(mux, &ImportHandlers{Svc: services.Import})
	}
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "no route for " + r.URL.Path})
	})
	if services.Static != nil {
		mux.Handle("/", staticWithCacheHeaders(http.FileServerFS(services.Static)))
	}

	mws := []Middleware{CORS(services.CORSOrigin)}
	if services.Compression != nil {
		cfg := *services.Compression
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		mws = append(mws, Compression(cfg))
	}
	mws = append(mws, Logging(logger), Recover(logger))
	return Chain(mux, mws...)
}

func registerAircraftRoutes(mux *http.ServeMux, h *AircraftHandlers) {
	mux.HandleFunc("GET /api/aircraft", h.List)
	mux.HandleFunc("POST /api/aircraft", h.Create)
	mux.HandleFunc("GET /api/aircraft/{id}", h.Get)
	mux.HandleFunc("PUT /api/aircraft/{id}", h.Update)
	mux.HandleFunc("DELETE /api/aircraft/{id}", h.Delete)
}

func registerStatsRoutes(mux *http.ServeMux, h *StatsHandlers) {
	mux.HandleFunc("GET /api/stats/scatter", h.Scatter)
	mux.HandleFunc("GET /api/stats/timeline", h.Timeline)
	mux.HandleFunc("GET /api/stats/comparison", h.Comparison)
	mux.HandleFunc("GET /api/parameters", h.Parameters)
}

func registerImportRoutes(mux *http.ServeMux, h *ImportHandlers) {
	mux.HandleFunc("POST /api/import/sample", h.Sample)
	mux.HandleFunc("POST /api/import/birds", h.Birds)
	mux.HandleFunc("POST /api/import/online", h.Online)
	mux.HandleFunc("GET /api/import/runs", h.Runs)
}

// staticWithCacheHeaders lets browsers revalidate the front-end on every load.
func staticWithCacheHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
