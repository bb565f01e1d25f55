package httpx

import (
	"context"
	"net/http"

	"github.com/target/aircraft-catalog/internal/domain/model"
	"github.com/target/aircraft-catalog/internal/service"
)

const defaultRunsLimit = 20

// ImportHandlers serves /api/import.
type ImportHandlers struct {
	Svc *service.ImportService
}

type datasetResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	RunID  string `json:"run_id,omitempty"`
}

type onlineResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Output  string `json:"output"`
	RunID   string `json:"run_id,omitempty"`
}

// Sample handles POST /api/import/sample.
func (h *ImportHandlers) Sample(w http.ResponseWriter, r *http.Request) {
	h.dataset(w, r, h.Svc.ImportSample)
}

// Birds handles POST /api/import/birds.
func (h *ImportHandlers) Birds(w http.ResponseWriter, r *http.Request) {
	h.dataset(w, r, h.Svc.ImportBirds)
}

func (h *ImportHandlers) dataset(w http.ResponseWriter, r *http.Request, run func(context.Context) (*model.ImportResult, error)) {
	res, err := run(r.Context())
	if err != nil {
		WriteServiceError(w, err, "import_failed")
		return
	}
	WriteJSON(w, http.StatusOK, datasetResponse{Status: "success", Count: res.Count, RunID: res.RunID})
}

// Online handles POST /api/import/online. An empty body imports from the
// predefined database with the default limit.
func (h *ImportHandlers) Online(w http.ResponseWriter, r *http.Request) {
	var req model.OnlineImportRequest
	if !DecodeOptionalJSON(w, r, &req) {
		return
	}
	res, err := h.Svc.ImportOnline(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err, "import_failed")
		return
	}
	WriteJSON(w, http.StatusOK, onlineResponse{
		Message: "Importação concluída",
		Count:   res.Count,
		Output:  res.Output,
		RunID:   res.RunID,
	})
}

// Runs handles GET /api/import/runs.
func (h *ImportHandlers) Runs(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Svc.ListRuns(r.Context(), parseIntQuery(r, "limit", defaultRunsLimit))
	if err != nil {
		WriteServiceError(w, err, "list_failed")
		return
	}
	if runs == nil {
		runs = []*model.ImportRun{}
	}
	WriteJSON(w, http.StatusOK, runs)
}
