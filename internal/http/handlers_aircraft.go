// Package httpx serves the aircraft catalog REST API and the static front-end.
package httpx

import (
	"net/http"

	"github.com/target/aircraft-catalog/internal/domain/model"
	"github.com/target/aircraft-catalog/internal/service"
)

const maxListLimit = 1000

// AircraftHandlers serves /api/aircraft.
type AircraftHandlers struct {
	Svc *service.AircraftService
}

// List handles GET /api/aircraft.
func (h *AircraftHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context(), parseListOptions(r))
	if err != nil {
		WriteServiceError(w, err, "list_failed")
		return
	}
	if items == nil {
		items = []model.AircraftView{}
	}
	WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/aircraft/{id}.
func (h *AircraftHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, err, "invalid_id")
		return
	}
	a, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, "get_failed")
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// Create handles POST /api/aircraft.
func (h *AircraftHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var in model.AircraftInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	a, err := h.Svc.Create(r.Context(), &in)
	if err != nil {
		WriteServiceError(w, err, "create_failed")
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}

// Update handles PUT /api/aircraft/{id}. Omitted fields keep their value.
func (h *AircraftHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, err, "invalid_id")
		return
	}
	var patch model.AircraftPatch
	if !DecodeJSON(w, r, &patch) {
		return
	}
	a, err := h.Svc.Update(r.Context(), id, patch)
	if err != nil {
		WriteServiceError(w, err, "update_failed")
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// Delete handles DELETE /api/aircraft/{id}.
func (h *AircraftHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, err, "invalid_id")
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
