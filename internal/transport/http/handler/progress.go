package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swinglens/swinglens-api/internal/application/progress"
	"github.com/swinglens/swinglens-api/internal/domain"
	"github.com/swinglens/swinglens-api/internal/pkg/validate"
	"github.com/swinglens/swinglens-api/internal/transport/http/middleware"
)

// ProgressHandler handles progress snapshot endpoints.
type ProgressHandler struct {
	svc progress.Service
}

func NewProgressHandler(svc progress.Service) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	snapshots, err := h.svc.ListForPlayer(r.Context(), claims.Subject)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *ProgressHandler) ListForCoach(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	snapshots, err := h.svc.ListForCoach(r.Context(), claims.Subject, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req domain.CreateProgressSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	snapshot, err := h.svc.Create(r.Context(), claims.Subject, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}
