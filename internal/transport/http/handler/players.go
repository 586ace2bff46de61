package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swinglens/swinglens-api/internal/application/player"
	"github.com/swinglens/swinglens-api/internal/domain"
	"github.com/swinglens/swinglens-api/internal/pkg/validate"
	"github.com/swinglens/swinglens-api/internal/transport/http/middleware"
)

// PlayerHandler handles player profile and roster endpoints.
type PlayerHandler struct {
	svc player.Service
}

func NewPlayerHandler(svc player.Service) *PlayerHandler {
	return &PlayerHandler{svc: svc}
}

func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	p, err := h.svc.Get(r.Context(), claims.Subject)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PlayerHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req domain.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p, err := h.svc.Update(r.Context(), claims.Subject, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PlayerHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	players, err := h.svc.ListRoster(r.Context(), claims.Subject)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayerHandler) GetForCoach(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	p, err := h.svc.GetForCoach(r.Context(), claims.Subject, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
