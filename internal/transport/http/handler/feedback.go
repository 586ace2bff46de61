package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swinglens/swinglens-api/internal/application/feedback"
	"github.com/swinglens/swinglens-api/internal/domain"
	"github.com/swinglens/swinglens-api/internal/pkg/validate"
	"github.com/swinglens/swinglens-api/internal/transport/http/middleware"
)

// FeedbackHandler handles coach feedback and the player feedback inbox.
type FeedbackHandler struct {
	svc feedback.Service
}

func NewFeedbackHandler(svc feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req domain.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	f, err := h.svc.Create(r.Context(), claims.Subject, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FeedbackHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	entries, err := h.svc.ListForPlayer(r.Context(), claims.Subject)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *FeedbackHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	f, err := h.svc.MarkAsRead(r.Context(), claims.Subject, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
