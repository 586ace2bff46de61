package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swinglens/swinglens-api/internal/application/video"
	"github.com/swinglens/swinglens-api/internal/transport/http/middleware"
)

// maxUploadBytes caps a single video upload at 256 MiB.
const maxUploadBytes = 256 << 20

// VideoHandler handles video upload and media browsing endpoints.
type VideoHandler struct {
	svc video.Service
}

func NewVideoHandler(svc video.Service) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Upload accepts a multipart form with a "file" part and optional
// "camera_angle" / "club_type" fields.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "multipart 'file' field required")
		return
	}
	defer file.Close()

	req := video.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	if v := r.FormValue("camera_angle"); v != "" {
		req.CameraAngle = &v
	}
	if v := r.FormValue("club_type"); v != "" {
		req.ClubType = &v
	}

	created, err := h.svc.Upload(r.Context(), claims.Subject, file, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *VideoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	videos, err := h.svc.ListByPlayer(r.Context(), claims.Subject)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	v, err := h.svc.Get(r.Context(), claims.Subject, claims.Role, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VideoHandler) ListFrames(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	frames, err := h.svc.ListFrames(r.Context(), claims.Subject, claims.Role, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frames)
}

func (h *VideoHandler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	comparisons, err := h.svc.ListComparisons(r.Context(), claims.Subject, claims.Role, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparisons)
}
