package handler

import (
	"encoding/json"
	"net/http"

	"github.com/swinglens/swinglens-api/internal/application/auth"
	"github.com/swinglens/swinglens-api/internal/pkg/validate"
)

// AuthHandler handles the public authentication endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.SendPlayerOTP(r.Context(), req.Phone); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OTPSendEnvelope{Success: true})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	token, player, err := h.svc.VerifyPlayerOTP(r.Context(), req.Phone, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlayerAuthEnvelope{Token: token, Player: player})
}

func (h *AuthHandler) CoachLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.CoachLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	token, coach, err := h.svc.CoachLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CoachAuthEnvelope{Token: token, Coach: coach})
}
