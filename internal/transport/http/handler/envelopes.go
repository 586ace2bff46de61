package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swinglens/swinglens-api/internal/domain"
)

// ErrorEnvelope is the error response body: {"detail": "..."}.
type ErrorEnvelope struct {
	Detail string `json:"detail"`
}

// OTPSendEnvelope acknowledges an OTP send.
type OTPSendEnvelope struct {
	Success bool `json:"success"`
}

// PlayerAuthEnvelope wraps a successful player OTP verification.
type PlayerAuthEnvelope struct {
	Token  string         `json:"token"`
	Player *domain.Player `json:"player"`
}

// CoachAuthEnvelope wraps a successful coach login.
type CoachAuthEnvelope struct {
	Token string        `json:"token"`
	Coach *domain.Coach `json:"coach"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorEnvelope{Detail: detail})
}

// httpError maps a domain error kind to its HTTP status. The detail string
// is the error's own message.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrStorage):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
