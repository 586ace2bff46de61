package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the {"detail": ...} error body with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
