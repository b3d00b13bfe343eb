package web

import (
	"encoding/json"
	"net/http"
)

// ErrorJSON is the body of every non-2xx API response.
type ErrorJSON struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorJSON{Error: msg})
}
