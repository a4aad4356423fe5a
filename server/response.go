package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON encodes body as JSON and writes it with the given status code,
// the same jsonOK/jsonErr-by-status-code shape tunaq's response.go uses,
// scaled down from its full EndpointResult type since this daemon has no
// per-request internal-vs-external message split to track.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
