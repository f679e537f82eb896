package controllers

import (
	"encoding/json"
	"net/http"
)

// writeJSON sends a bare JSON payload for the catalog endpoints that
// return the entity directly instead of an envelope.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
