// Package response writes the API's JSON envelopes.
//
// The surface uses two envelope families, kept distinct on purpose:
// auth/catalog endpoints answer {"status":bool, ...} while booking/review
// endpoints answer {"success":bool, ...}.
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Status sends a {"status":true,...} envelope with the given extras.
func Status(w http.ResponseWriter, code int, message string, extra map[string]interface{}) {
	body := map[string]interface{}{"status": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	write(w, code, body)
}

// StatusError sends a {"status":false,"message":...} envelope.
func StatusError(w http.ResponseWriter, code int, message string) {
	write(w, code, map[string]interface{}{"status": false, "message": message})
}

// Success sends a {"success":true,...} envelope with the given extras.
func Success(w http.ResponseWriter, code int, extra map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	write(w, code, body)
}

// SuccessError sends a {"success":false,"message":...} envelope.
func SuccessError(w http.ResponseWriter, code int, message string) {
	write(w, code, map[string]interface{}{"success": false, "message": message})
}

// ValidationError sends a 400 with field-level error map, status-flavored.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, map[string]interface{}{
		"status":  false,
		"message": "Validation failed",
		"errors":  errs,
	})
}
