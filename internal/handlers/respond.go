package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONData sends the success envelope: {"data": ..., "success": true, "statuscode": n, "message": ...}.
func JSONData(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       data,
		"success":    true,
		"statuscode": status,
		"message":    message,
	})
}

// JSONError sends the failure envelope: {"error": ..., "success": false, "statuscode": n, "message": ...}.
func JSONError(w http.ResponseWriter, status int, errMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      errMsg,
		"success":    false,
		"statuscode": status,
		"message":    message,
	})
}

// JSONValidationError sends a 400 failure envelope with per-field details under "fields".
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      "validation failed",
		"fields":     fields,
		"success":    false,
		"statuscode": http.StatusBadRequest,
		"message":    message,
	})
}
