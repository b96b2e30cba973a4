// Package response provides shared response helpers for HTTP handlers.
// Bill uploads answer in plain text; JSON is kept for operational endpoints.
package response

import (
	"encoding/json"
	"net/http"
)

// Text writes a plain-text body with the given HTTP status code.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response with message.
func OK(w http.ResponseWriter, message string) {
	Text(w, http.StatusOK, message)
}

// Error writes an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	Text(w, status, message)
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
