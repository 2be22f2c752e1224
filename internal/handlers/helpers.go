package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ApiResponse is the envelope every API endpoint returns.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data})
}

// WriteError writes an error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, ApiResponse{Success: false, Error: message})
}

// QueryInt extracts an integer query parameter, falling back to def
// when missing or malformed.
func QueryInt(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return def
}
