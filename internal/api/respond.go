package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the uniform response shape. Clients branch on Success; Data is
// only present on list endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// writeServerError logs the underlying error and returns a generic message;
// raw storage errors never reach the client.
func writeServerError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	writeFailure(w, http.StatusInternalServerError, "Server Error")
}
