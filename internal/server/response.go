package server

import (
	"encoding/json"
	"net/http"
)

// ReviewRequestBody is the JSON body for the review endpoint. Only pr_number,
// title, and diff are required; use_llm defaults to false so the endpoint
// works without provider credentials.
type ReviewRequestBody struct {
	PRNumber      int      `json:"pr_number"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	FilesChanged  []string `json:"files_changed"`
	CommitMessage string   `json:"commit_message"`
	Diff          string   `json:"diff"`
	UseLLM        bool     `json:"use_llm"`
	Provider      string   `json:"provider"`
	Model         string   `json:"model"`
}

// HealthResponse is the JSON representation of the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Mode    string `json:"mode"`
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
