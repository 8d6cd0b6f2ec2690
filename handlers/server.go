package handlers

import (
	"net/http"
	"time"

	"reminders-server/respond"
)

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type notFoundResponse struct {
	Error  string `json:"error"`
	Path   string `json:"path"`
	Method string `json:"method"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Server running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound answers every request no route claimed.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusNotFound, notFoundResponse{
		Error:  "Route not found",
		Path:   r.URL.Path,
		Method: r.Method,
	})
}
