// Package respond writes the JSON bodies shared by the middleware and the
// handlers, and maps service errors onto HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"reminders-server/common"
	"reminders-server/logging"
)

const (
	MsgUnauthorized = "Invalid authorization token"
	MsgNotFound     = "Reminder not found"
	MsgInternal     = "Internal server error"
	msgGeneric      = "Something went wrong"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Message writes {"error": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Responder turns errors into responses. Anything that is not one of the
// common client errors is logged and reported as a 500; the detail is only
// echoed back in development.
type Responder struct {
	log         logging.Logger
	development bool
}

func New(log logging.Logger, development bool) *Responder {
	return &Responder{log: log, development: development}
}

func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrBadRequest):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthorized):
		Message(w, http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, common.ErrNotFound):
		Message(w, http.StatusNotFound, MsgNotFound)
	default:
		rs.Internal(w, r, err)
	}
}

// Internal logs err and writes the generic 500 body.
func (rs *Responder) Internal(w http.ResponseWriter, r *http.Request, err error) {
	rs.log.Error(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	msg := msgGeneric
	if rs.development && err != nil {
		msg = err.Error()
	}
	JSON(w, http.StatusInternalServerError, ErrorBody{Error: MsgInternal, Message: msg})
}
