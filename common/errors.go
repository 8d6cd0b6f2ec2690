// Package common holds the sentinel errors shared by the store, service and
// HTTP layers.
package common

import "errors"

var (
	// request payload shape, type or length violations
	ErrBadRequest = errors.New("bad request")

	// missing or unknown token, or bad login credentials
	ErrUnauthorized = errors.New("unauthorized")

	// record absent, or not owned by the caller
	ErrNotFound = errors.New("not found")

	ErrInternal = errors.New("internal error")
)
