// Package validation checks inbound JSON payloads before they reach the
// services. Every failure unwraps to common.ErrBadRequest.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"reminders-server/common"
	"reminders-server/models"
)

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *Error) Unwrap() error {
	return common.ErrBadRequest
}

func DecodeLogin(r io.Reader) (models.LoginRequest, error) {
	var req models.LoginRequest

	obj, err := decodeObject(r)
	if err != nil {
		return req, err
	}

	username, err := stringField(obj, "username", true)
	if err != nil {
		return req, err
	}
	if *username == "" {
		return req, &Error{Field: "username", Message: "is required"}
	}

	password, err := stringField(obj, "password", true)
	if err != nil {
		return req, err
	}
	if *password == "" {
		return req, &Error{Field: "password", Message: "is required"}
	}

	req.Username = *username
	req.Password = *password
	return req, nil
}

// DecodeCreateReminder requires content; important defaults to false.
func DecodeCreateReminder(r io.Reader) (models.CreateReminderRequest, error) {
	var req models.CreateReminderRequest

	obj, err := decodeObject(r)
	if err != nil {
		return req, err
	}

	content, err := stringField(obj, "content", true)
	if err != nil {
		return req, err
	}
	if err := CheckContent(*content); err != nil {
		return req, err
	}

	important, err := boolField(obj, "important")
	if err != nil {
		return req, err
	}

	req.Content = *content
	if important != nil {
		req.Important = *important
	}
	return req, nil
}

// DecodeUpdateReminder accepts any subset of content and important.
func DecodeUpdateReminder(r io.Reader) (models.UpdateReminderRequest, error) {
	var req models.UpdateReminderRequest

	obj, err := decodeObject(r)
	if err != nil {
		return req, err
	}

	content, err := stringField(obj, "content", false)
	if err != nil {
		return req, err
	}
	if content != nil {
		if err := CheckContent(*content); err != nil {
			return req, err
		}
	}

	important, err := boolField(obj, "important")
	if err != nil {
		return req, err
	}

	req.Content = content
	req.Important = important
	return req, nil
}

// CheckContent enforces 1..MaxReminderContentLength characters.
func CheckContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return &Error{Field: "content", Message: "is required"}
	}
	if n > models.MaxReminderContentLength {
		return &Error{Field: "content", Message: fmt.Sprintf("must be at most %d characters", models.MaxReminderContentLength)}
	}
	return nil
}

func decodeObject(r io.Reader) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&obj); err != nil || obj == nil {
		return nil, &Error{Message: "request body must be a JSON object"}
	}
	return obj, nil
}

func stringField(obj map[string]json.RawMessage, name string, required bool) (*string, error) {
	raw, ok := obj[name]
	if !ok {
		if required {
			return nil, &Error{Field: name, Message: "is required"}
		}
		return nil, nil
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return nil, &Error{Field: name, Message: "must be a string"}
	}
	return &s, nil
}

func boolField(obj map[string]json.RawMessage, name string) (*bool, error) {
	raw, ok := obj[name]
	if !ok {
		return nil, nil
	}
	var b bool
	if isNull(raw) || json.Unmarshal(raw, &b) != nil {
		return nil, &Error{Field: name, Message: "must be a boolean"}
	}
	return &b, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
