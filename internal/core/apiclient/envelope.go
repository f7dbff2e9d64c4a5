package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by APIErrors carrying a 404 status.
var ErrNotFound = errors.New("resource not found")

// Envelope is the uniform response body of the marketplace backend.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// APIError is returned when the backend answers with a non-2xx status or success=false.
type APIError struct {
	// Resource names the backend resource that was called (e.g., "orders").
	Resource string
	// StatusCode is the HTTP status returned by the backend.
	StatusCode int
	// Message is the backend-provided error text, if any.
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Resource, e.StatusCode, msg)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (e Envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func (e Envelope) hasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}
