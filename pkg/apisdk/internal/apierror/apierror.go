package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by every *Error with a 404 status.
var ErrNotFound = errors.New("room not found")

// Error represents a non-2xx response from the API.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Detail     string `json:"message,omitempty"`

	Request  *http.Request  `json:"-"`
	Response *http.Response `json:"-"`
}

func (e *Error) Error() string {
	method, path := "", ""
	if e.Request != nil {
		method, path = e.Request.Method, e.Request.URL.Path
	}

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}

	return fmt.Sprintf("%s %q: %d %s", method, path, e.StatusCode, msg)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
