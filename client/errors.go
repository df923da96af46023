package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/mobiledir/compose"
	"github.com/harperreed/mobiledir/models"
)

// NetworkError means no usable HTTP response arrived: the request failed in
// transport, or a success body could not be decoded.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BackendError is a non-2xx response. Message and Errors carry the backend's
// own payload and are shown to the user unmodified.
type BackendError struct {
	Op         string
	StatusCode int
	Message    string
	Errors     []string
}

func (e *BackendError) Error() string {
	if msg := e.payloadMessage(); msg != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

func (e *BackendError) payloadMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.Join(e.Errors, ", ")
}

// UserMessage maps err to the text a user sees. fallback is used for backend
// failures that carry no message of their own.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, compose.ErrInvalidEntry) {
		return models.MsgInvalidEntry
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if msg := backendErr.payloadMessage(); msg != "" {
			return msg
		}
		return fallback
	}

	return models.MsgNetworkError
}
