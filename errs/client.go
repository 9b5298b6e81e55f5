package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Client-side errors
var (
	ErrRouteNotFound  = errors.New("route not found")
	ErrEmptyToken     = errors.New("session token is empty")
	ErrEmptyUsername  = errors.New("session username is empty")
	ErrCommentCycle   = errors.New("comment parent chain forms a cycle")
	ErrParentNotFound = errors.New("parent comment not found")
	ErrCrossPostReply = errors.New("parent comment belongs to another post")
)

// ResponseError is returned when the backend answered with a non-2xx status.
// Body holds the raw response body; Message is the decoded "error" field when
// the body follows the usual JSON error shape.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Message    string
}

// NewResponseError builds a ResponseError and decodes the message from body
func NewResponseError(method, url string, statusCode int, body []byte) *ResponseError {
	e := &ResponseError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
	}
	var decoded ErrorResponse
	if err := json.Unmarshal(body, &decoded); err == nil {
		e.Message = decoded.Error
		if e.Message == "" {
			e.Message = decoded.Message
		}
	}
	return e
}

func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, msg)
}

// TransportError is returned when no response reached the client
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON error body written by the content API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// IsTransport reports whether err means the request never got a response
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
