package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnreachable is returned when no response was received at all.
	ErrUnreachable = errors.New("cannot reach server")
)

// GenericErrorMessage is the fallback shown when a rejected response carries
// no usable message field.
const GenericErrorMessage = "request failed, please try again"

// Error is a server-rejected request: a response arrived with an error
// status. Message is extracted from the known response-body fields.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Message)
}

// errorFromResponse builds an *Error from a non-2xx response body. The
// upstream API is inconsistent about which field carries the message, so
// "error" is tried first, then "message", then the generic fallback.
func errorFromResponse(statusCode int, body []byte) *Error {
	var fields struct {
		Err     string `json:"error"`
		Message string `json:"message"`
	}
	message := GenericErrorMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		switch {
		case fields.Err != "":
			message = fields.Err
		case fields.Message != "":
			message = fields.Message
		}
	}
	return &Error{StatusCode: statusCode, Message: message}
}
