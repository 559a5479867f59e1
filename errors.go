package apiai

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying TextRequest failures with errors.Is.
var (
	ErrRejected  = errors.New("apiai: query rejected")
	ErrTransport = errors.New("apiai: transport failure")
	ErrDecode    = errors.New("apiai: response is not a JSON object")
)

// RejectionError is returned when the service answers with a non-2xx status.
// Body holds the decoded response exactly as a successful body would be.
type RejectionError struct {
	StatusCode int
	Body       ResponseBody
}

func (e *RejectionError) Error() string {
	if s, ok := e.Status(); ok && s.ErrorType != "" {
		return fmt.Sprintf("apiai: query rejected (%d): %s", e.StatusCode, s.ErrorType)
	}
	return fmt.Sprintf("apiai: query rejected: status %d", e.StatusCode)
}

// Is reports ErrRejected as a match.
func (*RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// Status returns the status object of the rejection body, if it has one.
func (e *RejectionError) Status() (Status, bool) {
	return ParseStatus(e.Body)
}

// TransportError is returned when the HTTP exchange itself fails
// (DNS, connect, TLS, timeout or cancellation).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("apiai: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport as a match.
func (*TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodeError is returned when the response body cannot be read or is not
// a JSON object.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("apiai: failed to decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrDecode as a match.
func (*DecodeError) Is(target error) bool {
	return target == ErrDecode
}
