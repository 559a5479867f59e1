package apiai

import "github.com/google/uuid"

// NewSessionID returns a random session identifier.
// The service treats session ids as opaque, so any unique string works;
// callers that already track conversations should pass their own id to New.
func NewSessionID() string {
	return uuid.New().String()
}
