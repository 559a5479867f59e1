package apiai

import (
	"time"

	"github.com/zoobzio/pipz"
)

// Option modifies the request pipeline of a Client.
type Option func(pipz.Chainable[*QueryRequest]) pipz.Chainable[*QueryRequest]

// WithTimeout bounds each TextRequest call.
// Calls exceeding this duration are canceled and return a *TransportError.
func WithTimeout(duration time.Duration) Option {
	return func(pipeline pipz.Chainable[*QueryRequest]) pipz.Chainable[*QueryRequest] {
		return pipz.NewTimeout("timeout", pipeline, duration)
	}
}

// WithErrorHandler passes every failed call to handler.
// The handler observes the failure; the original error is still returned to
// the caller of TextRequest. Rejections count as failures.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*QueryRequest]]) Option {
	return func(pipeline pipz.Chainable[*QueryRequest]) pipz.Chainable[*QueryRequest] {
		return pipz.NewHandle("error-handler", pipeline, handler)
	}
}
