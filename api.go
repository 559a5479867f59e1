// Package apiai provides a client for the api.ai natural-language-understanding
// query endpoint.
//
// A Client holds an access token, a language code and a session identifier.
// TextRequest merges those with caller-supplied context parameters, POSTs the
// result to the query endpoint and returns the decoded JSON body:
//
//   - 2xx responses return the body as the success value
//   - other statuses return a *RejectionError carrying the same decoded body
//   - network failures return a *TransportError
//   - non-JSON bodies return a *DecodeError
//
// Every call emits capitan hooks (see hooks.go) so callers can observe traffic
// without the client doing any logging of its own.
//
// Basic usage:
//
//	client := apiai.New(token, "de", apiai.NewSessionID())
//	body, err := client.TextRequest(ctx, "Hallo", map[string]string{
//	    "timezone": "Europe/Paris",
//	})
package apiai

import "net/http"

// Endpoint defaults.
const (
	// DefaultBaseURL is the api.ai v1 API root.
	DefaultBaseURL = "https://api.api.ai/v1"

	// DefaultVersion is the protocol version sent as the v query parameter
	// when the caller does not supply a version option.
	DefaultVersion = "20150910"

	// QueryPath is the only endpoint this client talks to.
	QueryPath = "/query"
)

// Protocol-reserved option keys.
// KeyQuery, KeyLang and KeySessionID are always set by the client and
// overwrite caller values. KeyVersion is consumed and never sent in the body.
const (
	KeyQuery     = "query"
	KeyLang      = "lang"
	KeySessionID = "sessionId"
	KeyVersion   = "version"
)

// ResponseBody is the decoded JSON object returned by the service.
// The same shape is used for successful and rejected queries.
type ResponseBody map[string]any

// Doer performs a single HTTP exchange.
// *http.Client satisfies it; tests substitute MockTransport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
