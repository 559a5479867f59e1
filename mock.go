package apiai

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// ErrUnavailable is returned by a MockTransport marked unavailable.
var ErrUnavailable = errors.New("mock transport unavailable")

// RecordedRequest is a snapshot of a request seen by MockTransport.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// MockTransport is a Doer that answers without touching the network.
// It records every request it receives and is safe for concurrent use.
type MockTransport struct {
	mu        sync.Mutex
	respond   func(req *http.Request) (*http.Response, error)
	available bool
	requests  []RecordedRequest
}

// NewMockTransport creates a transport that always answers with status and body.
func NewMockTransport(status int, body string) *MockTransport {
	return NewMockTransportWithCallback(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Request:    req,
		}, nil
	})
}

// NewMockTransportWithError creates a transport whose exchanges always fail with err.
func NewMockTransportWithError(err error) *MockTransport {
	return NewMockTransportWithCallback(func(*http.Request) (*http.Response, error) {
		return nil, err
	})
}

// NewMockTransportWithCallback creates a transport that delegates to respond.
func NewMockTransportWithCallback(respond func(req *http.Request) (*http.Response, error)) *MockTransport {
	return &MockTransport{
		respond:   respond,
		available: true,
	}
}

// Do records req and returns the configured response.
func (m *MockTransport) Do(req *http.Request) (*http.Response, error) {
	recorded := RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		recorded.Body = body
	}

	m.mu.Lock()
	m.requests = append(m.requests, recorded)
	available := m.available
	m.mu.Unlock()

	if !available {
		return nil, ErrUnavailable
	}
	return m.respond(req)
}

// SetAvailable toggles availability (for testing transport failures).
func (m *MockTransport) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = available
}

// Requests returns a copy of every request seen so far.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := make([]RecordedRequest, len(m.requests))
	copy(requests, m.requests)
	return requests
}

// LastRequest returns the most recent request, if any.
func (m *MockTransport) LastRequest() (RecordedRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return RecordedRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}
