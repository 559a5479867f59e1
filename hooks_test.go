package apiai

import (
	"context"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/zoobzio/capitan"
)

// hookEvent is a copy of the fields a test cares about.
type hookEvent struct {
	requestID  string
	lang       string
	version    string
	query      string
	statusCode int
	responseID string
	apiError   string
	errorType  string
	errorMsg   string
}

// listen hooks signal and forwards events for sessionID only, so stray events
// from other tests are ignored.
func listen(t *testing.T, signal capitan.Signal, sessionID string) <-chan hookEvent {
	t.Helper()
	events := make(chan hookEvent, 4)
	listener := capitan.Hook(signal, func(_ context.Context, e *capitan.Event) {
		if id, _ := SessionIDKey.From(e); id != sessionID {
			return
		}
		var ev hookEvent
		ev.requestID, _ = RequestIDKey.From(e)
		ev.lang, _ = LangKey.From(e)
		ev.version, _ = VersionKey.From(e)
		ev.query, _ = QueryKey.From(e)
		ev.statusCode, _ = HTTPStatusCodeKey.From(e)
		ev.responseID, _ = ResponseIDKey.From(e)
		ev.apiError, _ = APIErrorTypeKey.From(e)
		ev.errorType, _ = ErrorTypeKey.From(e)
		ev.errorMsg, _ = ErrorKey.From(e)
		events <- ev
	})
	t.Cleanup(func() { listener.Close() })
	return events
}

func waitFor(t *testing.T, events <-chan hookEvent) hookEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for hook")
		return hookEvent{}
	}
}

func TestQueryStartedHook(t *testing.T) {
	sessionID := NewSessionID()
	events := listen(t, QueryStarted, sessionID)

	client := NewWithConfig(Config{
		Language:   "de",
		SessionID:  sessionID,
		HTTPClient: NewMockTransport(http.StatusOK, successBody),
	})
	if _, err := client.TextRequest(context.Background(), "Hallo", map[string]string{"version": "20160101"}); err != nil {
		t.Fatalf("TextRequest failed: %v", err)
	}

	ev := waitFor(t, events)
	if ev.requestID == "" {
		t.Error("Request ID was not set in hook")
	}
	if ev.lang != "de" {
		t.Errorf("Expected lang 'de', got %q", ev.lang)
	}
	if ev.version != "20160101" {
		t.Errorf("Expected version '20160101', got %q", ev.version)
	}
	if ev.query != "Hallo" {
		t.Errorf("Expected query 'Hallo', got %q", ev.query)
	}
}

func TestQueryCompletedHook(t *testing.T) {
	sessionID := NewSessionID()
	started := listen(t, QueryStarted, sessionID)
	completed := listen(t, QueryCompleted, sessionID)

	client := NewWithConfig(Config{
		SessionID:  sessionID,
		HTTPClient: NewMockTransport(http.StatusOK, successBody),
	})
	if _, err := client.TextRequest(context.Background(), "Hallo", nil); err != nil {
		t.Fatalf("TextRequest failed: %v", err)
	}

	start := waitFor(t, started)
	ev := waitFor(t, completed)
	if ev.requestID != start.requestID {
		t.Errorf("Expected request ID %q, got %q", start.requestID, ev.requestID)
	}
	if ev.statusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", ev.statusCode)
	}
	if ev.responseID != "x" {
		t.Errorf("Expected response id 'x', got %q", ev.responseID)
	}
}

func TestQueryRejectedHook(t *testing.T) {
	sessionID := NewSessionID()
	events := listen(t, QueryRejected, sessionID)

	client := NewWithConfig(Config{
		SessionID:  sessionID,
		HTTPClient: NewMockTransport(http.StatusUnauthorized, `{"status":{"code":401,"errorType":"unauthorized"}}`),
	})
	if _, err := client.TextRequest(context.Background(), "Hallo", nil); err == nil {
		t.Fatal("Expected error but got none")
	}

	ev := waitFor(t, events)
	if ev.statusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", ev.statusCode)
	}
	if ev.apiError != "unauthorized" {
		t.Errorf("Expected api error 'unauthorized', got %q", ev.apiError)
	}
}

func TestQueryFailedHook(t *testing.T) {
	tests := []struct {
		name      string
		transport *MockTransport
		errorType string
	}{
		{"transport", NewMockTransportWithError(syscall.ECONNREFUSED), ErrorTypeTransport},
		{"decode", NewMockTransport(http.StatusOK, "not json"), ErrorTypeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionID := NewSessionID()
			events := listen(t, QueryFailed, sessionID)

			client := NewWithConfig(Config{SessionID: sessionID, HTTPClient: tt.transport})
			if _, err := client.TextRequest(context.Background(), "Hallo", nil); err == nil {
				t.Fatal("Expected error but got none")
			}

			ev := waitFor(t, events)
			if ev.errorType != tt.errorType {
				t.Errorf("Expected error type %q, got %q", tt.errorType, ev.errorType)
			}
			if ev.errorMsg == "" {
				t.Error("Error message was not set in hook")
			}
		})
	}
}
