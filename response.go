package apiai

import (
	"encoding/json"
	"fmt"
)

// QueryResponse is a typed view of a successful query body.
// The client never builds one itself; callers opt in via ParseQueryResponse.
type QueryResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Lang      string `json:"lang"`
	SessionID string `json:"sessionId"`
	Result    Result `json:"result"`
	Status    Status `json:"status,omitempty"`
}

// Result is the interpretation of the query.
type Result struct {
	Source           string         `json:"source,omitempty"`
	ResolvedQuery    string         `json:"resolvedQuery,omitempty"`
	Action           string         `json:"action"`
	ActionIncomplete bool           `json:"actionIncomplete,omitempty"`
	Parameters       map[string]any `json:"parameters,omitempty"`
	Contexts         []Context      `json:"contexts"`
	Metadata         Metadata       `json:"metadata,omitempty"`
	Fulfillment      Fulfillment    `json:"fulfillment"`
	Score            float64        `json:"score,omitempty"`
}

// Context is an active conversational context.
type Context struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Lifespan   int            `json:"lifespan,omitempty"`
}

// Metadata identifies the matched intent.
type Metadata struct {
	IntentID   string `json:"intentId,omitempty"`
	IntentName string `json:"intentName,omitempty"`
}

// Fulfillment is the agent's reply. Message shapes vary by platform and are
// left undecoded.
type Fulfillment struct {
	Speech   string           `json:"speech"`
	Messages []map[string]any `json:"messages"`
}

// Status is the status object the service attaches to responses.
type Status struct {
	Code         int    `json:"code"`
	ErrorType    string `json:"errorType"`
	ErrorDetails string `json:"errorDetails,omitempty"`
	ErrorID      string `json:"errorId,omitempty"`
}

// Decode converts a response body into T by round-tripping through JSON.
func Decode[T any](body ResponseBody) (T, error) {
	var out T
	raw, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("failed to encode body: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode body: %w", err)
	}
	return out, nil
}

// ParseQueryResponse returns the typed view of a successful body.
func ParseQueryResponse(body ResponseBody) (*QueryResponse, error) {
	resp, err := Decode[QueryResponse](body)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseStatus extracts the status object from a body.
// ok is false when the body has no status object or it is malformed.
func ParseStatus(body ResponseBody) (Status, bool) {
	raw, present := body["status"].(map[string]any)
	if !present {
		return Status{}, false
	}
	status, err := Decode[Status](raw)
	if err != nil {
		return Status{}, false
	}
	return status, true
}
