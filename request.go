package apiai

import "time"

// QueryRequest flows through the pipz pipeline.
// It contains the caller input, the prepared wire request and the response.
type QueryRequest struct {
	// Input fields
	Query   string            // Free text to interpret
	Options map[string]string // Caller context parameters, owned by this request

	// Metadata fields
	RequestID string    // Unique identifier for this call
	SessionID string    // Session the query belongs to
	Lang      string    // Language code sent with the query
	StartedAt time.Time // When the call entered the pipeline

	// Prepared fields (populated by the prepare stage)
	Version string // Protocol version selected for the URL
	URL     string // Full target URL including v=<version>
	Payload []byte // JSON body sent to the service

	// Output fields (populated by the send and classify stages)
	StatusCode int          // HTTP status of the response
	Raw        []byte       // Undecoded response body
	Body       ResponseBody // Decoded response body
}

// Succeeded reports whether the response carried a 2xx status.
func (r *QueryRequest) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
