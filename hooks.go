package apiai

import "github.com/zoobzio/capitan"

// Signals for hook events.
const (
	QueryStarted   = capitan.Signal("apiai.query.started")
	QueryCompleted = capitan.Signal("apiai.query.completed")
	QueryRejected  = capitan.Signal("apiai.query.rejected")
	QueryFailed    = capitan.Signal("apiai.query.failed")
)

// Error types reported through ErrorTypeKey.
const (
	ErrorTypeEncode    = "encode"
	ErrorTypeTransport = "transport"
	ErrorTypeDecode    = "decode"
)

// Keys for hook event fields.
var (
	// Request identification.
	RequestIDKey = capitan.NewStringKey("apiai.request.id")
	SessionIDKey = capitan.NewStringKey("apiai.session.id")
	LangKey      = capitan.NewStringKey("apiai.lang")
	VersionKey   = capitan.NewStringKey("apiai.version")

	// Input data.
	QueryKey = capitan.NewStringKey("apiai.query")

	// Error information.
	ErrorKey     = capitan.NewStringKey("apiai.error")
	ErrorTypeKey = capitan.NewStringKey("apiai.error.type")

	// HTTP/API metadata.
	HTTPStatusCodeKey = capitan.NewIntKey("apiai.http.status.code")
	APIErrorTypeKey   = capitan.NewStringKey("apiai.api.error.type")
	DurationMsKey     = capitan.NewIntKey("apiai.duration.ms")

	// Response metadata.
	ResponseIDKey = capitan.NewStringKey("apiai.response.id")
)
