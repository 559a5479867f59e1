package apiai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// Config holds configuration for the Client.
type Config struct {
	AccessToken string        // Client access token, sent as a Bearer credential
	Language    string        // e.g. "en", "de"
	SessionID   string        // Opaque id grouping queries into one conversation
	BaseURL     string        // Optional, defaults to DefaultBaseURL
	Timeout     time.Duration // Optional, defaults to 30s; ignored when HTTPClient is set
	HTTPClient  Doer          // Optional, defaults to an *http.Client using Timeout
}

// Client sends text queries to the api.ai query endpoint.
// Its configuration is fixed at construction, so a single Client may be
// shared by any number of goroutines.
type Client struct {
	accessToken string
	language    string
	sessionID   string
	baseURL     string
	httpClient  Doer
	pipeline    pipz.Chainable[*QueryRequest]
}

// New creates a Client from an access token, language code and session id.
// No validation is done; bad values surface as rejections at call time.
func New(accessToken, language, sessionID string, opts ...Option) *Client {
	return NewWithConfig(Config{
		AccessToken: accessToken,
		Language:    language,
		SessionID:   sessionID,
	}, opts...)
}

// NewWithConfig creates a Client from a Config.
// Options wrap the request pipeline in the order given.
func NewWithConfig(config Config, opts ...Option) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	c := &Client{
		accessToken: config.AccessToken,
		language:    config.Language,
		sessionID:   config.SessionID,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		httpClient:  config.HTTPClient,
	}

	var pipeline pipz.Chainable[*QueryRequest] = pipz.NewSequence[*QueryRequest]("text-request",
		pipz.Apply("prepare", c.prepare),
		pipz.Apply("send", c.send),
		pipz.Apply("classify", c.classify),
	)
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	c.pipeline = pipeline

	return c
}

// Language returns the language code sent with every query.
func (c *Client) Language() string {
	return c.language
}

// SessionID returns the session id sent with every query.
func (c *Client) SessionID() string {
	return c.sessionID
}

// TextRequest sends query to the service along with options and returns the
// decoded response body.
//
// The client always sets the query, lang and sessionId keys, replacing any
// caller values. A version option selects the protocol version in the URL
// (DefaultVersion when absent) and is never sent as a body field. The caller's
// map is not modified.
//
// A non-2xx response yields a *RejectionError holding the decoded body.
// Network failures yield a *TransportError and unparseable bodies a
// *DecodeError.
func (c *Client) TextRequest(ctx context.Context, query string, options map[string]string) (ResponseBody, error) {
	request := &QueryRequest{
		Query:     query,
		Options:   maps.Clone(options),
		RequestID: uuid.New().String(),
		SessionID: c.sessionID,
		Lang:      c.language,
		StartedAt: time.Now(),
	}

	_, err := c.pipeline.Process(ctx, request)
	duration := int(time.Since(request.StartedAt).Milliseconds())
	if err != nil {
		return nil, c.fail(ctx, request, err, duration)
	}

	fields := []capitan.Field{
		RequestIDKey.Field(request.RequestID),
		SessionIDKey.Field(request.SessionID),
		HTTPStatusCodeKey.Field(request.StatusCode),
		DurationMsKey.Field(duration),
	}
	if id, ok := request.Body["id"].(string); ok {
		fields = append(fields, ResponseIDKey.Field(id))
	}
	capitan.Info(ctx, QueryCompleted, fields...)

	return request.Body, nil
}

// fail emits the matching hook for err and returns the error the caller sees.
func (*Client) fail(ctx context.Context, request *QueryRequest, err error, duration int) error {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		fields := []capitan.Field{
			RequestIDKey.Field(request.RequestID),
			SessionIDKey.Field(request.SessionID),
			HTTPStatusCodeKey.Field(rejection.StatusCode),
			DurationMsKey.Field(duration),
		}
		if status, ok := rejection.Status(); ok && status.ErrorType != "" {
			fields = append(fields, APIErrorTypeKey.Field(status.ErrorType))
		}
		capitan.Error(ctx, QueryRejected, fields...)
		return rejection
	}

	var (
		transportErr *TransportError
		decodeErr    *DecodeError
		errorType    = ErrorTypeEncode
	)
	switch {
	case errors.As(err, &transportErr):
		err = transportErr
		errorType = ErrorTypeTransport
	case errors.As(err, &decodeErr):
		err = decodeErr
		errorType = ErrorTypeDecode
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// A pipeline timeout or cancellation fired before the exchange finished.
		err = &TransportError{URL: request.URL, Err: err}
		errorType = ErrorTypeTransport
	}

	capitan.Error(ctx, QueryFailed,
		RequestIDKey.Field(request.RequestID),
		SessionIDKey.Field(request.SessionID),
		ErrorKey.Field(err.Error()),
		ErrorTypeKey.Field(errorType),
		DurationMsKey.Field(duration),
	)
	return err
}

// prepare merges the protocol fields into the options, selects the version
// and encodes the body.
func (c *Client) prepare(ctx context.Context, req *QueryRequest) (*QueryRequest, error) {
	if req.Options == nil {
		req.Options = make(map[string]string, 3)
	}
	req.Options[KeyQuery] = req.Query
	req.Options[KeyLang] = req.Lang
	req.Options[KeySessionID] = req.SessionID

	version, ok := req.Options[KeyVersion]
	if !ok {
		version = DefaultVersion
	}
	delete(req.Options, KeyVersion)
	req.Version = version
	req.URL = c.buildURL(version)

	capitan.Info(ctx, QueryStarted,
		RequestIDKey.Field(req.RequestID),
		SessionIDKey.Field(req.SessionID),
		LangKey.Field(req.Lang),
		VersionKey.Field(req.Version),
		QueryKey.Field(req.Query),
	)

	payload, err := json.Marshal(req.Options)
	if err != nil {
		return req, fmt.Errorf("failed to marshal request: %w", err)
	}
	req.Payload = payload
	return req, nil
}

// send performs the HTTP exchange and reads the full response body.
func (c *Client) send(ctx context.Context, req *QueryRequest) (*QueryRequest, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Payload))
	if err != nil {
		return req, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return req, &TransportError{URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return req, &TransportError{URL: req.URL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	req.StatusCode = resp.StatusCode
	req.Raw = raw
	return req, nil
}

// classify decodes the body and routes it by status code.
func (*Client) classify(_ context.Context, req *QueryRequest) (*QueryRequest, error) {
	var body ResponseBody
	if err := json.Unmarshal(req.Raw, &body); err != nil {
		return req, &DecodeError{StatusCode: req.StatusCode, Err: err}
	}
	if body == nil {
		return req, &DecodeError{StatusCode: req.StatusCode, Err: errors.New("body is null")}
	}
	req.Body = body

	if !req.Succeeded() {
		return req, &RejectionError{StatusCode: req.StatusCode, Body: body}
	}
	return req, nil
}

func (c *Client) buildURL(version string) string {
	return c.baseURL + QueryPath + "?v=" + url.QueryEscape(version)
}

func (c *Client) authHeader() string {
	return "Bearer " + c.accessToken
}
