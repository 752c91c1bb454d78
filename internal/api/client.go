// Package api is the typed HTTP pipeline against the quiz server. It
// injects the bearer credential per request, unwraps the server's
// response envelope, and classifies every failure into the application
// error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// DefaultTimeout is the per-request deadline when the caller does not
// override it.
const DefaultTimeout = 10 * time.Second

// userAgent identifies the client on the wire and in error context.
const userAgent = "quizdesk"

// Credentials is the slice of the credential store the pipeline needs:
// a token to inject and a way to drop it on 401.
type Credentials interface {
	Token() string
	Clear()
}

// RequestInterceptor runs before a request is emitted. Returning an
// error aborts the request; the error is classified, never swallowed.
type RequestInterceptor func(*http.Request) error

// ResponseInterceptor runs on every response before the result is
// decoded. Returning an error fails the call.
type ResponseInterceptor func(*http.Response) error

// Client issues requests against a single base origin. It holds no
// per-call state: the credential is read from the store on every request.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   Credentials
	timeout time.Duration

	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor

	// onAuthFailure is invoked after a 401 has cleared the credential.
	// The route gate installs its redirect here.
	onAuthFailure func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport. Mostly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout sets the default per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRequestInterceptor appends a request interceptor. Interceptors run
// in registration order before the request is emitted.
func WithRequestInterceptor(ri RequestInterceptor) Option {
	return func(c *Client) { c.reqInterceptors = append(c.reqInterceptors, ri) }
}

// WithResponseInterceptor appends a response interceptor. Interceptors
// run in registration order before the call resolves.
func WithResponseInterceptor(ri ResponseInterceptor) Option {
	return func(c *Client) { c.respInterceptors = append(c.respInterceptors, ri) }
}

// WithAuthFailureHook registers a callback fired after any 401 response.
func WithAuthFailureHook(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// NewClient creates a Client for the given base URL and credential store.
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		creds:   creds,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CallOption configures a single call.
type CallOption func(*callOptions)

type callOptions struct {
	timeout time.Duration
}

// CallTimeout overrides the deadline for one call.
func CallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// Get issues a GET and decodes the unwrapped payload into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...CallOption) (T, error) {
	return Do[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post issues a POST with a JSON body and decodes the unwrapped payload.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	return Do[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put issues a PUT with a JSON body and decodes the unwrapped payload.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	return Do[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Delete issues a DELETE and decodes the unwrapped payload.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...CallOption) (T, error) {
	return Do[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// Do issues a request and decodes the unwrapped payload into T. Every
// failure is returned as an *apperr.Error.
func Do[T any](ctx context.Context, c *Client, method, path string, body any, opts ...CallOption) (T, error) {
	var zero T

	raw, err := c.do(ctx, method, path, body, opts...)
	if err != nil {
		return zero, err
	}

	// Callers that discard the payload instantiate T as struct{}; the
	// server still sends data on those endpoints, so never decode it.
	if _, ok := any(zero).(struct{}); ok {
		return zero, nil
	}

	if len(raw) == 0 || string(raw) == "null" {
		return zero, nil
	}
	if err := json.Unmarshal(raw, &zero); err != nil {
		return zero, apperr.New(fmt.Sprintf("decode %s %s response: %v", method, path, err), apperr.Options{
			Type:        apperr.UnexpectedError,
			Severity:    apperr.SeverityHigh,
			Original:    err,
			Recoverable: apperr.Bool(false),
			Context:     apperr.Context{URL: c.baseURL + path, Route: path, UserAgent: userAgent},
		})
	}
	return zero, nil
}

// do runs the full pipeline and returns the unwrapped payload bytes.
func (c *Client) do(ctx context.Context, method, path string, body any, opts ...CallOption) (json.RawMessage, error) {
	callOpts := callOptions{timeout: c.timeout}
	for _, opt := range opts {
		opt(&callOpts)
	}

	url := c.baseURL + path
	errCtx := apperr.Context{URL: url, Route: path, UserAgent: userAgent}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.New(fmt.Sprintf("encode request body: %v", err), apperr.Options{
				Type:        apperr.UnexpectedError,
				Severity:    apperr.SeverityHigh,
				Original:    err,
				Recoverable: apperr.Bool(false),
				Context:     errCtx,
			})
		}
		reader = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, callOpts.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperr.New(fmt.Sprintf("build request: %v", err), apperr.Options{
			Type:        apperr.UnexpectedError,
			Severity:    apperr.SeverityHigh,
			Original:    err,
			Recoverable: apperr.Bool(false),
			Context:     errCtx,
		})
	}

	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for _, ri := range c.reqInterceptors {
		if err := ri(req); err != nil {
			return nil, classifyTransport(err, errCtx)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, classifyTransport(err, errCtx)
	}
	defer resp.Body.Close()

	for _, ri := range c.respInterceptors {
		if err := ri(resp); err != nil {
			return nil, classifyTransport(err, errCtx)
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err, errCtx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp.StatusCode, raw, errCtx)
	}

	return unwrap(raw, errCtx)
}

// statusError maps a non-2xx response onto the taxonomy, preferring the
// server's own message when the body carries one. A 401 additionally
// clears the credential and fires the auth-failure hook.
func (c *Client) statusError(status int, body []byte, errCtx apperr.Context) *apperr.Error {
	msg := serverMessage(body)

	if status == http.StatusUnauthorized {
		c.creds.Clear()
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
	}

	appErr := apperr.FromStatus(status, msg)
	appErr.Context = errCtx
	return appErr
}

// classifyTransport maps an error raised before any status was received.
func classifyTransport(err error, errCtx apperr.Context) *apperr.Error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return apperr.New("request deadline exceeded", apperr.Options{
			Type:        apperr.TimeoutError,
			Severity:    apperr.SeverityHigh,
			Original:    err,
			Recoverable: apperr.Bool(true),
			Context:     errCtx,
		})
	}

	return apperr.New(err.Error(), apperr.Options{
		Type:        apperr.NetworkError,
		Severity:    apperr.SeverityHigh,
		Original:    err,
		Recoverable: apperr.Bool(true),
		Context:     errCtx,
	})
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
