package apperr

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

// Transform converts an arbitrary error into an *Error. Errors that are
// already classified pass through unchanged. For plain errors the message
// is inspected for well-known markers (the same heuristics the server's
// clients have always relied on), falling back to UNEXPECTED_ERROR.
func Transform(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	typ := UnexpectedError
	sev := SeverityMedium
	status := 0
	recoverable := true

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		typ, sev = TimeoutError, SeverityHigh
	case isNetErr(err):
		typ, sev = NetworkError, SeverityHigh
	case strings.Contains(msg, "Network Error") || strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host"):
		typ, sev = NetworkError, SeverityHigh
	case strings.Contains(msg, "401") || strings.Contains(msg, "Unauthorized"):
		typ, sev, status = AuthenticationError, SeverityHigh, 401
		recoverable = false
	case strings.Contains(msg, "403") || strings.Contains(msg, "Forbidden"):
		typ, sev, status = AuthorizationError, SeverityHigh, 403
		recoverable = false
	case strings.Contains(msg, "404") || strings.Contains(msg, "Not Found"):
		typ, sev, status = NotFoundError, SeverityMedium, 404
	case strings.Contains(msg, "500") || strings.Contains(msg, "Internal Server Error"):
		typ, sev, status = ServerError, SeverityCritical, 500
	case strings.Contains(lower, "timeout"):
		typ, sev = TimeoutError, SeverityHigh
	default:
		sev = SeverityHigh
		recoverable = false
	}

	return New(msg, Options{
		Type:             typ,
		Severity:         sev,
		StatusCode:       status,
		Original:         err,
		DeveloperMessage: msg,
		Recoverable:      Bool(recoverable),
	})
}

// FromStatus maps an HTTP status code onto the taxonomy. message is the
// server-provided message when present.
func FromStatus(status int, message string) *Error {
	typ := UnexpectedError
	sev := SeverityMedium
	recoverable := true

	switch {
	case status == 401:
		typ, sev, recoverable = AuthenticationError, SeverityHigh, false
	case status == 403:
		typ, sev, recoverable = AuthorizationError, SeverityHigh, false
	case status == 404:
		typ, sev, recoverable = NotFoundError, SeverityMedium, true
	case status == 408:
		typ, sev, recoverable = TimeoutError, SeverityHigh, true
	case status >= 500:
		typ, sev, recoverable = ServerError, SeverityCritical, true
	case status >= 400:
		typ, sev, recoverable = ValidationError, SeverityMedium, true
	}

	if message == "" {
		message = UserMessage(typ)
	}

	return New(message, Options{
		Type:        typ,
		Severity:    sev,
		StatusCode:  status,
		Recoverable: Bool(recoverable),
	})
}

func isNetErr(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return false // classified as TIMEOUT_ERROR by the caller path
		}
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
