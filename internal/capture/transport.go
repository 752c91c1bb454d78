package capture

import (
	"net/http"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// observedTransport reports HTTP failures to the handler without
// changing the outcome the caller sees.
type observedTransport struct {
	inner   http.RoundTripper
	handler *Handler
}

// WrapTransport observes a RoundTripper so that HTTP traffic issued
// outside the request pipeline still reaches the error handler. The
// response and error pass through untouched.
func (h *Handler) WrapTransport(inner http.RoundTripper) http.RoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &observedTransport{inner: inner, handler: h}
}

func (t *observedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		t.handler.Handle(apperr.New("network error: "+err.Error(), apperr.Options{
			Type:        apperr.NetworkError,
			Severity:    apperr.SeverityHigh,
			Original:    err,
			Recoverable: apperr.Bool(true),
			Context:     apperr.Context{URL: req.URL.String()},
		}))
		return nil, err
	}

	if resp.StatusCode >= 400 {
		t.handler.Handle(apperr.New("http "+resp.Status, apperr.Options{
			Type:        apperr.NetworkError,
			Severity:    httpSeverity(resp.StatusCode),
			StatusCode:  resp.StatusCode,
			Recoverable: apperr.Bool(resp.StatusCode >= 500),
			Context:     apperr.Context{URL: req.URL.String()},
		}))
	}

	return resp, nil
}

// httpSeverity grades an observed HTTP status.
func httpSeverity(status int) apperr.Severity {
	switch {
	case status >= 500:
		return apperr.SeverityCritical
	case status == 401 || status == 403:
		return apperr.SeverityHigh
	case status == 404:
		return apperr.SeverityMedium
	default:
		return apperr.SeverityLow
	}
}
