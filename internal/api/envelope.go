package api

import (
	"bytes"
	"encoding/json"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// envelope is the nominal wire shape: {data, message, success}. Some
// endpoints skip it and return the payload bare; unwrap accepts both.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success *bool           `json:"success"`
}

// unwrap resolves a 2xx body to the payload bytes. An enveloped body
// yields its data field; a bare array or object is returned as-is; any
// other shape is a classification error.
func unwrap(body []byte, errCtx apperr.Context) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		return trimmed, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && (env.Data != nil || env.Success != nil) {
			return env.Data, nil
		}
		return trimmed, nil
	}

	return nil, apperr.New("unexpected response shape", apperr.Options{
		Type:        apperr.UnexpectedError,
		Severity:    apperr.SeverityHigh,
		Recoverable: apperr.Bool(false),
		Context:     errCtx,
	})
}

// serverMessage extracts the message field from an error body, empty when
// the body is not an envelope.
func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		return ""
	}
	return env.Message
}
