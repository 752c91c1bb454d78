package errlog

import (
	"github.com/rollbar/rollbar-go"
)

// RollbarSink forwards error entries to Rollbar.
type RollbarSink struct{}

// NewRollbarSink configures the global rollbar client and returns a sink.
func NewRollbarSink(token, environment, codeVersion string) *RollbarSink {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	rollbar.SetCodeVersion(codeVersion)
	return &RollbarSink{}
}

// Report sends the entry to Rollbar with its taxonomy fields attached.
func (s *RollbarSink) Report(e Entry) {
	custom := map[string]any{
		"entry_id": e.ID,
	}
	if e.Err != nil {
		custom["type"] = string(e.Err.Type)
		custom["severity"] = string(e.Err.Severity)
		custom["status_code"] = e.Err.StatusCode
		custom["recoverable"] = e.Err.Recoverable
		custom["developer_message"] = e.Err.DeveloperMessage
	}
	if e.Context != nil {
		custom["url"] = e.Context.URL
		custom["route"] = e.Context.Route
	}

	if e.Err != nil {
		rollbar.ErrorWithExtras(rollbar.ERR, e.Err, custom)
		return
	}
	rollbar.MessageWithExtras(rollbar.ERR, e.Message, custom)
}

// Close flushes pending reports. Call on shutdown.
func (s *RollbarSink) Close() {
	rollbar.Close()
}
