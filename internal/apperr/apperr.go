package apperr

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Type classifies a failure into the application error taxonomy.
type Type string

const (
	NetworkError        Type = "NETWORK_ERROR"
	AuthenticationError Type = "AUTHENTICATION_ERROR"
	AuthorizationError  Type = "AUTHORIZATION_ERROR"
	ValidationError     Type = "VALIDATION_ERROR"
	NotFoundError       Type = "NOT_FOUND_ERROR"
	ServerError         Type = "SERVER_ERROR"
	TimeoutError        Type = "TIMEOUT_ERROR"
	QuizError           Type = "QUIZ_ERROR"
	StudentError        Type = "STUDENT_ERROR"
	GroupError          Type = "GROUP_ERROR"
	QuestionError       Type = "QUESTION_ERROR"
	ComponentError      Type = "COMPONENT_ERROR"
	UnexpectedError     Type = "UNEXPECTED_ERROR"
)

// Types lists every taxonomy member. Used by metrics to pre-seed counters.
var Types = []Type{
	NetworkError, AuthenticationError, AuthorizationError, ValidationError,
	NotFoundError, ServerError, TimeoutError, QuizError, StudentError,
	GroupError, QuestionError, ComponentError, UnexpectedError,
}

// Severity grades how loudly an error should surface.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists all severity grades.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Context records where and when an error happened.
type Context struct {
	Timestamp      time.Time
	URL            string
	Route          string
	UserAgent      string
	AdditionalData map[string]any
}

// Error is the application-wide error model. Every failure path in the
// client produces one of these, either directly or via Transform.
type Error struct {
	Type             Type
	Severity         Severity
	Code             string
	StatusCode       int
	Message          string
	UserMessage      string
	DeveloperMessage string
	Original         error
	Context          Context
	Recoverable      bool
	RetryCount       int
	MaxRetries       int
	Timestamp        time.Time
	Stack            string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Original }

// Key identifies a recurring error for suppression and top-error metrics.
func (e *Error) Key() string { return string(e.Type) + ":" + e.Message }

// Fatal reports whether the error has exhausted its retry budget or is
// inherently non-recoverable.
func (e *Error) Fatal() bool {
	return !e.Recoverable || (e.MaxRetries > 0 && e.RetryCount >= e.MaxRetries)
}

// Options configures New.
type Options struct {
	Type             Type
	Severity         Severity
	Code             string
	StatusCode       int
	UserMessage      string
	DeveloperMessage string
	Original         error
	Context          Context
	Recoverable      *bool
	MaxRetries       int
}

// DefaultMaxRetries is applied when Options does not set a retry budget.
const DefaultMaxRetries = 3

// New builds an Error from a message and options, filling defaults:
// severity MEDIUM, recoverable true, the per-type user message, and a
// stack captured at the call site.
func New(message string, opts Options) *Error {
	now := time.Now()

	sev := opts.Severity
	if sev == "" {
		sev = SeverityMedium
	}

	recoverable := true
	if opts.Recoverable != nil {
		recoverable = *opts.Recoverable
	}

	userMsg := opts.UserMessage
	if userMsg == "" {
		userMsg = UserMessage(opts.Type)
	}

	devMsg := opts.DeveloperMessage
	if devMsg == "" {
		devMsg = message
	}

	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	ctx := opts.Context
	if ctx.Timestamp.IsZero() {
		ctx.Timestamp = now
	}

	return &Error{
		Type:             opts.Type,
		Severity:         sev,
		Code:             opts.Code,
		StatusCode:       opts.StatusCode,
		Message:          message,
		UserMessage:      userMsg,
		DeveloperMessage: devMsg,
		Original:         opts.Original,
		Context:          ctx,
		Recoverable:      recoverable,
		MaxRetries:       maxRetries,
		Timestamp:        now,
		Stack:            string(debug.Stack()),
	}
}

// Bool is a convenience for Options.Recoverable.
func Bool(b bool) *bool { return &b }
