package app

import (
	"net/http"

	tea "charm.land/bubbletea/v2"

	"github.com/quizdesk/quizdesk/internal/api"
	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/capture"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/credstore"
	"github.com/quizdesk/quizdesk/internal/errlog"
	"github.com/quizdesk/quizdesk/internal/gate"
	"github.com/quizdesk/quizdesk/internal/orchestrate"
	"github.com/quizdesk/quizdesk/internal/store"
)

// NavigateLoginMsg asks the running program to land on the login screen.
type NavigateLoginMsg struct{}

// ErrorToastMsg surfaces a handled error to the active view.
type ErrorToastMsg struct {
	Severity apperr.Severity
	Message  string
}

// ReloadMsg asks the active screen to refresh its data.
type ReloadMsg struct{}

// Runtime holds every wired service the screens and CLI commands share.
type Runtime struct {
	Cfg       config.Config
	Creds     *credstore.Store
	Log       *errlog.Logger
	Session   *store.Session
	Client    *api.Client
	Auth      *api.AuthService
	Quizzes   *api.QuizService
	Groups    *api.GroupService
	Students  *api.StudentService
	Questions *api.QuestionService
	Orch      *orchestrate.Orchestrator
	Gate      *gate.Gate
	Capture   *capture.Handler

	// Events carries messages from non-UI layers (auth failures,
	// auto-recovery hooks, toasts) into the bubbletea loop. The CLI
	// never drains it, so senders must not block.
	Events chan tea.Msg
}

// NewRuntime wires the full service graph from configuration.
func NewRuntime(cfg config.Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	credPath := cfg.CredentialPath
	if credPath == "" {
		p, err := cfg.DefaultCredentialPath()
		if err != nil {
			return nil, err
		}
		credPath = p
	}

	rt := &Runtime{
		Cfg:    cfg,
		Creds:  credstore.New(credPath),
		Events: make(chan tea.Msg, 16),
	}

	rt.Log = errlog.New(errlog.Config{
		EnableLogging:   cfg.ErrorLogging,
		EnableReporting: cfg.ErrorReporting,
		Level:           errlog.ParseLevel(cfg.LogLevel),
	})
	if cfg.RollbarToken != "" {
		rt.Log.SetSink(errlog.NewRollbarSink(cfg.RollbarToken, cfg.Environment, ""))
	}

	rt.Session = store.NewSession(rt.Creds)

	rt.Capture = capture.New(rt.Log, relayNotifier{rt}, capture.Hooks{
		Reauthenticate: func() { rt.send(NavigateLoginMsg{}) },
		Online:         func() bool { return true },
		Reload:         func() { rt.send(ReloadMsg{}) },
	})

	// The pipeline's own transport runs through the observer so HTTP
	// failures reach the error funnel even when a caller drops the error.
	rt.Client = api.NewClient(cfg.BaseURL, rt.Creds,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithHTTPClient(&http.Client{Transport: rt.Capture.WrapTransport(nil)}),
		api.WithAuthFailureHook(func() {
			rt.Session.Reset()
			rt.send(NavigateLoginMsg{})
		}),
	)

	rt.Auth = api.NewAuthService(rt.Client)
	rt.Quizzes = api.NewQuizService(rt.Client)
	rt.Groups = api.NewGroupService(rt.Client)
	rt.Students = api.NewStudentService(rt.Client)
	rt.Questions = api.NewQuestionService(rt.Client)

	rt.Orch = orchestrate.New(rt.Session, rt.Quizzes, rt.Groups, rt.Students, rt.Log,
		orchestrate.WithRetry(cfg.MaxRetries, cfg.RetryDelay))
	rt.Gate = gate.New(rt.Creds, rt.Orch, relayNavigator{rt})

	return rt, nil
}

// send posts an event without blocking. Dropped events are fine: the
// CLI has no loop to drain them, and the TUI only needs the latest.
func (rt *Runtime) send(msg tea.Msg) {
	select {
	case rt.Events <- msg:
	default:
	}
}

// relayNavigator routes gate refusals into the event stream.
type relayNavigator struct{ rt *Runtime }

func (n relayNavigator) ToLogin() { n.rt.send(NavigateLoginMsg{}) }

// relayNotifier routes surfaced errors into the event stream.
type relayNotifier struct{ rt *Runtime }

func (n relayNotifier) Notify(severity apperr.Severity, message string) {
	n.rt.send(ErrorToastMsg{Severity: severity, Message: message})
}
