package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/router"
	"github.com/quizdesk/quizdesk/internal/screen"
	"github.com/quizdesk/quizdesk/internal/ui/components"
	"github.com/quizdesk/quizdesk/internal/ui/layout"
	"github.com/quizdesk/quizdesk/internal/ui/theme"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// loginDoneMsg carries the outcome of a login attempt.
type loginDoneMsg struct {
	cred *model.Credential
	err  error
}

// LoginScreen collects credentials and signs the user in.
type LoginScreen struct {
	rt          *app.Runtime
	homeFactory func() screen.Screen

	email    components.TextInput
	password components.TextInput
	focus    int
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the login screen. homeFactory produces the screen to
// land on after a successful sign-in.
func New(rt *app.Runtime, homeFactory func() screen.Screen) *LoginScreen {
	email := components.NewTextInput("email", false, 64)
	password := components.NewTextInput("password", true, 64)
	password.Blur()

	return &LoginScreen{
		rt:          rt,
		homeFactory: homeFactory,
		email:       email,
		password:    password,
	}
}

func (l *LoginScreen) Title() string {
	return "Sign in"
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.email.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		l.busy = false
		if msg.err != nil {
			appErr := l.rt.Capture.Handle(msg.err)
			l.errMsg = appErr.UserMessage
			return l, nil
		}
		home := l.homeFactory()
		return l, func() tea.Msg {
			return router.ResetScreenMsg{Screen: home}
		}

	case tea.KeyPressMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return l, l.cycleFocus(msg.String())
		case "enter":
			if l.focus == fieldEmail {
				return l, l.cycleFocus("tab")
			}
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	if l.focus == fieldEmail {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l *LoginScreen) cycleFocus(key string) tea.Cmd {
	if key == "shift+tab" || key == "up" {
		l.focus = (l.focus + fieldCount - 1) % fieldCount
	} else {
		l.focus = (l.focus + 1) % fieldCount
	}
	if l.focus == fieldEmail {
		l.password.Blur()
		return l.email.Focus()
	}
	l.email.Blur()
	return l.password.Focus()
}

func (l *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		l.errMsg = "Email and password are required."
		return nil
	}

	l.busy = true
	l.errMsg = ""
	rt := l.rt

	return func() tea.Msg {
		cred, err := rt.Auth.Login(context.Background(), model.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := rt.Session.Auth.SetCredential(cred); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{cred: cred}
	}
}

func (l *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("Quizdesk")
	subtitle := theme.Subtitle.Render("Sign in to continue")

	var lines []string
	lines = append(lines, title, subtitle, "")
	lines = append(lines, theme.Body.Render("Email"))
	lines = append(lines, l.email.View(), "")
	lines = append(lines, theme.Body.Render("Password"))
	lines = append(lines, l.password.View())

	if l.busy {
		lines = append(lines, "", theme.Loading.Render("Signing in..."))
	}
	if l.errMsg != "" {
		lines = append(lines, "", theme.ErrorText.Render(l.errMsg))
	}

	card := theme.Card.Width(48).Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "tab", Description: "next field"},
		{Key: "enter", Description: "sign in"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
