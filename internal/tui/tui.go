package tui

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/router"
	"github.com/quizdesk/quizdesk/internal/screen"
	"github.com/quizdesk/quizdesk/internal/screens/home"
	"github.com/quizdesk/quizdesk/internal/screens/login"
	"github.com/quizdesk/quizdesk/internal/ui/components"
	"github.com/quizdesk/quizdesk/internal/ui/layout"
)

const toastDuration = 4 * time.Second

// toastExpiredMsg clears a fading toast.
type toastExpiredMsg struct{ id int }

// Model is the root Bubble Tea model.
type Model struct {
	rt     *app.Runtime
	router *router.Router
	width  int
	height int

	toast   *components.Toast
	toastID int
}

// newModel creates the root model. A valid stored credential lands on
// home; everyone else signs in first.
func newModel(rt *app.Runtime) Model {
	var initial screen.Screen
	if cred := rt.Session.Auth.Hydrate(); cred.Valid() {
		initial = home.New(rt)
	} else {
		initial = loginScreen(rt)
	}

	return Model{
		rt:     rt,
		router: router.New(initial),
	}
}

func loginScreen(rt *app.Runtime) screen.Screen {
	return login.New(rt, func() screen.Screen { return home.New(rt) })
}

// listen pulls the next runtime event into the bubbletea loop.
func (m Model) listen() tea.Cmd {
	events := m.rt.Events
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) Init() tea.Cmd {
	var initCmd tea.Cmd
	if active := m.router.Active(); active != nil {
		initCmd = active.Init()
	}
	return tea.Batch(m.listen(), initCmd)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case app.NavigateLoginMsg:
		cmd := m.router.Reset(loginScreen(m.rt))
		return m, tea.Batch(cmd, m.listen())

	case app.ErrorToastMsg:
		m.toastID++
		t := components.Toast{Message: msg.Message, Severity: msg.Severity, Width: m.width - 4}
		m.toast = &t

		cmds := []tea.Cmd{m.listen()}
		// Critical toasts stay until replaced; the rest fade.
		if msg.Severity != apperr.SeverityCritical {
			id := m.toastID
			cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
				return toastExpiredMsg{id: id}
			}))
		}
		return m, tea.Batch(cmds...)

	case app.ReloadMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.listen())

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user, role := "", ""
	if cred := m.rt.Creds.Get(); cred != nil {
		user = cred.Profile.FirstName
		role = string(cred.Profile.Role)
	}
	header := layout.RenderHeader(title, user, role, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	if m.toast != nil {
		content = m.toast.View() + "\n" + content
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program over a wired runtime.
func Run(rt *app.Runtime) error {
	p := tea.NewProgram(newModel(rt))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
