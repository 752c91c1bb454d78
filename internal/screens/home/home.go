package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/router"
	"github.com/quizdesk/quizdesk/internal/screen"
	"github.com/quizdesk/quizdesk/internal/screens/quizlist"
	"github.com/quizdesk/quizdesk/internal/screens/take"
	"github.com/quizdesk/quizdesk/internal/store"
	"github.com/quizdesk/quizdesk/internal/ui/components"
	"github.com/quizdesk/quizdesk/internal/ui/layout"
	"github.com/quizdesk/quizdesk/internal/ui/theme"
)

// gateDoneMsg carries the outcome of the access check and its fetches.
type gateDoneMsg struct {
	err error
}

// HomeScreen is the dashboard landing screen after sign-in.
type HomeScreen struct {
	rt      *app.Runtime
	role    model.Role
	menu    components.Menu
	loading bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for the signed-in user.
func New(rt *app.Runtime) *HomeScreen {
	role := rt.Creds.Role()

	h := &HomeScreen{
		rt:      rt,
		role:    role,
		loading: true,
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	rt := h.rt

	items := []components.MenuItem{
		{
			Label:       "UPCOMING QUIZZES",
			Description: "Quizzes scheduled for the next five days",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quizlist.New(rt, quizlist.KindIncoming)}
				}
			},
		},
		{
			Label:       "COMPLETED QUIZZES",
			Description: "Quizzes that already closed",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quizlist.New(rt, quizlist.KindCompleted)}
				}
			},
		},
	}

	if h.role == model.RoleStudent {
		items = append(items, components.MenuItem{
			Label:       "JOIN A QUIZ",
			Description: "Enter a code to join and take a quiz",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: take.New(rt)}
				}
			},
		})
	}

	items = append(items, components.MenuItem{
		Label: "SIGN OUT",
		Action: func() tea.Cmd {
			rt.Session.Auth.LogOut()
			rt.Session.Reset()
			return func() tea.Msg {
				return app.NavigateLoginMsg{}
			}
		},
	}, components.MenuItem{
		Label: "EXIT",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	rt := h.rt
	role := h.role
	return func() tea.Msg {
		return gateDoneMsg{err: rt.Gate.RequireAuthenticated(context.Background(), role)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gateDoneMsg:
		h.loading = false
		if msg.err != nil {
			appErr := h.rt.Capture.Handle(msg.err)
			h.errMsg = appErr.UserMessage
		}
		return h, nil

	case app.ReloadMsg:
		h.loading = true
		h.errMsg = ""
		return h, h.Init()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	profile := h.rt.Creds.Get()
	name := ""
	if profile != nil {
		name = profile.Profile.FirstName
	}

	var sections []string
	sections = append(sections, theme.Title.Render(fmt.Sprintf("Welcome back, %s!", name)))
	sections = append(sections, theme.Subtitle.Render(string(h.role)))

	if h.loading {
		sections = append(sections, "", theme.Loading.Render("Loading your dashboard..."))
	} else {
		sections = append(sections, "", h.renderStats(), "")
	}
	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(h.errMsg), "")
	}

	sections = append(sections, h.menu.View())

	content := theme.Card.Width(56).Render(strings.Join(sections, "\n"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderStats summarizes the fetched slices in one line per slice.
func (h *HomeScreen) renderStats() string {
	var parts []string
	parts = append(parts, sliceStat("upcoming", h.rt.Session.IncomingQuizzes.Get()))
	parts = append(parts, sliceStat("completed", h.rt.Session.CompletedQuizzes.Get()))
	if h.role == model.RoleInstructor {
		parts = append(parts, sliceStat("groups", h.rt.Session.Groups.Get()))
	}
	return theme.Body.Render(strings.Join(parts, "   "))
}

func sliceStat[T any](label string, st store.State[[]T]) string {
	switch {
	case st.Loading:
		return fmt.Sprintf("%s: ...", label)
	case st.Err != "":
		return fmt.Sprintf("%s: !", label)
	case st.Value == nil:
		return fmt.Sprintf("%s: -", label)
	default:
		return fmt.Sprintf("%s: %d", label, len(*st.Value))
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "enter", Description: "select"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
