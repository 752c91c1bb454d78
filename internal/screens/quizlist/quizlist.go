package quizlist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/boundary"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/router"
	"github.com/quizdesk/quizdesk/internal/screen"
	"github.com/quizdesk/quizdesk/internal/store"
	"github.com/quizdesk/quizdesk/internal/ui/layout"
	"github.com/quizdesk/quizdesk/internal/ui/theme"
)

// Kind selects which quiz slice the screen renders.
type Kind int

const (
	KindIncoming Kind = iota
	KindCompleted
)

func (k Kind) title() string {
	if k == KindIncoming {
		return "Upcoming quizzes"
	}
	return "Completed quizzes"
}

// fetchDoneMsg signals that the slice fetch resolved.
type fetchDoneMsg struct {
	err error
}

// QuizListScreen renders one quiz slice with its loading, stale-data
// and error presentations.
type QuizListScreen struct {
	rt       *app.Runtime
	kind     Kind
	bnd      *boundary.Boundary
	selected int
}

var _ screen.Screen = (*QuizListScreen)(nil)

// New creates a quiz list screen over the given slice. The boundary's
// retry callback reloads through the event stream, so the refetch runs
// on the bubbletea loop rather than the timer goroutine.
func New(rt *app.Runtime, kind Kind) *QuizListScreen {
	s := &QuizListScreen{rt: rt, kind: kind}
	s.bnd = boundary.New("QuizError", rt.Cfg.MaxRetries, rt.Log, func() {
		select {
		case rt.Events <- app.ReloadMsg{}:
		default:
		}
	})
	return s
}

func (s *QuizListScreen) slice() *store.Slice[[]model.Quiz] {
	if s.kind == KindIncoming {
		return s.rt.Session.IncomingQuizzes
	}
	return s.rt.Session.CompletedQuizzes
}

func (s *QuizListScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *QuizListScreen) fetch() tea.Cmd {
	rt := s.rt
	kind := s.kind
	return func() tea.Msg {
		var err error
		if kind == KindIncoming {
			err = rt.Orch.FetchIncomingQuizzes(context.Background())
		} else {
			err = rt.Orch.FetchCompletedQuizzes(context.Background(), rt.Creds.Role())
		}
		return fetchDoneMsg{err: err}
	}
}

func (s *QuizListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		if msg.err != nil {
			s.bnd.Capture(msg.err)
		} else {
			s.bnd.Dismiss()
		}
		return s, nil

	case app.ReloadMsg:
		return s, s.fetch()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizListScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	state, _, _ := s.bnd.Snapshot()
	if state == boundary.StateCapturing || state == boundary.StateFatal {
		return s.handleBoundaryKey(msg)
	}

	st := s.slice().Get()
	count := 0
	if st.Value != nil {
		count = len(*st.Value)
	}

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < count-1 {
			s.selected++
		}
	case "r":
		return s, s.fetch()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// handleBoundaryKey maps number keys to the boundary's offered actions.
func (s *QuizListScreen) handleBoundaryKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	actions := s.bnd.Actions()
	idx, err := strconv.Atoi(msg.String())
	if err != nil || idx < 1 || idx > len(actions) {
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch actions[idx-1].Kind {
	case boundary.ActionRetry:
		s.bnd.Retry()
	case boundary.ActionRefresh:
		s.bnd.Dismiss()
		return s, s.fetch()
	case boundary.ActionReport:
		_, bErr, _ := s.bnd.Snapshot()
		if bErr != nil {
			s.rt.Log.Error("user reported quiz list failure", bErr)
		}
		s.bnd.Dismiss()
	case boundary.ActionDismiss:
		s.bnd.Dismiss()
	case boundary.ActionSaveDraft, boundary.ActionExitQuiz, boundary.ActionGoBack, boundary.ActionGoHome:
		s.bnd.Dismiss()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizListScreen) View(width, height int) string {
	state, bErr, retries := s.bnd.Snapshot()
	if state == boundary.StateCapturing || state == boundary.StateFatal {
		return s.viewBoundary(width, height, state, bErr, retries)
	}
	if state == boundary.StateRetrying {
		return centered(width, height, theme.Loading.Render("Retrying..."))
	}

	st := s.slice().Get()

	var lines []string
	lines = append(lines, theme.Title.Render(s.kind.title()), "")

	switch {
	case st.Loading && st.Value == nil:
		lines = append(lines, theme.Loading.Render("Loading..."))
	case st.Value == nil:
		lines = append(lines, theme.Hint.Render("Nothing loaded yet. Press r to refresh."))
	default:
		if st.Loading {
			// Stale presentation: keep the last list visible while
			// the refresh is in flight.
			lines = append(lines, theme.Loading.Render("Refreshing..."), "")
		}
		if len(*st.Value) == 0 {
			lines = append(lines, theme.Hint.Render("No quizzes here."))
		}
		for i, q := range *st.Value {
			lines = append(lines, s.renderRow(i, q, st.Loading))
		}
		if !st.LastFetched.IsZero() {
			lines = append(lines, "", theme.Hint.Render(
				"Last updated "+st.LastFetched.Format("15:04:05")))
		}
	}

	if st.Err != "" {
		lines = append(lines, "", theme.ErrorText.Render(st.Err))
	}

	card := theme.Card.Width(64).Render(strings.Join(lines, "\n"))
	return centered(width, height, card)
}

func (s *QuizListScreen) renderRow(i int, q model.Quiz, stale bool) string {
	line := fmt.Sprintf("%-32s %s  %2d questions", truncate(q.Title, 32), truncate(q.Schedule, 16), q.QuestionsCount)

	switch {
	case stale:
		return theme.Stale.Render("  " + line)
	case i == s.selected:
		return theme.Selected.Render("▸ " + line)
	default:
		return theme.Unselected.Render("  " + line)
	}
}

func (s *QuizListScreen) viewBoundary(width, height int, state boundary.State, bErr *apperr.Error, retries int) string {
	var lines []string
	lines = append(lines, theme.ErrorText.Render("Something went wrong"), "")

	if bErr != nil {
		lines = append(lines, theme.Body.Render(bErr.UserMessage))
		if s.rt.Cfg.ShowErrorDetails && bErr.DeveloperMessage != "" {
			lines = append(lines, theme.Hint.Render(bErr.DeveloperMessage))
		}
	}
	if state == boundary.StateFatal {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("Gave up after %d attempts.", retries)))
	}
	lines = append(lines, "")

	for i, a := range s.bnd.Actions() {
		lines = append(lines, theme.Body.Render(fmt.Sprintf("  %d) %s", i+1, a.Label)))
	}

	card := theme.Card.Width(56).Render(strings.Join(lines, "\n"))
	return centered(width, height, card)
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func (s *QuizListScreen) Title() string {
	return s.kind.title()
}

func (s *QuizListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "r", Description: "refresh"},
		{Key: "esc", Description: "back"},
	}
}
