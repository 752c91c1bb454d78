package take

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
	"github.com/quizdesk/quizdesk/internal/ui/components"
	"github.com/quizdesk/quizdesk/internal/ui/layout"
	"github.com/quizdesk/quizdesk/internal/ui/theme"
)

// phase tracks where the student is in the take flow.
type phase int

const (
	phaseCode phase = iota
	phaseJoining
	phaseLoading
	phaseAnswering
	phaseSubmitting
	phaseDone
)

// joinedMsg carries the outcome of joining by code.
type joinedMsg struct {
	quiz model.Quiz
	err  error
}

// questionsMsg carries the fetched answerless questions.
type questionsMsg struct {
	questions []model.Question
	err       error
}

// submittedMsg carries the grading outcome.
type submittedMsg struct {
	result model.SubmitResult
	err    error
}

// TakeScreen walks a student through join, answer and submit.
type TakeScreen struct {
	rt *app.Runtime

	phase     phase
	code      components.TextInput
	quiz      model.Quiz
	questions []model.Question
	index     int
	picker    components.MultiChoice
	answers   []model.Answer
	result    model.SubmitResult
	errMsg    string
}

var _ screen.Screen = (*TakeScreen)(nil)

// New creates the take-a-quiz screen starting at code entry.
func New(rt *app.Runtime) *TakeScreen {
	return &TakeScreen{
		rt:   rt,
		code: components.NewTextInput("quiz code", false, 16),
	}
}

func (t *TakeScreen) Title() string {
	if t.quiz.Title != "" {
		return t.quiz.Title
	}
	return "Join a quiz"
}

func (t *TakeScreen) Init() tea.Cmd {
	return t.code.Init()
}

func (t *TakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case joinedMsg:
		if msg.err != nil {
			t.phase = phaseCode
			t.errMsg = t.rt.Capture.Handle(msg.err).UserMessage
			return t, nil
		}
		t.quiz = msg.quiz
		t.phase = phaseLoading
		return t, t.fetchQuestions()

	case questionsMsg:
		if msg.err != nil {
			t.phase = phaseCode
			t.errMsg = t.rt.Capture.Handle(msg.err).UserMessage
			return t, nil
		}
		if len(msg.questions) == 0 {
			t.phase = phaseCode
			t.errMsg = "This quiz has no questions yet."
			return t, nil
		}
		t.questions = msg.questions
		t.index = 0
		t.answers = t.answers[:0]
		t.picker = components.NewMultiChoice(t.questions[0])
		t.phase = phaseAnswering
		return t, nil

	case submittedMsg:
		if msg.err != nil {
			t.phase = phaseAnswering
			t.errMsg = t.rt.Capture.Handle(msg.err).UserMessage
			return t, nil
		}
		t.result = msg.result
		t.phase = phaseDone
		return t, nil

	case tea.KeyPressMsg:
		return t.handleKey(msg)
	}

	return t, nil
}

func (t *TakeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch t.phase {
	case phaseCode:
		if msg.String() == "enter" {
			return t, t.join()
		}
		if msg.String() == "esc" {
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		t.code, cmd = t.code.Update(msg)
		return t, cmd

	case phaseAnswering:
		if msg.String() == "esc" {
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		t.picker, cmd = t.picker.Update(msg)
		if t.picker.Answered() {
			return t.advance()
		}
		return t, cmd

	case phaseDone:
		return t, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return t, nil
}

// advance records the locked answer and moves to the next question,
// submitting after the last one.
func (t *TakeScreen) advance() (screen.Screen, tea.Cmd) {
	t.answers = append(t.answers, model.Answer{
		QuestionID: t.questions[t.index].ID,
		Answer:     t.picker.Chosen,
	})

	if t.index+1 < len(t.questions) {
		t.index++
		t.picker = components.NewMultiChoice(t.questions[t.index])
		return t, nil
	}

	t.phase = phaseSubmitting
	return t, t.submit()
}

func (t *TakeScreen) join() tea.Cmd {
	code := strings.TrimSpace(t.code.Value())
	if code == "" {
		t.errMsg = "Enter the quiz code."
		return nil
	}
	t.phase = phaseJoining
	t.errMsg = ""
	rt := t.rt

	return func() tea.Msg {
		res, err := rt.Quizzes.Join(context.Background(), model.JoinRequest{Code: code})
		return joinedMsg{quiz: res.Quiz, err: err}
	}
}

func (t *TakeScreen) fetchQuestions() tea.Cmd {
	rt := t.rt
	quizID := t.quiz.ID
	return func() tea.Msg {
		qs, err := rt.Quizzes.Questions(context.Background(), quizID)
		return questionsMsg{questions: qs, err: err}
	}
}

func (t *TakeScreen) submit() tea.Cmd {
	rt := t.rt
	quizID := t.quiz.ID
	answers := make([]model.Answer, len(t.answers))
	copy(answers, t.answers)

	return func() tea.Msg {
		res, err := rt.Quizzes.Submit(context.Background(), quizID, model.SubmitRequest{Answers: answers})
		return submittedMsg{result: res, err: err}
	}
}

func (t *TakeScreen) View(width, height int) string {
	var lines []string

	switch t.phase {
	case phaseCode, phaseJoining:
		lines = append(lines, theme.Title.Render("Join a quiz"), "")
		lines = append(lines, theme.Body.Render("Quiz code"))
		lines = append(lines, t.code.View())
		if t.phase == phaseJoining {
			lines = append(lines, "", theme.Loading.Render("Joining..."))
		}

	case phaseLoading:
		lines = append(lines, theme.Title.Render(t.quiz.Title), "")
		lines = append(lines, theme.Loading.Render("Loading questions..."))

	case phaseAnswering, phaseSubmitting:
		lines = append(lines, components.QuestionProgress(t.index+1, len(t.questions), 48).View(), "")
		lines = append(lines, t.picker.View())
		if t.phase == phaseSubmitting {
			lines = append(lines, "", theme.Loading.Render("Submitting answers..."))
		}

	case phaseDone:
		lines = append(lines, theme.Title.Render("Quiz complete!"), "")
		lines = append(lines, theme.Body.Render(fmt.Sprintf("Your score: %.1f", t.result.Score)))
		lines = append(lines, "", theme.Hint.Render("Press any key to go back."))
	}

	if t.errMsg != "" {
		lines = append(lines, "", theme.ErrorText.Render(t.errMsg))
	}

	card := theme.Card.Width(60).Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (t *TakeScreen) KeyHints() []layout.KeyHint {
	switch t.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "choose"},
			{Key: "a-d", Description: "jump"},
			{Key: "enter", Description: "lock in"},
		}
	default:
		return []layout.KeyHint{
			{Key: "enter", Description: "confirm"},
			{Key: "esc", Description: "back"},
		}
	}
}
