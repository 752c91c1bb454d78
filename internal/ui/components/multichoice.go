package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/ui/theme"
)

// ChoiceOption is a single selectable answer.
type ChoiceOption struct {
	Key  model.AnswerKey
	Text string
}

// MultiChoice is an answer picker for a quiz question. Correctness is
// never known on the client; the component only records the chosen key.
type MultiChoice struct {
	Question string
	Options  []ChoiceOption
	Selected int
	Locked   bool
	Chosen   model.AnswerKey
}

// NewMultiChoice builds a picker from a question's options in A..D order.
func NewMultiChoice(q model.Question) MultiChoice {
	opts := make([]ChoiceOption, 0, 4)
	for _, key := range []model.AnswerKey{model.AnswerA, model.AnswerB, model.AnswerC, model.AnswerD} {
		if text := q.Options.ByKey(key); text != "" {
			opts = append(opts, ChoiceOption{Key: key, Text: text})
		}
	}
	return MultiChoice{
		Question: q.Title,
		Options:  opts,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "a", "b", "c", "d":
		want := model.AnswerKey(upper(kmsg.String()))
		for i, opt := range m.Options {
			if opt.Key == want {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Options) {
			m.Locked = true
			m.Chosen = m.Options[m.Selected].Key
		}
	}

	return m, nil
}

func upper(s string) string {
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0] - 32)
	}
	return s
}

// View renders the picker.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Locked {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, opt.Key, opt.Text)

		switch {
		case m.Locked && opt.Key == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case m.Locked:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// Answered reports whether a choice has been locked in.
func (m MultiChoice) Answered() bool {
	return m.Locked
}
