package boundary

import "github.com/quizdesk/quizdesk/internal/apperr"

// ActionKind identifies a recovery action a boundary UI can offer.
type ActionKind string

const (
	ActionRetry     ActionKind = "retry"
	ActionRefresh   ActionKind = "refresh"
	ActionReport    ActionKind = "report"
	ActionDismiss   ActionKind = "dismiss"
	ActionSaveDraft ActionKind = "save-draft"
	ActionExitQuiz  ActionKind = "exit-quiz"
	ActionGoBack    ActionKind = "go-back"
	ActionGoHome    ActionKind = "go-home"
)

// Action is one recovery option shown to the user.
type Action struct {
	Kind  ActionKind
	Label string
}

// Actions lists the recovery options for the boundary's current error.
// Fatal errors disable retry and force refresh / home / report.
func (b *Boundary) Actions() []Action {
	b.mu.Lock()
	state := b.state
	err := b.err
	b.mu.Unlock()

	if state == StateOK || state == StateRetrying {
		return nil
	}

	if state == StateFatal {
		return []Action{
			{Kind: ActionRefresh, Label: "Refresh"},
			{Kind: ActionGoHome, Label: "Go home"},
			{Kind: ActionReport, Label: "Report problem"},
		}
	}

	actions := []Action{
		{Kind: ActionRetry, Label: "Try again"},
		{Kind: ActionRefresh, Label: "Refresh"},
		{Kind: ActionReport, Label: "Report problem"},
		{Kind: ActionDismiss, Label: "Dismiss"},
	}

	if err != nil {
		switch err.Type {
		case apperr.QuizError:
			actions = append(actions,
				Action{Kind: ActionSaveDraft, Label: "Save draft"},
				Action{Kind: ActionExitQuiz, Label: "Exit quiz"},
			)
		case apperr.GroupError, apperr.StudentError, apperr.QuestionError:
			actions = append(actions, Action{Kind: ActionGoBack, Label: "Go back"})
		case apperr.ComponentError:
			actions = append(actions, Action{Kind: ActionGoHome, Label: "Go home"})
		}
	}

	return actions
}
