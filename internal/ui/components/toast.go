package components

import (
	"image/color"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/ui/theme"
)

// Toast renders a transient error notification colored by severity.
type Toast struct {
	Message  string
	Severity apperr.Severity
	Width    int
}

// NewToast creates a toast from a surfaced error.
func NewToast(e *apperr.Error, width int) Toast {
	return Toast{
		Message:  e.UserMessage,
		Severity: e.Severity,
		Width:    width,
	}
}

func (t Toast) color() color.Color {
	switch t.Severity {
	case apperr.SeverityCritical, apperr.SeverityHigh:
		return theme.Error
	case apperr.SeverityMedium:
		return theme.Warning
	default:
		return theme.TextDim
	}
}

// View renders the toast box.
func (t Toast) View() string {
	style := theme.Toast.
		BorderForeground(t.color()).
		Foreground(theme.Text)
	if t.Width > 0 {
		style = style.MaxWidth(t.Width)
	}
	return style.Render(t.Message)
}
