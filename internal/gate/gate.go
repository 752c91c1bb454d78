// Package gate guards protected screens: it checks the stored credential
// before anything renders, redirects unauthenticated or wrong-role
// visitors to login, and kicks off the role-appropriate data fetches.
package gate

import (
	"context"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/credstore"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/orchestrate"
)

// Navigator moves the user between surfaces. The TUI pushes screens; the
// CLI prints instructions and exits.
type Navigator interface {
	ToLogin()
}

// Gate performs declarative access checks against the credential store.
type Gate struct {
	creds *credstore.Store
	orch  *orchestrate.Orchestrator
	nav   Navigator
}

// New creates a Gate.
func New(creds *credstore.Store, orch *orchestrate.Orchestrator, nav Navigator) *Gate {
	return &Gate{creds: creds, orch: orch, nav: nav}
}

// RequireAuthenticated admits only users holding a credential for the
// given role (any role when role is empty). On admission the
// role-appropriate fetches are dispatched before returning; the caller
// must not render until this resolves. On refusal the navigator is sent
// to login and an AUTHENTICATION_ERROR returned.
func (g *Gate) RequireAuthenticated(ctx context.Context, role model.Role) error {
	cred := g.creds.Get()
	if cred == nil {
		cred = g.creds.Load()
	}

	switch {
	case !cred.Valid():
		return g.refuse("not logged in")
	case g.creds.TokenExpired(time.Now()):
		g.creds.Clear()
		return g.refuse("session expired")
	case role != "" && cred.Profile.Role != role:
		return g.refuse("role mismatch")
	}

	switch cred.Profile.Role {
	case model.RoleInstructor:
		if err := g.orch.FetchAllQuizzes(ctx, cred.Profile.Role); err != nil {
			return err
		}
		if err := g.orch.FetchGroups(ctx); err != nil {
			return err
		}
		return g.orch.FetchTopStudents(ctx)
	default:
		return g.orch.FetchAllQuizzes(ctx, cred.Profile.Role)
	}
}

// RequireStudent admits only students.
func (g *Gate) RequireStudent(ctx context.Context) error {
	return g.RequireAuthenticated(ctx, model.RoleStudent)
}

func (g *Gate) refuse(reason string) error {
	if g.nav != nil {
		g.nav.ToLogin()
	}
	return apperr.New(reason, apperr.Options{
		Type:        apperr.AuthenticationError,
		Severity:    apperr.SeverityHigh,
		Recoverable: apperr.Bool(false),
	})
}
