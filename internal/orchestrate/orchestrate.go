// Package orchestrate drives the role-conditional data-fetch pipeline:
// each fetch walks a slice through loading, calls the API, and commits
// either the payload or the failure. Errors are returned classified so a
// boundary can offer recovery.
package orchestrate

import (
	"context"
	"sync"
	"time"

	"github.com/quizdesk/quizdesk/internal/api"
	"github.com/quizdesk/quizdesk/internal/errlog"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/recovery"
	"github.com/quizdesk/quizdesk/internal/store"
)

// Orchestrator wires the API services to the session store.
type Orchestrator struct {
	session  *store.Session
	quizzes  *api.QuizService
	groups   *api.GroupService
	students *api.StudentService
	log      *errlog.Logger

	maxRetries int
	retryDelay time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetry gives every fetch a retry budget for recoverable failures.
// The default is a single attempt.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(o *Orchestrator) {
		o.maxRetries = maxRetries
		o.retryDelay = baseDelay
	}
}

// New creates an Orchestrator.
func New(session *store.Session, quizzes *api.QuizService, groups *api.GroupService, students *api.StudentService, log *errlog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		session:  session,
		quizzes:  quizzes,
		groups:   groups,
		students: students,
		log:      log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchIncomingQuizzes loads the upcoming quiz list into its slice.
func (o *Orchestrator) FetchIncomingQuizzes(ctx context.Context) error {
	o.session.IncomingQuizzes.SetLoading(true)
	return o.loadIncoming(ctx)
}

// FetchCompletedQuizzes loads the completed quiz list into its slice.
// The role is advisory metadata for logging only.
func (o *Orchestrator) FetchCompletedQuizzes(ctx context.Context, role model.Role) error {
	o.session.CompletedQuizzes.SetLoading(true)
	return o.loadCompleted(ctx, role)
}

// FetchAllQuizzes loads the incoming and completed lists in parallel.
// Both loading flags are raised before either request is issued, and each
// slice completes independently: one branch failing does not disturb the
// other's committed value. The first failure is returned.
func (o *Orchestrator) FetchAllQuizzes(ctx context.Context, role model.Role) error {
	o.session.IncomingQuizzes.SetLoading(true)
	o.session.CompletedQuizzes.SetLoading(true)

	var wg sync.WaitGroup
	var incomingErr, completedErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		incomingErr = o.loadIncoming(ctx)
	}()
	go func() {
		defer wg.Done()
		completedErr = o.loadCompleted(ctx, role)
	}()
	wg.Wait()

	if incomingErr != nil {
		return incomingErr
	}
	return completedErr
}

// FetchGroups loads the instructor's groups into their slice.
func (o *Orchestrator) FetchGroups(ctx context.Context) error {
	o.session.Groups.SetLoading(true)
	return commitSlice(ctx, o, o.session.Groups, "fetch groups", func() ([]model.Group, error) {
		return o.groups.List(ctx)
	})
}

// FetchTopStudents loads the top-five ranking into the students slice.
func (o *Orchestrator) FetchTopStudents(ctx context.Context) error {
	o.session.Students.SetLoading(true)
	return commitSlice(ctx, o, o.session.Students, "fetch top students", func() ([]model.StudentRef, error) {
		return o.students.TopFive(ctx)
	})
}

func (o *Orchestrator) loadIncoming(ctx context.Context) error {
	return commitSlice(ctx, o, o.session.IncomingQuizzes, "fetch incoming quizzes", func() ([]model.Quiz, error) {
		return o.quizzes.Incoming(ctx)
	})
}

func (o *Orchestrator) loadCompleted(ctx context.Context, role model.Role) error {
	return commitSlice(ctx, o, o.session.CompletedQuizzes, "fetch completed quizzes ("+string(role)+")", func() ([]model.Quiz, error) {
		return o.quizzes.Completed(ctx, role)
	})
}

// commitSlice finishes the thunk lifecycle after the caller has raised
// the loading flag: recoverable failures are retried within the budget,
// then exactly one Set or SetError commits the outcome.
func commitSlice[T any](ctx context.Context, o *Orchestrator, slice *store.Slice[T], op string, load func() (T, error)) error {
	res := recovery.Do(ctx, load, o.maxRetries, o.retryDelay, true)
	if res.Err != nil {
		slice.SetError(res.Err.Message)
		o.log.Error("failed to "+op, res.Err)
		return res.Err
	}

	slice.Set(res.Data)
	return nil
}
