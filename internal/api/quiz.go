package api

import (
	"context"

	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/normalize"
)

// QuizService covers the quiz endpoints.
type QuizService struct {
	c *Client
}

// NewQuizService creates a QuizService on the given client.
func NewQuizService(c *Client) *QuizService {
	return &QuizService{c: c}
}

// Incoming lists upcoming quizzes. The server path keeps its historical
// spelling; do not "fix" it.
func (s *QuizService) Incoming(ctx context.Context) ([]model.Quiz, error) {
	return s.quizList(ctx, "/quiz/incomming")
}

// Completed lists completed quizzes. The role is advisory only: the
// server serves the same path to both roles.
func (s *QuizService) Completed(ctx context.Context, _ model.Role) ([]model.Quiz, error) {
	return s.quizList(ctx, "/quiz/completed")
}

// quizList fetches a quiz list and repairs schema drift before the typed
// model is decoded. A non-array payload yields an empty list.
func (s *QuizService) quizList(ctx context.Context, path string) ([]model.Quiz, error) {
	raw, err := Get[[]any](ctx, s.c, path)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []model.Quiz{}, nil
	}
	quizzes, err := normalize.DecodeQuizArray(raw)
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// Create publishes a new quiz.
func (s *QuizService) Create(ctx context.Context, payload model.QuizPayload) (model.Quiz, error) {
	if err := checkPayload(payload); err != nil {
		return model.Quiz{}, err
	}
	raw, err := Post[map[string]any](ctx, s.c, "/quiz", payload)
	if err != nil {
		return model.Quiz{}, err
	}
	return normalize.DecodeQuiz(raw)
}

// Update edits an existing quiz.
func (s *QuizService) Update(ctx context.Context, id string, payload model.QuizPayload) (model.Quiz, error) {
	if err := checkPayload(payload); err != nil {
		return model.Quiz{}, err
	}
	raw, err := Put[map[string]any](ctx, s.c, "/quiz/"+id, payload)
	if err != nil {
		return model.Quiz{}, err
	}
	return normalize.DecodeQuiz(raw)
}

// Delete removes a quiz.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	_, err := Delete[struct{}](ctx, s.c, "/quiz/"+id)
	return err
}

// Join enrolls the student into a quiz by its code.
func (s *QuizService) Join(ctx context.Context, req model.JoinRequest) (model.JoinResult, error) {
	if err := checkPayload(req); err != nil {
		return model.JoinResult{}, err
	}
	return Post[model.JoinResult](ctx, s.c, "/quiz/join", req)
}

// Questions fetches the questions of a quiz with answers stripped, for a
// live take.
func (s *QuizService) Questions(ctx context.Context, quizID string) ([]model.Question, error) {
	return Get[[]model.Question](ctx, s.c, "/quiz/without-answers/"+quizID)
}

// Submit sends the student's answers for a quiz.
func (s *QuizService) Submit(ctx context.Context, quizID string, req model.SubmitRequest) (model.SubmitResult, error) {
	if err := checkPayload(req); err != nil {
		return model.SubmitResult{}, err
	}
	return Post[model.SubmitResult](ctx, s.c, "/quiz/submit/"+quizID, req)
}

// Results lists quiz results. Instructor only.
func (s *QuizService) Results(ctx context.Context) ([]model.QuizResult, error) {
	return Get[[]model.QuizResult](ctx, s.c, "/quiz/result")
}
