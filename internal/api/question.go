package api

import (
	"context"

	"github.com/quizdesk/quizdesk/internal/model"
)

// QuestionService covers the question-bank endpoints.
type QuestionService struct {
	c *Client
}

// NewQuestionService creates a QuestionService on the given client.
func NewQuestionService(c *Client) *QuestionService {
	return &QuestionService{c: c}
}

// List returns the instructor's question bank.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	return Get[[]model.Question](ctx, s.c, "/question")
}

// Get returns a single question.
func (s *QuestionService) Get(ctx context.Context, id string) (model.Question, error) {
	return Get[model.Question](ctx, s.c, "/question/"+id)
}

// Create adds a question to the bank.
func (s *QuestionService) Create(ctx context.Context, payload model.QuestionPayload) (model.Question, error) {
	if err := checkPayload(payload); err != nil {
		return model.Question{}, err
	}
	return Post[model.Question](ctx, s.c, "/question", payload)
}

// Update edits a question.
func (s *QuestionService) Update(ctx context.Context, id string, payload model.QuestionPayload) (model.Question, error) {
	if err := checkPayload(payload); err != nil {
		return model.Question{}, err
	}
	return Put[model.Question](ctx, s.c, "/question/"+id, payload)
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	_, err := Delete[struct{}](ctx, s.c, "/question/"+id)
	return err
}
