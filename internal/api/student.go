package api

import (
	"context"

	"github.com/quizdesk/quizdesk/internal/model"
)

// StudentService covers the student endpoints.
type StudentService struct {
	c *Client
}

// NewStudentService creates a StudentService on the given client.
func NewStudentService(c *Client) *StudentService {
	return &StudentService{c: c}
}

// List returns all students visible to the instructor.
func (s *StudentService) List(ctx context.Context) ([]model.StudentRef, error) {
	return Get[[]model.StudentRef](ctx, s.c, "/student")
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (model.StudentRef, error) {
	return Get[model.StudentRef](ctx, s.c, "/student/"+id)
}

// TopFive returns the five best-ranked students.
func (s *StudentService) TopFive(ctx context.Context) ([]model.StudentRef, error) {
	return Get[[]model.StudentRef](ctx, s.c, "/student/top-five")
}

// WithoutGroup returns students not yet assigned to any group.
func (s *StudentService) WithoutGroup(ctx context.Context) ([]model.StudentRef, error) {
	return Get[[]model.StudentRef](ctx, s.c, "/student/without-group")
}

// MoveToGroup assigns a student to a group.
func (s *StudentService) MoveToGroup(ctx context.Context, studentID, groupID string) error {
	_, err := Put[struct{}](ctx, s.c, "/student/"+studentID+"/"+groupID, struct{}{})
	return err
}

// RemoveFromGroup takes a student out of a group.
func (s *StudentService) RemoveFromGroup(ctx context.Context, studentID, groupID string) error {
	_, err := Delete[struct{}](ctx, s.c, "/student/"+studentID+"/"+groupID)
	return err
}
