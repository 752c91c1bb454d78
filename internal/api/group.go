package api

import (
	"context"

	"github.com/quizdesk/quizdesk/internal/model"
)

// GroupService covers the group endpoints.
type GroupService struct {
	c *Client
}

// NewGroupService creates a GroupService on the given client.
func NewGroupService(c *Client) *GroupService {
	return &GroupService{c: c}
}

// List returns all groups of the instructor.
func (s *GroupService) List(ctx context.Context) ([]model.Group, error) {
	return Get[[]model.Group](ctx, s.c, "/group")
}

// Get returns a single group with its students.
func (s *GroupService) Get(ctx context.Context, id string) (model.Group, error) {
	return Get[model.Group](ctx, s.c, "/group/"+id)
}

// Create adds a new group.
func (s *GroupService) Create(ctx context.Context, payload model.GroupPayload) (model.Group, error) {
	if err := checkPayload(payload); err != nil {
		return model.Group{}, err
	}
	return Post[model.Group](ctx, s.c, "/group", payload)
}

// Update renames a group or replaces its students.
func (s *GroupService) Update(ctx context.Context, id string, payload model.GroupPayload) (model.Group, error) {
	if err := checkPayload(payload); err != nil {
		return model.Group{}, err
	}
	return Put[model.Group](ctx, s.c, "/group/"+id, payload)
}

// Delete removes a group.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	_, err := Delete[struct{}](ctx, s.c, "/group/"+id)
	return err
}
