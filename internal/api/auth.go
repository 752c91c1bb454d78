package api

import (
	"context"

	"github.com/quizdesk/quizdesk/internal/model"
)

// AuthService covers the credential lifecycle endpoints.
type AuthService struct {
	c *Client
}

// NewAuthService creates an AuthService on the given client.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

// Login exchanges email and password for a credential.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.Credential, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	cred, err := Post[model.Credential](ctx, s.c, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// Register creates an account and returns its credential.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.Credential, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	cred, err := Post[model.Credential](ctx, s.c, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// ForgotPassword requests a reset seed to be mailed.
func (s *AuthService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	if err := checkPayload(req); err != nil {
		return err
	}
	_, err := Post[struct{}](ctx, s.c, "/auth/forgot-password", req)
	return err
}

// ResetPassword completes a forgot-password flow with the mailed seed.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if err := checkPayload(req); err != nil {
		return err
	}
	_, err := Post[struct{}](ctx, s.c, "/auth/reset-password", req)
	return err
}

// ChangePassword rotates the password of the logged-in user.
func (s *AuthService) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	if err := checkPayload(req); err != nil {
		return err
	}
	_, err := Post[struct{}](ctx, s.c, "/auth/change-password", req)
	return err
}
