package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/model"
)

func TestLoginReturnsCredential(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, jsonDecode(r, &gotBody))
		w.Write([]byte(`{
			"data": {
				"accessToken": "tok-1",
				"refreshToken": "ref-1",
				"profile": {"_id":"u1","first_name":"Nour","email":"n@test.dev","role":"Student"}
			},
			"success": true
		}`))
	}, &fakeCreds{})

	cred, err := NewAuthService(c).Login(context.Background(), model.LoginRequest{
		Email:    "n@test.dev",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-1", cred.AccessToken)
	assert.Equal(t, "ref-1", cred.RefreshToken)
	assert.Equal(t, model.RoleStudent, cred.Profile.Role)
	assert.Equal(t, "n@test.dev", gotBody["email"])
}

func TestLoginValidatesBeforeIO(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, &fakeCreds{})
	svc := NewAuthService(c)

	tests := []struct {
		name string
		req  model.LoginRequest
	}{
		{"empty", model.LoginRequest{}},
		{"bad email", model.LoginRequest{Email: "not-an-email", Password: "x"}},
		{"no password", model.LoginRequest{Email: "n@test.dev"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.ValidationError, appErr.Type)
		})
	}
	assert.False(t, called, "invalid payloads must never reach the server")
}

func TestLoginBadCredentials(t *testing.T) {
	creds := &fakeCreds{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password","success":false}`))
	}, creds)

	_, err := NewAuthService(c).Login(context.Background(), model.LoginRequest{
		Email:    "n@test.dev",
		Password: "wrong",
	})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.AuthenticationError, appErr.Type)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestRegisterValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"accessToken":"t","profile":{"role":"Student"}},"success":true}`))
	}, &fakeCreds{})
	svc := NewAuthService(c)

	// Short passwords and unknown roles are rejected locally.
	_, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "a@test.dev",
		Password: "short", Role: model.RoleStudent,
	})
	require.Error(t, err)

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "a@test.dev",
		Password: "longenough", Role: "Admin",
	})
	require.Error(t, err)

	cred, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "a@test.dev",
		Password: "longenough", Role: model.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "t", cred.AccessToken)
}

func TestPasswordFlows(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"message":"done","success":true}`))
	}, &fakeCreds{token: "tok-1"})
	svc := NewAuthService(c)

	require.NoError(t, svc.ForgotPassword(context.Background(), model.ForgotPasswordRequest{
		Email: "n@test.dev",
	}))
	require.NoError(t, svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Email: "n@test.dev", Seed: "1234", Password: "longenough",
	}))
	require.NoError(t, svc.ChangePassword(context.Background(), model.ChangePasswordRequest{
		OldPassword: "oldpassword", NewPassword: "newpassword",
	}))

	assert.Equal(t, []string{
		"/auth/forgot-password",
		"/auth/reset-password",
		"/auth/change-password",
	}, paths)
}
