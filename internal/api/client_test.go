package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// fakeCreds is an in-memory Credentials implementation.
type fakeCreds struct {
	token   string
	cleared bool
}

func (f *fakeCreds) Token() string { return f.token }
func (f *fakeCreds) Clear()        { f.cleared = true; f.token = "" }

func newTestClient(t *testing.T, handler http.HandlerFunc, creds *fakeCreds, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, creds, opts...)
}

func TestAuthHeaderInjected(t *testing.T) {
	var gotAuth, gotUA string
	creds := &fakeCreds{token: "tok-1"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"data":{"ok":true},"success":true}`))
	}, creds)

	_, err := Get[map[string]any](context.Background(), c, "/ping")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "quizdesk", gotUA)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	seen := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		seen = true
		w.Write([]byte(`[]`))
	}, &fakeCreds{})

	_, err := Get[[]any](context.Background(), c, "/ping")
	require.NoError(t, err)
	require.True(t, seen)
	assert.Empty(t, gotAuth, "no Authorization header may be sent unauthenticated")
}

func TestEnvelopeUnwrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"_id":"a"},{"_id":"b"}],"message":"ok","success":true}`))
	}, &fakeCreds{})

	got, err := Get[[]map[string]any](context.Background(), c, "/list")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["_id"])
}

func TestBareArrayPassedThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"a"}]`))
	}, &fakeCreds{})

	got, err := Get[[]map[string]any](context.Background(), c, "/list")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestBareObjectPassedThrough(t *testing.T) {
	// An object without data or success fields is itself the payload.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"q1","title":"T"}`))
	}, &fakeCreds{})

	got, err := Get[map[string]any](context.Background(), c, "/quiz")
	require.NoError(t, err)
	assert.Equal(t, "q1", got["_id"])
}

func TestScalarBodyRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"just a string"`))
	}, &fakeCreds{})

	_, err := Get[any](context.Background(), c, "/weird")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.UnexpectedError, appErr.Type)
	assert.False(t, appErr.Recoverable)
}

func TestDiscardedPayloadNeverDecoded(t *testing.T) {
	// Mutating endpoints echo back the affected records. A caller that
	// discards the payload must still see a clean success.
	bodies := []string{
		`{"data":[],"success":true}`,
		`{"data":{"_id":"s1","group":"g1"},"message":"moved","success":true}`,
	}

	for _, body := range bodies {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}, &fakeCreds{token: "tok"})

		_, err := Put[struct{}](context.Background(), c, "/student/s1/g1", struct{}{})
		assert.NoError(t, err, "body %s", body)
	}
}

func TestEmptyBodyYieldsZero(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, &fakeCreds{})

	got, err := Get[map[string]any](context.Background(), c, "/empty")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnauthorizedClearsCredentialAndFiresHook(t *testing.T) {
	creds := &fakeCreds{token: "stale"}
	hookFired := false

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"jwt expired","success":false}`))
	}, creds, WithAuthFailureHook(func() { hookFired = true }))

	_, err := Get[any](context.Background(), c, "/quiz/incomming")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.AuthenticationError, appErr.Type)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "jwt expired", appErr.Message, "server message is preferred")
	assert.False(t, appErr.Recoverable)
	assert.True(t, creds.cleared, "401 must clear the stored credential")
	assert.True(t, hookFired, "401 must fire the auth-failure hook")
}

func TestStatusTaxonomy(t *testing.T) {
	tests := []struct {
		status   int
		wantType apperr.Type
	}{
		{http.StatusForbidden, apperr.AuthorizationError},
		{http.StatusNotFound, apperr.NotFoundError},
		{http.StatusRequestTimeout, apperr.TimeoutError},
		{http.StatusUnprocessableEntity, apperr.ValidationError},
		{http.StatusInternalServerError, apperr.ServerError},
		{http.StatusBadGateway, apperr.ServerError},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}, &fakeCreds{})

		_, err := Get[any](context.Background(), c, "/x")
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr, "status %d", tt.status)
		assert.Equal(t, tt.wantType, appErr.Type, "status %d", tt.status)
	}
}

func TestNon401DoesNotClearCredential(t *testing.T) {
	creds := &fakeCreds{token: "tok"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, creds)

	_, err := Get[any](context.Background(), c, "/x")
	require.Error(t, err)
	assert.False(t, creds.cleared)
}

func TestTimeoutClassified(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, &fakeCreds{}, WithTimeout(20*time.Millisecond))

	_, err := Get[any](context.Background(), c, "/slow")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.TimeoutError, appErr.Type)
	assert.True(t, appErr.Recoverable)
}

func TestConnectionErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	c := NewClient(url, &fakeCreds{})
	_, err := Get[any](context.Background(), c, "/x")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.NetworkError, appErr.Type)
	assert.True(t, appErr.Recoverable)
}

func TestRequestInterceptorAborts(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, &fakeCreds{}, WithRequestInterceptor(func(*http.Request) error {
		return errors.New("blocked")
	}))

	_, err := Get[any](context.Background(), c, "/x")
	require.Error(t, err)
	assert.False(t, called, "the request must not reach the server")
}

func TestResponseInterceptorSeesEveryResponse(t *testing.T) {
	var seenStatus int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, &fakeCreds{}, WithResponseInterceptor(func(resp *http.Response) error {
		seenStatus = resp.StatusCode
		return nil
	}))

	_, err := Get[[]any](context.Background(), c, "/x")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, seenStatus)
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		gotBody = b
		w.Write([]byte(`{"data":{"_id":"new"},"success":true}`))
	}, &fakeCreds{})

	got, err := Post[map[string]any](context.Background(), c, "/thing", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"k":"v"}`, string(gotBody))
	assert.Equal(t, "new", got["_id"])
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "nope", serverMessage([]byte(`{"message":"nope","success":false}`)))
	assert.Empty(t, serverMessage([]byte(`not json`)))
	assert.Empty(t, serverMessage(nil))
}
