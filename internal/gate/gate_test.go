package gate

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/quizdesk/quizdesk/internal/api"
	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/credstore"
	"github.com/quizdesk/quizdesk/internal/errlog"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/orchestrate"
	"github.com/quizdesk/quizdesk/internal/store"
)

type fakeNav struct {
	mu     sync.Mutex
	logins int
}

func (n *fakeNav) ToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logins++
}

func (n *fakeNav) loginCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.logins
}

type harness struct {
	gate    *Gate
	creds   *credstore.Store
	nav     *fakeNav
	session *store.Session
	hits    map[string]int
	mu      sync.Mutex
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{nav: &fakeNav{}, hits: make(map[string]int)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.hits[r.URL.Path]++
		h.mu.Unlock()
		w.Write([]byte(`{"data":[],"success":true}`))
	}))
	t.Cleanup(srv.Close)

	h.creds = credstore.New(filepath.Join(t.TempDir(), "userData.json"))
	h.session = store.NewSession(h.creds)
	client := api.NewClient(srv.URL, h.creds)
	log := errlog.New(errlog.Config{Level: errlog.LevelError})
	orch := orchestrate.New(h.session,
		api.NewQuizService(client),
		api.NewGroupService(client),
		api.NewStudentService(client),
		log)
	h.gate = New(h.creds, orch, h.nav)
	return h
}

func (h *harness) pathHits(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[path]
}

func (h *harness) loginAs(t *testing.T, role model.Role, token string) {
	t.Helper()
	err := h.creds.Save(&model.Credential{
		AccessToken: token,
		Profile:     model.Profile{ID: "u1", Email: "u@test.dev", Role: role},
	})
	if err != nil {
		t.Fatalf("save credential: %v", err)
	}
}

// unsignedJWT builds a token whose exp claim decodes without a secret.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := enc(map[string]string{"alg": "HS256", "typ": "JWT"})
	claims := enc(map[string]int64{"exp": exp.Unix()})
	return header + "." + claims + ".x"
}

func TestRefusesWithoutCredential(t *testing.T) {
	h := newHarness(t)

	err := h.gate.RequireAuthenticated(context.Background(), "")

	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Type != apperr.AuthenticationError {
		t.Fatalf("expected AUTHENTICATION_ERROR, got %v", err)
	}
	if appErr.Recoverable {
		t.Error("refusal must be non-recoverable")
	}
	if h.nav.loginCount() != 1 {
		t.Errorf("expected one login redirect, got %d", h.nav.loginCount())
	}
	if h.pathHits("/quiz/incomming") != 0 {
		t.Error("no fetch may be dispatched on refusal")
	}
}

func TestRefusesExpiredTokenAndClearsIt(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, model.RoleStudent, unsignedJWT(t, time.Now().Add(-time.Hour)))

	err := h.gate.RequireAuthenticated(context.Background(), "")
	if err == nil {
		t.Fatal("expected refusal")
	}
	if h.nav.loginCount() != 1 {
		t.Errorf("expected login redirect, got %d", h.nav.loginCount())
	}
	if h.creds.Get() != nil {
		t.Error("expired credential must be destroyed")
	}
}

func TestRefusesRoleMismatch(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, model.RoleStudent, unsignedJWT(t, time.Now().Add(time.Hour)))

	err := h.gate.RequireAuthenticated(context.Background(), model.RoleInstructor)
	if err == nil {
		t.Fatal("expected refusal")
	}
	if h.pathHits("/quiz/incomming") != 0 {
		t.Error("no fetch may be dispatched on refusal")
	}
}

func TestStudentAdmissionFetchesQuizzesOnly(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, model.RoleStudent, unsignedJWT(t, time.Now().Add(time.Hour)))

	if err := h.gate.RequireAuthenticated(context.Background(), ""); err != nil {
		t.Fatalf("expected admission: %v", err)
	}

	if h.pathHits("/quiz/incomming") != 1 || h.pathHits("/quiz/completed") != 1 {
		t.Errorf("expected both quiz fetches, got %v", h.hits)
	}
	if h.pathHits("/group") != 0 || h.pathHits("/student/top-five") != 0 {
		t.Errorf("student admission must not dispatch instructor fetches: %v", h.hits)
	}
	if h.nav.loginCount() != 0 {
		t.Error("admission must not redirect")
	}
}

func TestInstructorAdmissionFetchesDashboard(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, model.RoleInstructor, unsignedJWT(t, time.Now().Add(time.Hour)))

	if err := h.gate.RequireAuthenticated(context.Background(), model.RoleInstructor); err != nil {
		t.Fatalf("expected admission: %v", err)
	}

	for _, path := range []string{"/quiz/incomming", "/quiz/completed", "/group", "/student/top-five"} {
		if h.pathHits(path) != 1 {
			t.Errorf("expected one fetch of %s, got %d", path, h.pathHits(path))
		}
	}
	if st := h.session.Groups.Get(); st.Value == nil {
		t.Error("groups slice must be committed on admission")
	}
}

func TestOpaqueTokenAdmits(t *testing.T) {
	// A token jwt cannot parse is treated as unexpired: expiry here is
	// advisory and the server remains the authority.
	h := newHarness(t)
	h.loginAs(t, model.RoleStudent, "opaque-token")

	if err := h.gate.RequireStudent(context.Background()); err != nil {
		t.Fatalf("expected admission: %v", err)
	}
}

func TestRequireStudentRejectsInstructor(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, model.RoleInstructor, unsignedJWT(t, time.Now().Add(time.Hour)))

	if err := h.gate.RequireStudent(context.Background()); err == nil {
		t.Fatal("expected refusal")
	}
}
