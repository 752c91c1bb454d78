package store

import (
	"github.com/quizdesk/quizdesk/internal/credstore"
	"github.com/quizdesk/quizdesk/internal/model"
)

// Session is the root of all reactive client state. Views read slices;
// the orchestrator and the auth flows write them.
type Session struct {
	Auth             *AuthSlice
	Groups           *Slice[[]model.Group]
	Students         *Slice[[]model.StudentRef]
	IncomingQuizzes  *Slice[[]model.Quiz]
	CompletedQuizzes *Slice[[]model.Quiz]
}

// NewSession creates an empty session bound to the credential store.
func NewSession(creds *credstore.Store) *Session {
	return &Session{
		Auth:             &AuthSlice{slice: NewSlice[model.Credential](), creds: creds},
		Groups:           NewSlice[[]model.Group](),
		Students:         NewSlice[[]model.StudentRef](),
		IncomingQuizzes:  NewSlice[[]model.Quiz](),
		CompletedQuizzes: NewSlice[[]model.Quiz](),
	}
}

// Reset clears every slice. Used on logout and for test isolation.
func (s *Session) Reset() {
	s.Auth.slice.Clear()
	s.Groups.Clear()
	s.Students.Clear()
	s.IncomingQuizzes.Clear()
	s.CompletedQuizzes.Clear()
}

// AuthSlice is the auth region of the session. Unlike the data slices it
// has persistence side effects: committing a credential saves it durably
// and logging out destroys the stored record.
type AuthSlice struct {
	slice *Slice[model.Credential]
	creds *credstore.Store
}

// Hydrate loads the durable credential into the slice at startup.
func (a *AuthSlice) Hydrate() *model.Credential {
	cred := a.creds.Load()
	if cred != nil {
		a.slice.Set(*cred)
	}
	return cred
}

// SetCredential commits a credential to the slice and saves it durably.
func (a *AuthSlice) SetCredential(cred *model.Credential) error {
	if err := a.creds.Save(cred); err != nil {
		return err
	}
	a.slice.Set(*cred)
	return nil
}

// LogOut clears the slice and destroys the stored credential.
func (a *AuthSlice) LogOut() {
	a.creds.Clear()
	a.slice.Clear()
}

// Get returns the auth snapshot.
func (a *AuthSlice) Get() State[model.Credential] {
	return a.slice.Get()
}

// SetLoading flips the auth loading flag.
func (a *AuthSlice) SetLoading(loading bool) {
	a.slice.SetLoading(loading)
}

// SetError records an auth failure.
func (a *AuthSlice) SetError(msg string) {
	a.slice.SetError(msg)
}

// Subscribe registers an auth subscriber.
func (a *AuthSlice) Subscribe(fn Subscriber[model.Credential]) func() {
	return a.slice.Subscribe(fn)
}
