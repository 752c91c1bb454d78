// Package store is the in-memory session store. It owns five slices of
// reactive state consumed by the screens; everything else reads snapshots
// and mutates only through the slice actions.
package store

import (
	"sync"
	"time"
)

// State is a point-in-time snapshot of a slice. Value is nil until the
// first successful load. Err is empty when there is no error.
type State[T any] struct {
	Value       *T
	Loading     bool
	Err         string
	LastFetched time.Time
}

// Subscriber is notified synchronously after every slice mutation.
type Subscriber[T any] func(State[T])

// Slice holds one reactive region of session state.
//
// The action semantics mirror each other deliberately: Set commits a
// value, clears the error, and stamps LastFetched; SetLoading(true)
// clears the error; SetError clears loading; Clear resets everything
// but the loading flag.
type Slice[T any] struct {
	mu    sync.Mutex
	state State[T]

	nextSub int
	subs    map[int]Subscriber[T]
}

// NewSlice creates an empty, non-loading slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{subs: make(map[int]Subscriber[T])}
}

// Get returns the current snapshot.
func (s *Slice[T]) Get() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set commits a value: clears loading and error, stamps LastFetched.
func (s *Slice[T]) Set(value T) {
	s.mutate(func(st *State[T]) {
		st.Value = &value
		st.Loading = false
		st.Err = ""
		st.LastFetched = time.Now()
	})
}

// SetLoading flips the loading flag. Entering the loading state clears
// any previous error.
func (s *Slice[T]) SetLoading(loading bool) {
	s.mutate(func(st *State[T]) {
		st.Loading = loading
		if loading {
			st.Err = ""
		}
	})
}

// SetError records a failure and clears loading. The stale value, if any,
// is kept for the views to render alongside the error.
func (s *Slice[T]) SetError(msg string) {
	s.mutate(func(st *State[T]) {
		st.Err = msg
		st.Loading = false
	})
}

// Clear resets value, error, and LastFetched.
func (s *Slice[T]) Clear() {
	s.mutate(func(st *State[T]) {
		st.Value = nil
		st.Err = ""
		st.LastFetched = time.Time{}
	})
}

// Subscribe registers a subscriber and returns its unsubscribe function.
// Delivery is synchronous with the mutation.
func (s *Slice[T]) Subscribe(fn Subscriber[T]) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn under the lock and notifies subscribers outside it,
// so a subscriber may read or mutate the slice without deadlocking.
func (s *Slice[T]) mutate(fn func(*State[T])) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	subs := make([]Subscriber[T], 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}
