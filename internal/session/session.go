// Package session keeps track of who is signed in. Accounts live in a user
// list persisted through storage.Local; the signed-in user is mirrored under
// its own key so a session survives restarts.
package session

import (
	"sync"

	"github.com/five82/folio/internal/placeholder"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/storage"
)

const (
	MsgSignupOK          = "Signup successful"
	MsgDuplicateUsername = "Username already exists"
	MsgLoginOK           = "Login successful"
	MsgInvalidLogin      = "Invalid username or password"
)

// Result reports the outcome of Signup and Login. Validation failures are
// results, not errors.
type Result struct {
	Success bool
	Message string
}

// Store is the session/auth state machine: anonymous or authenticated.
type Store struct {
	mu       sync.RWMutex
	local    *storage.Local
	current  *placeholder.User
	onLogout func()
	watchers state.Observers
}

// Option customises a Store.
type Option func(*Store)

// WithLogoutHook registers fn to run after Logout, outside the store lock.
// The UI uses it to route back to the login view.
func WithLogoutHook(fn func()) Option {
	return func(s *Store) { s.onLogout = fn }
}

// New builds a Store over local and restores a persisted session if one
// exists.
func New(local *storage.Local, opts ...Option) *Store {
	s := &Store{local: local}
	for _, opt := range opts {
		opt(s)
	}
	if user, ok := storage.Get[placeholder.User](local, storage.KeyCurrentUser); ok {
		s.current = &user
	}
	return s
}

// Signup appends user to the persisted list unless the username is taken.
// It never changes who is signed in.
func (s *Store) Signup(user placeholder.User) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, _ := storage.Get[[]placeholder.User](s.local, storage.KeyUsers)
	for _, u := range users {
		if u.Username == user.Username {
			return Result{Success: false, Message: MsgDuplicateUsername}
		}
	}
	users = append(users, user)
	s.local.Set(storage.KeyUsers, users)
	return Result{Success: true, Message: MsgSignupOK}
}

// Login signs in the user whose username and password both match exactly.
// A failed login leaves the current session untouched.
func (s *Store) Login(creds placeholder.Credentials) Result {
	s.mu.Lock()
	users, _ := storage.Get[[]placeholder.User](s.local, storage.KeyUsers)
	var match *placeholder.User
	for i := range users {
		if users[i].Username == creds.Username && users[i].Password == creds.Password {
			match = &users[i]
			break
		}
	}
	if match == nil {
		s.mu.Unlock()
		return Result{Success: false, Message: MsgInvalidLogin}
	}
	user := *match
	s.current = &user
	s.local.Set(storage.KeyCurrentUser, user)
	s.mu.Unlock()

	s.watchers.Notify()
	return Result{Success: true, Message: MsgLoginOK}
}

// Logout clears the session and its persisted record, whatever the prior
// state.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.local.Remove(storage.KeyCurrentUser)
	hook := s.onLogout
	s.mu.Unlock()

	s.watchers.Notify()
	if hook != nil {
		hook()
	}
}

// CurrentUser returns a copy of the signed-in user.
func (s *Store) CurrentUser() (placeholder.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return placeholder.User{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Initials returns the signed-in user's initials, or "" when anonymous.
func (s *Store) Initials() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Initials()
}

// Subscribe registers fn to run after every session change. The returned
// func removes it.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.watchers.Add(fn)
}
