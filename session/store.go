package session

import (
	"context"
	"sync"

	"noteshare/client"
)

// State is the session lifecycle: Loading until Load() has read the
// persisted credentials, then Authenticated or Unauthenticated.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// Route is the navigation intent a transition signals. The consumer
// decides what "navigating" means (the CLI just prints it).
type Route int

const (
	RouteNone Route = iota
	RouteDashboard
	RouteLogin
)

// AuthAPI is the slice of the API client the store drives.
type AuthAPI interface {
	Login(ctx context.Context, login, password string) (*client.AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*client.User, error)
}

// Store holds the single client-side session. It implements
// client.TokenSource so the API client picks the bearer token up from
// here on every call.
//
// Persisted credentials are trusted on read: Load never validates the
// token against the server, so an expired token only surfaces as an
// AuthError on the next API call.
type Store struct {
	mu    sync.Mutex
	dir   string
	api   AuthAPI
	state State
	user  *client.User
	token string
}

func New(stateDir string) *Store {
	return &Store{
		dir:   stateDir,
		state: StateLoading,
	}
}

// AttachAPI wires the API client in. Separate from New because the
// client itself needs the store as its token source.
func (s *Store) AttachAPI(api AuthAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

// Load resumes a persisted session. Both credential halves must be
// present and unexpired; anything less is Unauthenticated.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, user := s.loadCredentials()
	if token != "" && user != nil {
		s.token = token
		s.user = user
		s.state = StateAuthenticated
	} else {
		s.token = ""
		s.user = nil
		s.state = StateUnauthenticated
	}
	return s.state
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the current user, or nil outside StateAuthenticated.
func (s *Store) User() *client.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token implements client.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Login authenticates and persists the session. On failure the prior
// state is left untouched and the returned error is a *Failure with a
// presentation category.
func (s *Store) Login(ctx context.Context, login, password string) (Route, error) {
	s.mu.Lock()
	api := s.api
	s.mu.Unlock()

	result, err := api.Login(ctx, login, password)
	if err != nil {
		return RouteNone, classify(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveCredentials(result.Token, &result.User); err != nil {
		return RouteNone, &Failure{
			Category: CategoryServerError,
			Message:  "Could not persist session.",
			Err:      err,
		}
	}

	s.token = result.Token
	s.user = &result.User
	s.state = StateAuthenticated
	return RouteDashboard, nil
}

// Register creates the account and then logs in with the same
// credentials; registration itself never authenticates.
func (s *Store) Register(ctx context.Context, username, email, password string) (Route, error) {
	s.mu.Lock()
	api := s.api
	s.mu.Unlock()

	if _, err := api.Register(ctx, username, email, password); err != nil {
		return RouteNone, classify(err)
	}

	return s.Login(ctx, username, password)
}

// Logout clears the persisted credentials and the in-memory session.
func (s *Store) Logout() Route {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearCredentials()
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
	return RouteLogin
}
