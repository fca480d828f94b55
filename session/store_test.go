package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"noteshare/client"
)

// fakeAPI scripts the auth endpoints for store tests.
type fakeAPI struct {
	loginErr    error
	registerErr error
	registered  []string
}

func (f *fakeAPI) Login(_ context.Context, login, password string) (*client.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.AuthResult{
		Token: "token-for-" + login,
		User:  client.User{ID: "u1", Username: login, Email: login + "@example.com"},
	}, nil
}

func (f *fakeAPI) Register(_ context.Context, username, email, password string) (*client.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, username)
	return &client.User{ID: "u1", Username: username, Email: email}, nil
}

func newTestStore(t *testing.T, api AuthAPI) *Store {
	t.Helper()
	store := New(t.TempDir())
	store.AttachAPI(api)
	return store
}

func TestLoadWithoutCredentialsIsUnauthenticated(t *testing.T) {
	store := newTestStore(t, &fakeAPI{})

	if store.State() != StateLoading {
		t.Errorf("Expected StateLoading before Load, got %v", store.State())
	}
	if state := store.Load(); state != StateUnauthenticated {
		t.Errorf("Expected StateUnauthenticated, got %v", state)
	}
	if store.Token() != "" {
		t.Errorf("Expected empty token, got %q", store.Token())
	}
}

func TestLoginPersistsAndResumes(t *testing.T) {
	dir := t.TempDir()
	api := &fakeAPI{}

	store := New(dir)
	store.AttachAPI(api)
	store.Load()

	route, err := store.Login(context.Background(), "quietwyatt", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if route != RouteDashboard {
		t.Errorf("Expected RouteDashboard, got %v", route)
	}
	if store.State() != StateAuthenticated {
		t.Errorf("Expected StateAuthenticated, got %v", store.State())
	}
	if store.Token() != "token-for-quietwyatt" {
		t.Errorf("Unexpected token %q", store.Token())
	}

	// A fresh store over the same directory resumes the session
	// without touching the API.
	resumed := New(dir)
	if state := resumed.Load(); state != StateAuthenticated {
		t.Fatalf("Expected resumed session, got %v", state)
	}
	if resumed.User() == nil || resumed.User().Username != "quietwyatt" {
		t.Errorf("Resumed session lost the user identity")
	}
	if resumed.Token() != "token-for-quietwyatt" {
		t.Errorf("Resumed session lost the token")
	}
}

func TestExpiredCredentialsAreIgnored(t *testing.T) {
	dir := t.TempDir()

	creds, _ := json.Marshal(persistedCredentials{
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	os.WriteFile(filepath.Join(dir, credentialsFile), creds, 0o600)
	user, _ := json.Marshal(client.User{ID: "u1", Username: "quietwyatt"})
	os.WriteFile(filepath.Join(dir, userFile), user, 0o600)

	store := New(dir)
	if state := store.Load(); state != StateUnauthenticated {
		t.Errorf("Expected expired credentials to read as logged out, got %v", state)
	}
}

func TestMissingUserHalfReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()

	creds, _ := json.Marshal(persistedCredentials{
		Token:     "token",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	os.WriteFile(filepath.Join(dir, credentialsFile), creds, 0o600)

	store := New(dir)
	if state := store.Load(); state != StateUnauthenticated {
		t.Errorf("Expected partial credentials to read as logged out, got %v", state)
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	api := &fakeAPI{loginErr: &client.AuthError{Message: "Invalid username/email or password"}}
	store := newTestStore(t, api)
	store.Load()

	route, err := store.Login(context.Background(), "quietwyatt", "wrong")
	if route != RouteNone {
		t.Errorf("Expected RouteNone on failure, got %v", route)
	}

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("Expected *Failure, got %T", err)
	}
	if failure.Category != CategoryInvalidCredentials {
		t.Errorf("Expected invalid-credentials, got %q", failure.Category)
	}
	if store.State() != StateUnauthenticated {
		t.Errorf("Failed login must not change state, got %v", store.State())
	}
	if store.Token() != "" {
		t.Errorf("Failed login must not set a token")
	}
}

func TestRegisterChainsIntoLogin(t *testing.T) {
	api := &fakeAPI{}
	store := newTestStore(t, api)
	store.Load()

	route, err := store.Register(context.Background(), "newuser", "new@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if route != RouteDashboard {
		t.Errorf("Expected RouteDashboard, got %v", route)
	}
	if len(api.registered) != 1 || api.registered[0] != "newuser" {
		t.Errorf("Expected one registration for 'newuser', got %v", api.registered)
	}
	if store.State() != StateAuthenticated {
		t.Errorf("Expected StateAuthenticated after register, got %v", store.State())
	}
}

func TestRegisterConflictCategories(t *testing.T) {
	tests := []struct {
		name     string
		apiErr   error
		category Category
	}{
		{
			name:     "UsernameTaken",
			apiErr:   &client.ConflictError{Message: "Username already taken", Field: client.ConflictUsername},
			category: CategoryUsernameTaken,
		},
		{
			name:     "EmailTaken",
			apiErr:   &client.ConflictError{Message: "Email already registered", Field: client.ConflictEmail},
			category: CategoryEmailTaken,
		},
		{
			name:     "BadInput",
			apiErr:   &client.ValidationError{Message: "password must be at least 6 characters"},
			category: CategoryInvalidInput,
		},
		{
			name:     "ServerDown",
			apiErr:   &client.ServerError{StatusCode: 500, Message: "boom"},
			category: CategoryServerError,
		},
		{
			name:     "Offline",
			apiErr:   &client.NetworkError{Err: errors.New("connection refused")},
			category: CategoryConnectivity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, &fakeAPI{registerErr: tt.apiErr})
			store.Load()

			_, err := store.Register(context.Background(), "someone", "a@b.com", "secret123")

			var failure *Failure
			if !errors.As(err, &failure) {
				t.Fatalf("Expected *Failure, got %T", err)
			}
			if failure.Category != tt.category {
				t.Errorf("Expected category %q, got %q", tt.category, failure.Category)
			}
			if !errors.Is(err, tt.apiErr) {
				t.Errorf("Failure must wrap the original API error")
			}
		})
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	store.AttachAPI(&fakeAPI{})
	store.Load()

	if _, err := store.Login(context.Background(), "quietwyatt", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if route := store.Logout(); route != RouteLogin {
		t.Errorf("Expected RouteLogin, got %v", route)
	}
	if store.State() != StateUnauthenticated {
		t.Errorf("Expected StateUnauthenticated, got %v", store.State())
	}
	if store.Token() != "" || store.User() != nil {
		t.Errorf("Logout must clear the in-memory session")
	}

	if _, err := os.Stat(filepath.Join(dir, credentialsFile)); !os.IsNotExist(err) {
		t.Errorf("Logout must remove the credentials file")
	}
	if _, err := os.Stat(filepath.Join(dir, userFile)); !os.IsNotExist(err) {
		t.Errorf("Logout must remove the user file")
	}

	resumed := New(dir)
	if state := resumed.Load(); state != StateUnauthenticated {
		t.Errorf("Session must not resume after logout, got %v", state)
	}
}
