package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &Config{
		BaseURL: server.URL + "/api",
		Timeout: 5 * time.Second,
	}
	return New(config, staticToken(token)), server
}

func TestLoginDecodesAuthResult(t *testing.T) {
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["login"] != "quietwyatt" || body["password"] != "secret123" {
			t.Errorf("Unexpected login payload: %v", body)
		}

		json.NewEncoder(w).Encode(AuthResult{
			Token: "jwt-token",
			User:  User{ID: "u1", Username: "quietwyatt", Email: "qw@example.com"},
		})
	}), "")

	result, err := api.Login(context.Background(), "quietwyatt", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token != "jwt-token" {
		t.Errorf("Expected token 'jwt-token', got %q", result.Token)
	}
	if result.User.Username != "quietwyatt" {
		t.Errorf("Expected user 'quietwyatt', got %q", result.User.Username)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Note{})
	}), "session-token")

	if _, err := api.ListNotes(context.Background()); err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if got != "Bearer session-token" {
		t.Errorf("Expected bearer header, got %q", got)
	}
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var got string
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Note{})
	}), "")

	if _, err := api.ListPublicNotes(context.Background()); err != nil {
		t.Fatalf("ListPublicNotes failed: %v", err)
	}
	if got != "" {
		t.Errorf("Expected no Authorization header, got %q", got)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "BadRequest",
			status:  http.StatusBadRequest,
			message: "note title is required",
			check: func(t *testing.T, err error) {
				var typed *ValidationError
				if !errors.As(err, &typed) {
					t.Fatalf("Expected ValidationError, got %T", err)
				}
				if typed.Message != "note title is required" {
					t.Errorf("Unexpected message: %q", typed.Message)
				}
			},
		},
		{
			name:    "Unauthorized",
			status:  http.StatusUnauthorized,
			message: "Invalid username/email or password",
			check: func(t *testing.T, err error) {
				var typed *AuthError
				if !errors.As(err, &typed) {
					t.Fatalf("Expected AuthError, got %T", err)
				}
			},
		},
		{
			name:    "NotFound",
			status:  http.StatusNotFound,
			message: "Note not found",
			check: func(t *testing.T, err error) {
				var typed *NotFoundError
				if !errors.As(err, &typed) {
					t.Fatalf("Expected NotFoundError, got %T", err)
				}
			},
		},
		{
			name:    "UsernameConflict",
			status:  http.StatusConflict,
			message: "Username already taken",
			check: func(t *testing.T, err error) {
				var typed *ConflictError
				if !errors.As(err, &typed) {
					t.Fatalf("Expected ConflictError, got %T", err)
				}
				if typed.Field != ConflictUsername {
					t.Errorf("Expected username conflict, got %q", typed.Field)
				}
			},
		},
		{
			name:    "EmailConflict",
			status:  http.StatusConflict,
			message: "Email already registered",
			check: func(t *testing.T, err error) {
				var typed *ConflictError
				if !errors.As(err, &typed) {
					t.Fatalf("Expected ConflictError, got %T", err)
				}
				if typed.Field != ConflictEmail {
					t.Errorf("Expected email conflict, got %q", typed.Field)
				}
			},
		},
		{
			name:    "ServerError",
			status:  http.StatusInternalServerError,
			message: "something broke",
			check: func(t *testing.T, err error) {
				var typed *ServerError
				if !errors.As(err, &typed) {
					t.Fatalf("Expected ServerError, got %T", err)
				}
				if typed.StatusCode != http.StatusInternalServerError {
					t.Errorf("Expected status 500, got %d", typed.StatusCode)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": tt.message})
			}), "")

			_, err := api.GetNote(context.Background(), "n1")
			if err == nil {
				t.Fatal("Expected an error")
			}
			tt.check(t, err)
		})
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	api, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "")
	server.Close()

	_, err := api.ListNotes(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError, got %T: %v", err, err)
	}
}

func TestDeleteNoteAcceptsNoContent(t *testing.T) {
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/notes/n1" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}), "token")

	if err := api.DeleteNote(context.Background(), "n1"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
}

func TestErrorMessageFallsBackToRawBody(t *testing.T) {
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("plain failure text"))
	}), "")

	_, err := api.GetNote(context.Background(), "n1")

	var typed *ValidationError
	if !errors.As(err, &typed) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if typed.Message != "plain failure text" {
		t.Errorf("Expected raw body as message, got %q", typed.Message)
	}
}
