package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// User is the account identity as the API reports it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Author is the public identity attached to sharing-feed notes.
type Author struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsPublic  bool      `json:"is_public"`
	UserID    string    `json:"user_id"`
	User      *Author   `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteDraft is the payload for create and update calls.
type NoteDraft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
	IsPublic bool   `json:"is_public"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenSource supplies the current bearer token, or "" when no session
// is active. The auth session store implements it.
type TokenSource interface {
	Token() string
}

// Client is a typed wrapper over the REST API. Calls are stateless and
// never retried; each one attaches the current bearer token when the
// token source has one.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func New(config *Config, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
		tokens:     tokens,
	}
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	var user User
	if err := c.do(ctx, http.MethodPost, "/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates an identifier that may be a username or an email.
func (c *Client) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	body := map[string]string{
		"login":    login,
		"password": password,
	}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListNotes returns the caller's private notes. The server scopes the
// result to the session identity.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+id, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// ListPublicNotes returns the sharing feed with author attribution.
func (c *Client) ListPublicNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/public-notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetPublicNote(ctx context.Context, id string) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodGet, "/public-notes/"+id, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, draft NoteDraft) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodPost, "/notes", draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, draft NoteDraft) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodPut, "/notes/"+id, draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, nil, nil)
}

// do issues one request: JSON body in, JSON body out, bearer header
// when a token is available, typed error on any non-2xx status.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromStatus(resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}
