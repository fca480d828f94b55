package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"noteshare/client"
)

// Persisted credential layout: the token with its own expiry in
// credentials.json (the cookie contract, 7 days) and the user identity
// in user.json (the local-storage contract). A resumed session needs
// both; partial presence reads as logged out.
const (
	credentialsFile = "credentials.json"
	userFile        = "user.json"

	// TokenTTL is how long a persisted token is trusted before the
	// store treats it as absent.
	TokenTTL = 7 * 24 * time.Hour
)

type persistedCredentials struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Store) credentialsPath() string { return filepath.Join(s.dir, credentialsFile) }
func (s *Store) userPath() string        { return filepath.Join(s.dir, userFile) }

func (s *Store) saveCredentials(token string, user *client.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	creds := persistedCredentials{
		Token:     token,
		ExpiresAt: time.Now().Add(TokenTTL),
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.credentialsPath(), data, 0o600); err != nil {
		return err
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(s.userPath(), userData, 0o600)
}

// loadCredentials returns the persisted token and user, or ("", nil)
// when either half is missing, unreadable or expired.
func (s *Store) loadCredentials() (string, *client.User) {
	data, err := os.ReadFile(s.credentialsPath())
	if err != nil {
		return "", nil
	}

	var creds persistedCredentials
	if json.Unmarshal(data, &creds) != nil || creds.Token == "" {
		return "", nil
	}
	if time.Now().After(creds.ExpiresAt) {
		return "", nil
	}

	userData, err := os.ReadFile(s.userPath())
	if err != nil {
		return "", nil
	}
	var user client.User
	if json.Unmarshal(userData, &user) != nil || user.ID == "" {
		return "", nil
	}

	return creds.Token, &user
}

func (s *Store) clearCredentials() {
	os.Remove(s.credentialsPath())
	os.Remove(s.userPath())
}
