package repository

import (
	"context"
	"errors"

	"noteshare/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("Username already taken")
	ErrEmailTaken    = errors.New("Email already registered")
)

// UsersRepository is the storage contract for accounts. Backed by
// mongo in production and by the in-memory store in tests and when no
// MONGO_URI is configured.
type UsersRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	FindByID(ctx context.Context, userID string) (*model.User, error)
	PublicIdentities(ctx context.Context, userIDs []string) (map[string]*model.PublicIdentity, error)
}

// NotesRepository is the storage contract for notes. Every owner-scoped
// operation filters by user_id; a note that exists but belongs to
// someone else reads as ErrNotFound.
type NotesRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error)
	GetNote(ctx context.Context, noteID, userID string) (*model.Note, error)
	UpdateNote(ctx context.Context, noteID, userID string, updates *model.Note) (*model.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
	GetPublicNotes(ctx context.Context) ([]*model.Note, error)
	GetPublicNote(ctx context.Context, noteID string) (*model.Note, error)
}

// SessionsRepository tracks authenticated devices.
type SessionsRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	UpdateSession(ctx context.Context, session *model.Session) error
	CountActiveSessions(ctx context.Context, userID string) (int, error)
	EndLeastActiveSession(ctx context.Context, userID string) error
}
