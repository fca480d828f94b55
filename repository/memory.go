package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"noteshare/model"
)

// MemoryStore is a map-backed implementation of all three storage
// contracts. The server falls back to it when MONGO_URI is unset, and
// the tests run against it.
type MemoryStore struct {
	mutex    sync.RWMutex
	users    map[string]*model.User    // user_id -> user
	notes    map[string]*model.Note    // note_id -> note
	sessions map[string]*model.Session // session_id -> session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*model.User),
		notes:    make(map[string]*model.Note),
		sessions: make(map[string]*model.Session),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}

	copied := *user
	s.users[user.UserID] = &copied
	return nil
}

func (s *MemoryStore) FindByLogin(_ context.Context, login string) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, user := range s.users {
		if user.Username == login || user.Email == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, userID string) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) PublicIdentities(_ context.Context, userIDs []string) (map[string]*model.PublicIdentity, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	identities := make(map[string]*model.PublicIdentity, len(userIDs))
	for _, id := range userIDs {
		if user, ok := s.users[id]; ok {
			identities[id] = &model.PublicIdentity{
				Username: user.Username,
				Email:    user.Email,
			}
		}
	}
	return identities, nil
}

func (s *MemoryStore) CreateNote(_ context.Context, note *model.Note) error {
	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	copied := *note
	s.notes[note.ID] = &copied
	return nil
}

func (s *MemoryStore) GetUserNotes(_ context.Context, userID string) ([]*model.Note, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	notes := []*model.Note{}
	for _, note := range s.notes {
		if note.UserID == userID {
			copied := *note
			notes = append(notes, &copied)
		}
	}
	sortNewestFirst(notes)
	return notes, nil
}

func (s *MemoryStore) GetNote(_ context.Context, noteID, userID string) (*model.Note, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *note
	return &copied, nil
}

func (s *MemoryStore) UpdateNote(_ context.Context, noteID, userID string, updates *model.Note) (*model.Note, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, ErrNotFound
	}

	note.Title = updates.Title
	note.Content = updates.Content
	note.ImageURL = updates.ImageURL
	note.IsPublic = updates.IsPublic
	note.UpdatedAt = time.Now()

	copied := *note
	return &copied, nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, noteID, userID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return ErrNotFound
	}
	delete(s.notes, noteID)
	return nil
}

func (s *MemoryStore) GetPublicNotes(_ context.Context) ([]*model.Note, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	notes := []*model.Note{}
	for _, note := range s.notes {
		if note.IsPublic {
			copied := *note
			notes = append(notes, &copied)
		}
	}
	sortNewestFirst(notes)
	return notes, nil
}

func (s *MemoryStore) GetPublicNote(_ context.Context, noteID string) (*model.Note, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	note, ok := s.notes[noteID]
	if !ok || !note.IsPublic {
		return nil, ErrNotFound
	}
	copied := *note
	return &copied, nil
}

func (s *MemoryStore) CreateSession(_ context.Context, session *model.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemoryStore) UpdateSession(_ context.Context, session *model.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.sessions[session.SessionID]; !ok {
		return ErrNotFound
	}
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *MemoryStore) CountActiveSessions(_ context.Context, userID string) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	for _, session := range s.sessions {
		if session.UserID == userID && session.IsActive {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) EndLeastActiveSession(_ context.Context, userID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var oldest *model.Session
	for _, session := range s.sessions {
		if session.UserID != userID || !session.IsActive {
			continue
		}
		if oldest == nil || session.LastActivityAt.Before(oldest.LastActivityAt) {
			oldest = session
		}
	}
	if oldest == nil {
		return ErrNotFound
	}
	oldest.IsActive = false
	return nil
}

func sortNewestFirst(notes []*model.Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}
