package dto

import (
	"time"

	"noteshare/model"
)

type NoteRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url"`
	IsPublic bool   `json:"is_public"`
}

type NoteResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	ImageURL  string                `json:"image_url,omitempty"`
	IsPublic  bool                  `json:"is_public"`
	UserID    string                `json:"user_id"`
	User      *model.PublicIdentity `json:"user,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ToNoteResponse converts a note, optionally attaching the author's
// public identity. The author is only sent on the sharing feed.
func ToNoteResponse(note *model.Note, author *model.PublicIdentity) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		ImageURL:  note.ImageURL,
		IsPublic:  note.IsPublic,
		UserID:    note.UserID,
		User:      author,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func ToNoteResponses(notes []*model.Note, authors map[string]*model.PublicIdentity) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note, authors[note.UserID])
	}
	return responses
}
