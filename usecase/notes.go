package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"noteshare/model"
	"noteshare/repository"
	"noteshare/utils"
)

// ImageStore offloads data-URI images out of note documents. Optional;
// when nil, data URIs are stored inline.
type ImageStore interface {
	StoreDataURI(ctx context.Context, noteID, dataURI string) (string, error)
	Delete(ctx context.Context, noteID string) error
}

// Publisher is notified whenever a note becomes visible on the sharing
// feed. The websocket hub implements it.
type Publisher interface {
	NotePublished(note *model.Note, author *model.PublicIdentity)
}

type NotesService struct {
	NotesRepo repository.NotesRepository
	UsersRepo repository.UsersRepository
	Images    ImageStore
	Publisher Publisher
}

func (svc *NotesService) validateNote(note *model.Note) error {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return errors.New("note title is required")
	}
	if len(note.Title) > 200 {
		return errors.New("note title exceeds maximum length")
	}

	if strings.TrimSpace(note.Content) == "" {
		return errors.New("note content is required")
	}
	if len(note.Content) > 50000 {
		return errors.New("note content exceeds maximum length")
	}

	return nil
}

// CreateNote validates and stores a note for the owning user. A public
// note is announced to the feed after the write succeeds.
func (svc *NotesService) CreateNote(ctx context.Context, note *model.Note) error {
	if note.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := svc.validateNote(note); err != nil {
		return err
	}

	note.ID = utils.GenerateNoteID()
	note.ImageURL = svc.offloadImage(ctx, note.ID, note.ImageURL)

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return err
	}

	if note.IsPublic {
		svc.announce(ctx, note)
	}
	return nil
}

func (svc *NotesService) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return svc.NotesRepo.GetUserNotes(ctx, userID)
}

func (svc *NotesService) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return svc.NotesRepo.GetNote(ctx, noteID, userID)
}

// UpdateNote replaces the mutable fields of an owned note. Flipping a
// private note public announces it, same as creating it public.
func (svc *NotesService) UpdateNote(ctx context.Context, noteID, userID string, updates *model.Note) (*model.Note, error) {
	if err := svc.validateNote(updates); err != nil {
		return nil, err
	}

	previous, err := svc.NotesRepo.GetNote(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	newUpload := strings.HasPrefix(updates.ImageURL, "data:")
	updates.ImageURL = svc.offloadImage(ctx, noteID, updates.ImageURL)

	note, err := svc.NotesRepo.UpdateNote(ctx, noteID, userID, updates)
	if err != nil {
		return nil, err
	}

	// A fresh upload overwrites the note-keyed objects in place; only
	// dropping the image or switching to an external URL orphans them.
	if !newUpload && previous.ImageURL != "" && previous.ImageURL != note.ImageURL {
		svc.removeStoredImage(ctx, noteID)
	}

	if note.IsPublic && !previous.IsPublic {
		svc.announce(ctx, note)
	}
	return note, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, noteID, userID string) error {
	if err := svc.NotesRepo.DeleteNote(ctx, noteID, userID); err != nil {
		return err
	}
	svc.removeStoredImage(ctx, noteID)
	return nil
}

// removeStoredImage drops a note's offloaded image objects. Best
// effort: the note document is already written, a leaked object only
// costs storage.
func (svc *NotesService) removeStoredImage(ctx context.Context, noteID string) {
	if svc.Images == nil {
		return
	}
	if err := svc.Images.Delete(ctx, noteID); err != nil {
		log.Printf("[UPLOAD] image cleanup failed for note %s: %v", noteID, err)
	}
}

// GetPublicNotes returns the sharing feed with author attribution.
func (svc *NotesService) GetPublicNotes(ctx context.Context) ([]*model.Note, map[string]*model.PublicIdentity, error) {
	notes, err := svc.NotesRepo.GetPublicNotes(ctx)
	if err != nil {
		return nil, nil, err
	}

	authors, err := svc.authorsFor(ctx, notes)
	if err != nil {
		return nil, nil, err
	}
	return notes, authors, nil
}

func (svc *NotesService) GetPublicNote(ctx context.Context, noteID string) (*model.Note, *model.PublicIdentity, error) {
	note, err := svc.NotesRepo.GetPublicNote(ctx, noteID)
	if err != nil {
		return nil, nil, err
	}

	authors, err := svc.authorsFor(ctx, []*model.Note{note})
	if err != nil {
		return nil, nil, err
	}
	return note, authors[note.UserID], nil
}

func (svc *NotesService) authorsFor(ctx context.Context, notes []*model.Note) (map[string]*model.PublicIdentity, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, note := range notes {
		if !seen[note.UserID] {
			seen[note.UserID] = true
			ids = append(ids, note.UserID)
		}
	}
	return svc.UsersRepo.PublicIdentities(ctx, ids)
}

// offloadImage moves a data-URI payload into the image store when one
// is configured. Offload failures keep the inline data URI; the note
// write must not fail because object storage is down.
func (svc *NotesService) offloadImage(ctx context.Context, noteID, imageURL string) string {
	if svc.Images == nil || !strings.HasPrefix(imageURL, "data:") {
		return imageURL
	}
	stored, err := svc.Images.StoreDataURI(ctx, noteID, imageURL)
	if err != nil {
		log.Printf("[UPLOAD] image offload failed for note %s: %v", noteID, err)
		return imageURL
	}
	return stored
}

func (svc *NotesService) announce(ctx context.Context, note *model.Note) {
	if svc.Publisher == nil {
		return
	}
	authors, err := svc.authorsFor(ctx, []*model.Note{note})
	if err != nil {
		log.Printf("[PUBLISH] author lookup failed for note %s: %v", note.ID, err)
		return
	}
	svc.Publisher.NotePublished(note, authors[note.UserID])
}
