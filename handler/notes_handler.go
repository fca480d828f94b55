package handler

import (
	"errors"
	"log"

	"noteshare/dto"
	"noteshare/middleware"
	"noteshare/model"
	"noteshare/repository"
	"noteshare/usecase"
	"noteshare/utils"

	"github.com/gin-gonic/gin"
)

// GetUserNotesHandler lists the caller's own notes, newest first.
func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	notes, err := notesService.GetUserNotes(c.Request.Context(), userID)
	if err != nil {
		middleware.TrackError("db")
		log.Printf("[ERROR] Failed to fetch notes for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch notes")
		return
	}

	log.Printf("[READ] Fetched %d notes for user %s", len(notes), userID)
	utils.Success(c, dto.ToNoteResponses(notes, nil))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	note, err := notesService.GetNote(c.Request.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		middleware.TrackError("db")
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, nil))
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input")
		return
	}

	note := &model.Note{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		IsPublic: req.IsPublic,
	}

	if err := notesService.CreateNote(c.Request.Context(), note); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	middleware.TrackNoteOperation("create")
	log.Printf("[CREATE] Note created: %q (ID: %s) by user %s", note.Title, note.ID, userID)
	utils.Created(c, dto.ToNoteResponse(note, nil))
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input")
		return
	}

	updates := &model.Note{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		IsPublic: req.IsPublic,
	}

	note, err := notesService.UpdateNote(c.Request.Context(), noteID, userID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	middleware.TrackNoteOperation("update")
	log.Printf("[UPDATE] Note updated: %q (ID: %s) by user %s", note.Title, noteID, userID)
	utils.Success(c, dto.ToNoteResponse(note, nil))
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	if err := notesService.DeleteNote(c.Request.Context(), noteID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Note not found")
			return
		}
		middleware.TrackError("db")
		utils.InternalError(c, "Failed to delete note")
		return
	}

	middleware.TrackNoteOperation("delete")
	log.Printf("[DELETE] Note deleted: %s by user %s", noteID, userID)
	utils.NoContent(c)
}

// GetPublicNotesHandler serves the sharing feed. No authentication;
// every note is annotated with its author's public identity.
func GetPublicNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, authors, err := notesService.GetPublicNotes(c.Request.Context())
	if err != nil {
		middleware.TrackError("db")
		log.Printf("[ERROR] Failed to fetch public notes: %v", err)
		utils.InternalError(c, "Failed to fetch public notes")
		return
	}

	log.Printf("[READ] Fetched %d public notes", len(notes))
	utils.Success(c, dto.ToNoteResponses(notes, authors))
}

func GetPublicNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")

	note, author, err := notesService.GetPublicNote(c.Request.Context(), noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Note not found or not public")
			return
		}
		middleware.TrackError("db")
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, author))
}
