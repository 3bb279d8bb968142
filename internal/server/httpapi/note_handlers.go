package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

type NoteHandler struct {
	apps *services.ApplicationService
	log  logging.Logger
}

func NewNoteHandler(apps *services.ApplicationService, log logging.Logger) *NoteHandler {
	return &NoteHandler{apps: apps, log: log}
}

type addNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (h *NoteHandler) Add(c *gin.Context) {
	var in addNoteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Title == "" || in.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}

	note, err := h.apps.AddNote(c.Request.Context(), callerEmail(c), c.Param("id"), in.Title, in.Description, in.Type)
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Note added", "note": note})
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.apps.ListNotes(c.Request.Context(), callerEmail(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

type updateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
}

func (h *NoteHandler) Update(c *gin.Context) {
	var in updateNoteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.apps.UpdateNote(c.Request.Context(), callerEmail(c), c.Param("id"), c.Param("noteId"), services.NoteUpdate{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
	})
	if err != nil {
		respondServiceError(c, h.log, err, "Note not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note updated", "note": note})
}

func (h *NoteHandler) Delete(c *gin.Context) {
	err := h.apps.DeleteNote(c.Request.Context(), callerEmail(c), c.Param("id"), c.Param("noteId"))
	if err != nil {
		respondServiceError(c, h.log, err, "Note not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
