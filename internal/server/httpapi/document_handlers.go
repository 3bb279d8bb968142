package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

type DocumentHandler struct {
	apps *services.ApplicationService
	log  logging.Logger
}

func NewDocumentHandler(apps *services.ApplicationService, log logging.Logger) *DocumentHandler {
	return &DocumentHandler{apps: apps, log: log}
}

// Add handles POST /api/applications/:id/documents: multipart with one or
// more files under field "files". Files are stored independently; a failure
// mid-batch leaves earlier files stored.
func (h *DocumentHandler) Add(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	uploads := make([]services.Upload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
			return
		}
		defer file.Close()
		uploads = append(uploads, services.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	docs, err := h.apps.AddDocuments(c.Request.Context(), callerEmail(c), c.Param("id"), uploads)
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Supporting documents added", "documents": docs})
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.apps.ListDocuments(c.Request.Context(), callerEmail(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"supportingDocuments": docs})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	err := h.apps.DeleteDocument(c.Request.Context(), callerEmail(c), c.Param("id"), c.Param("docId"))
	if err != nil {
		respondServiceError(c, h.log, err, "Document not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supporting document deleted"})
}
