package httpapi

import (
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

type ApplicationHandler struct {
	apps *services.ApplicationService
	log  logging.Logger
}

func NewApplicationHandler(apps *services.ApplicationService, log logging.Logger) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, log: log}
}

// Create handles POST /api/applications: multipart with the resume under
// field "file" plus optional jobTitle/companyName/status form values.
func (h *ApplicationHandler) Create(c *gin.Context) {
	owner := callerEmail(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	app, err := h.apps.Create(c.Request.Context(), owner, services.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	}, c.PostForm("jobTitle"), c.PostForm("companyName"), c.PostForm("status"))
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application created successfully", "application": app})
}

func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context(), callerEmail(c))
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.apps.Get(c.Request.Context(), callerEmail(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

type updateApplicationRequest struct {
	JobTitle    *string `json:"jobTitle"`
	CompanyName *string `json:"companyName"`
	Status      *string `json:"status"`
	AppliedDate *string `json:"appliedDate"`
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	var in updateApplicationRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.apps.Update(c.Request.Context(), callerEmail(c), c.Param("id"), services.ApplicationUpdate{
		JobTitle:    in.JobTitle,
		CompanyName: in.CompanyName,
		Status:      in.Status,
		AppliedDate: in.AppliedDate,
	})
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application updated successfully"})
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	err := h.apps.Delete(c.Request.Context(), callerEmail(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// DownloadResume handles GET /api/applications/download?fileKey=... by
// streaming the blob to the caller as an attachment. The key must lie under
// the caller's own prefix.
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	fileKey := c.Query("fileKey")
	if fileKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fileKey query parameter"})
		return
	}

	dl, err := h.apps.DownloadResume(c.Request.Context(), callerEmail(c), fileKey)
	if err != nil {
		respondServiceError(c, h.log, err, "File not found")
		return
	}
	defer dl.Body.Close()

	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, dl.ContentLength, contentType, dl.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", path.Base(fileKey)),
	})
}
