package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/common"
	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
)

// respondServiceError translates service errors to status codes. notFoundMsg
// names the resource so 404 bodies match the route ("Application not found",
// "Note not found", ...). Backend failures are logged and answered with a
// generic 500 that leaks nothing.
func respondServiceError(c *gin.Context, log logging.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	default:
		log.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err.Error(),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
