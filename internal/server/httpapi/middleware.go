// Package httpapi exposes the REST surface: routing, authentication
// middleware, request handlers, and error-to-status mapping.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/auth"
)

const emailKey = "userEmail"

// AuthRequired verifies the bearer token and stores the caller's email in
// the request context. Missing token yields 401, invalid or expired 403.
func AuthRequired(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token is missing. Please log in to access this resource."})
			return
		}

		email, err := auth.GetEmailFromToken(tokenString, secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token. Please log in again."})
			return
		}

		c.Set(emailKey, email)
		c.Next()
	}
}

// callerEmail returns the authenticated caller's email set by AuthRequired.
func callerEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

// RequestLogger logs one line per request with method, path, status, and
// duration.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
