package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/config"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

// NewRouter assembles the REST surface. Everything under /api/applications
// requires a bearer token; register and login do not.
func NewRouter(cfg *config.Config, log logging.Logger, userSvc *services.UserService, appSvc *services.ApplicationService) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	authH := NewAuthHandler(userSvc, log)
	appH := NewApplicationHandler(appSvc, log)
	docH := NewDocumentHandler(appSvc, log)
	noteH := NewNoteHandler(appSvc, log)

	api := r.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	apps := api.Group("/applications", AuthRequired([]byte(cfg.JWTSecret)))

	apps.POST("", appH.Create)
	apps.GET("", appH.List)
	apps.GET("/download", appH.DownloadResume)
	apps.GET("/:id", appH.Get)
	apps.PUT("/:id", appH.Update)
	apps.DELETE("/:id", appH.Delete)

	apps.POST("/:id/documents", docH.Add)
	apps.GET("/:id/documents", docH.List)
	apps.DELETE("/:id/documents/:docId", docH.Delete)

	apps.POST("/:id/notes", noteH.Add)
	apps.GET("/:id/notes", noteH.List)
	apps.PUT("/:id/notes/:noteId", noteH.Update)
	apps.DELETE("/:id/notes/:noteId", noteH.Delete)

	return r
}
