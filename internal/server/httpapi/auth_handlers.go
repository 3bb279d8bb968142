package httpapi

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

var phoneNumberRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type AuthHandler struct {
	users *services.UserService
	log   logging.Logger
}

func NewAuthHandler(users *services.UserService, log logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !phoneNumberRe.MatchString(in.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), in.Email, in.Password, in.FirstName, in.LastName, in.PhoneNumber)
	if err != nil {
		respondServiceError(c, h.log, err, "Not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "email": user.Email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondServiceError(c, h.log, err, "Not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}
