// Package services orchestrates the credential, blob, and entity stores to
// implement the user and application lifecycle operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tejani8980/job-app-tracker-backend/internal/common"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/auth"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/config"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/models"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/repositories/users"
)

type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.JWTSecret),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new identity record. Registering an existing email
// returns common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName, phoneNumber string) (*models.User, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  phoneNumber,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed bearer token carrying
// the user's email. Unknown emails and wrong passwords are both reported as
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}
