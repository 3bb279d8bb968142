// Package users provides the credential store: user identity records keyed
// by email with lookup-by-email and create-if-absent.
package users

import (
	"context"

	"github.com/Tejani8980/job-app-tracker-backend/internal/server/models"
)

type Repository interface {
	// Create persists a new user. A user with the same email must not
	// exist; otherwise common.ErrorAlreadyExists is returned.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
