// Package entities provides the single-table entity store. Every record
// lives in one owner partition under a type-tagged sort key, so all entity
// kinds of a user share a partition and prefix scans retrieve "all
// applications" or "all documents of application X" without a secondary
// index.
package entities

import (
	"context"

	"github.com/Tejani8980/job-app-tracker-backend/internal/server/models"
)

type Repository interface {
	// Put inserts or replaces the record at (OwnerEmail, SortKey).
	Put(ctx context.Context, entity *models.Entity) error

	// Get returns the record at (ownerEmail, sortKey) or common.ErrorNotFound.
	Get(ctx context.Context, ownerEmail, sortKey string) (*models.Entity, error)

	// QueryPrefix returns all records of the owner whose sort key starts
	// with prefix, in creation order.
	QueryPrefix(ctx context.Context, ownerEmail, prefix string) ([]*models.Entity, error)

	// Update merges the given fields into the stored payload. Fields absent
	// from the map are left untouched. Updating a missing key is a no-op at
	// the store level; existence is the caller's concern.
	Update(ctx context.Context, ownerEmail, sortKey string, fields map[string]any) error

	// Delete removes the record. Deleting a missing key is a no-op at the
	// store level.
	Delete(ctx context.Context, ownerEmail, sortKey string) error

	// DeleteAll removes the given records atomically: either every key is
	// gone or none is.
	DeleteAll(ctx context.Context, ownerEmail string, sortKeys []string) error
}
