// Package repomanager wires concrete repositories to a database handle and
// owns schema migrations. The manager is constructed explicitly and passed
// where repositories are needed, so tests can substitute fakes.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Tejani8980/job-app-tracker-backend/internal/dbx"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/repositories/entities"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entities(db dbx.DBTX) entities.Repository
}
