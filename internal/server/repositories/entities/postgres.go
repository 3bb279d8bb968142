package entities

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Tejani8980/job-app-tracker-backend/internal/common"
	"github.com/Tejani8980/job-app-tracker-backend/internal/dbx"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/models"
)

// PostgresRepository implements the entity store over a dbx.DBTX
// (*sql.DB or *sql.Tx). Entity payloads are kept in a jsonb column, so field
// names are data, never SQL identifiers, and need no per-field escaping.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, entity *models.Entity) error {
	query := `
		INSERT INTO entities (owner_email, sort_key, attrs)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_email, sort_key)
		DO UPDATE SET attrs = EXCLUDED.attrs
	`
	_, err := r.db.ExecContext(ctx, query, entity.OwnerEmail, entity.SortKey, []byte(entity.Attrs))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerEmail, sortKey string) (*models.Entity, error) {
	query := `
		SELECT owner_email, sort_key, attrs, created_at FROM entities
		WHERE owner_email = $1 AND sort_key = $2
	`
	entity := &models.Entity{}
	var attrs []byte
	err := r.db.QueryRowContext(ctx, query, ownerEmail, sortKey).Scan(
		&entity.OwnerEmail, &entity.SortKey, &attrs, &entity.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
	}

	entity.Attrs = json.RawMessage(attrs)
	return entity, nil
}

func (r *PostgresRepository) QueryPrefix(ctx context.Context, ownerEmail, prefix string) ([]*models.Entity, error) {
	query := `
		SELECT owner_email, sort_key, attrs, created_at FROM entities
		WHERE owner_email = $1 AND sort_key LIKE $2
		ORDER BY created_at, sort_key
	`
	rows, err := r.db.QueryContext(ctx, query, ownerEmail, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
	}
	defer rows.Close()

	var result []*models.Entity
	for rows.Next() {
		item := &models.Entity{}
		var attrs []byte
		if err := rows.Scan(&item.OwnerEmail, &item.SortKey, &attrs, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
		}
		item.Attrs = json.RawMessage(attrs)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerEmail, sortKey string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal update fields: %w", err)
	}

	query := `
		UPDATE entities SET attrs = attrs || $3::jsonb
		WHERE owner_email = $1 AND sort_key = $2
	`
	if _, err := r.db.ExecContext(ctx, query, ownerEmail, sortKey, patch); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerEmail, sortKey string) error {
	query := `
		DELETE FROM entities
		WHERE owner_email = $1 AND sort_key = $2
	`
	if _, err := r.db.ExecContext(ctx, query, ownerEmail, sortKey); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, ownerEmail string, sortKeys []string) error {
	run := func(ctx context.Context, db dbx.DBTX) error {
		query := `
			DELETE FROM entities
			WHERE owner_email = $1 AND sort_key = $2
		`
		for _, sortKey := range sortKeys {
			if _, err := db.ExecContext(ctx, query, ownerEmail, sortKey); err != nil {
				return fmt.Errorf("%w: %v", common.ErrorStoreBackend, err)
			}
		}
		return nil
	}

	// Already inside a transaction when the handle is a *sql.Tx.
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, run)
	}
	return run(ctx, r.db)
}

// escapeLike neutralizes LIKE metacharacters in a sort-key prefix. Sort keys
// are built from generated IDs, but owner-supplied parts must not widen the
// match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
