package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/dberrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// AdminRepository handles database operations for admin credentials
type AdminRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db, sb: statementBuilder()}
}

// GetByUsername returns apperrors.ErrResourceNotFound when no admin matches
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query, args, err := r.sb.
		Select("id", "username", "password_hash", "created_at", "updated_at").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build admin query: %w", err)
	}

	var admin models.Admin
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("admin not found")
		}
		logger.Error().Err(err).Msg("Error retrieving admin by username")
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &admin, nil
}

// Create inserts an admin and returns its id
func (r *AdminRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	query, args, err := r.sb.
		Insert("admins").
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build admin insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error creating admin")
		return 0, fmt.Errorf("error creating admin: %w", err)
	}
	return id, nil
}

// UpdatePassword replaces the stored hash and bumps updated_at
func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := r.sb.
		Update("admins").
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build admin update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("adminID", id).Msg("Error updating admin password")
		return fmt.Errorf("error updating admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("admin not found")
	}
	return nil
}
