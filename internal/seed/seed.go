package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/config"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/auth"
)

// AdminStore is what provisioning needs from the credential store
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// CreateDefaultAdmin provisions the configured admin account. An existing
// admin is left alone unless force_reset is set, in which case its password
// is replaced by the configured one.
func CreateDefaultAdmin(ctx context.Context, store AdminStore, cfg config.AdminConfig, lgr zerolog.Logger) error {
	if cfg.Username == "" {
		return errors.New("admin username is empty")
	}

	existing, err := store.GetByUsername(ctx, cfg.Username)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return fmt.Errorf("error checking for admin: %w", err)
	}

	if existing != nil {
		if !cfg.ForceReset {
			lgr.Debug().Str("username", cfg.Username).Msg("Admin account already provisioned")
			return nil
		}
		if cfg.Password == "" {
			return errors.New("admin force_reset is set but no password is configured")
		}
		hash, err := auth.HashPassword(cfg.Password)
		if err != nil {
			return fmt.Errorf("error hashing admin password: %w", err)
		}
		if err := store.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return err
		}
		lgr.Warn().Str("username", cfg.Username).Msg("Admin password reset from configuration")
		return nil
	}

	if cfg.Password == "" {
		lgr.Warn().Str("username", cfg.Username).Msg("No admin password configured, skipping admin provisioning")
		return nil
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}
	id, err := store.Create(ctx, cfg.Username, hash)
	if err != nil {
		return err
	}
	lgr.Info().Int64("adminID", id).Str("username", cfg.Username).Msg("Admin account created")
	return nil
}
