package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/auth"
	"github.com/yigit/placement/internal/pkg/metrics"
)

// AdminStore is the credential store the auth flow reads and rotates
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// TokenIssuer issues access tokens for an authenticated subject
type TokenIssuer interface {
	GenerateAccessToken(subject string) (string, int, error)
}

// Login attempt outcomes for the login counter
const (
	loginSuccess = "success"
	loginFailure = "failure"
	loginError   = "error"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// compareAgainstDummy burns one bcrypt comparison so that an unknown
// username costs the same as a wrong password.
func compareAgainstDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("placement-tracker-dummy-password")
	})
	auth.CheckPassword(dummyHash, password)
}

// AuthService handles the admin login handshake and password rotation
type AuthService struct {
	adminRepo  AdminStore
	jwtService TokenIssuer
	metrics    *metrics.Manager
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo AdminStore, jwtService TokenIssuer, m *metrics.Manager, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		metrics:    m,
		logger:     logger,
	}
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password both yield apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			compareAgainstDummy(req.Password)
			s.metrics.RecordLogin(loginFailure)
			s.logger.Info().Msg("Login rejected")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.metrics.RecordLogin(loginError)
		return nil, fmt.Errorf("error loading admin: %w", err)
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.metrics.RecordLogin(loginFailure)
		s.logger.Info().Msg("Login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(admin.Username)
	if err != nil {
		s.metrics.RecordLogin(loginError)
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	s.metrics.RecordLogin(loginSuccess)
	s.logger.Info().Int64("adminID", admin.ID).Msg("Admin logged in")

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// ChangePassword replaces the admin's password after re-checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, admin *models.Admin, req *dto.ChangePasswordRequest) error {
	if admin == nil {
		return apperrors.ErrUnauthorized
	}
	if !auth.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.logger.Info().Int64("adminID", admin.ID).Msg("Admin password changed")
	return nil
}
