package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/auth"
	"github.com/yigit/placement/internal/pkg/metrics"
)

// Context keys set by JWTAuth
const (
	ContextKeyAdmin    = "admin"
	ContextKeyUsername = "username"
)

// TokenValidator verifies a bearer token
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AdminLookup resolves a token subject to a stored admin
type AdminLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService TokenValidator
	adminRepo  AdminLookup
	metrics    *metrics.Manager
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService TokenValidator, adminRepo AdminLookup, m *metrics.Manager, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		adminRepo:  adminRepo,
		metrics:    m,
		logger:     logger,
	}
}

// JWTAuth requires a valid bearer token whose subject is an existing admin.
// Missing, malformed, expired and forged tokens and unknown subjects all get
// the same 401 response.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			m.reject(c)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.reject(c)
			return
		}

		admin, err := m.adminRepo.GetByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				m.reject(c)
				return
			}
			m.logger.Error().Err(err).Msg("Error resolving token subject")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
			return
		}

		c.Set(ContextKeyAdmin, admin)
		c.Set(ContextKeyUsername, claims.Subject)
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context) {
	m.metrics.RecordAuthRejection()
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(UnauthorizedDetail()))
}

// UnauthorizedDetail is the single error body for every rejected token
func UnauthorizedDetail() *dto.ErrorDetail {
	return dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Could not validate credentials")
}

// CurrentAdmin returns the admin stored by JWTAuth
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(ContextKeyAdmin)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok && admin != nil
}
