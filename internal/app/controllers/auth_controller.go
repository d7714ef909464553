// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/middleware"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

// AuthHandler is the auth flow the controller drives
type AuthHandler interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ChangePassword(ctx context.Context, admin *models.Admin, req *dto.ChangePasswordRequest) error
}

// AuthController handles authentication related operations
type AuthController struct {
	authService AuthHandler
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthHandler, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles admin login
// @Summary Admin login
// @Description Verifies the admin credentials and returns a bearer token
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Admin username"
// @Param password formData string true "Admin password"
// @Success 200 {object} dto.TokenResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or invalid username or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	tokenResponse, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse)
}

// Dashboard greets the authenticated admin
// @Summary Admin dashboard
// @Description Confirms the bearer token is valid
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Router /admin/dashboard [get]
func (c *AuthController) Dashboard(ctx *gin.Context) {
	username := ctx.GetString(middleware.ContextKeyUsername)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Message: fmt.Sprintf("Welcome, %s! You are authenticated~", username),
	})
}

// ChangePassword rotates the authenticated admin's password
// @Summary Change admin password
// @Description Replaces the password of the authenticated admin after checking the current one
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or wrong current password"
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), admin, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "password updated"})
}
