package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/middleware"
)

// PerformanceHandler computes the dashboard statistics
type PerformanceHandler interface {
	Summary(ctx context.Context) (*dto.PerformanceSummary, error)
	TopPerformers(ctx context.Context) (*dto.TopPerformersResponse, error)
	SkillDistribution(ctx context.Context) (*dto.SkillDistributionResponse, error)
}

// PerformanceController serves aggregate statistics
type PerformanceController struct {
	performanceService PerformanceHandler
}

// NewPerformanceController creates a new PerformanceController
func NewPerformanceController(performanceService PerformanceHandler) *PerformanceController {
	return &PerformanceController{performanceService: performanceService}
}

// Summary returns averages and the placement rate
// @Summary Performance summary
// @Description Average CGPA and IQ over all students and the percentage of Yes predictions
// @Tags performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PerformanceSummary
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Router /admin/performance/summary [get]
func (c *PerformanceController) Summary(ctx *gin.Context) {
	summary, err := c.performanceService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// TopPerformers returns the five highest CGPAs
// @Summary Top performers
// @Tags performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TopPerformersResponse
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Router /admin/performance/top-performers [get]
func (c *PerformanceController) TopPerformers(ctx *gin.Context) {
	top, err := c.performanceService.TopPerformers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, top)
}

// SkillDistribution counts students per skill
// @Summary Skill distribution
// @Tags performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SkillDistributionResponse
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Router /admin/performance/skill-distribution [get]
func (c *PerformanceController) SkillDistribution(ctx *gin.Context) {
	dist, err := c.performanceService.SkillDistribution(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dist)
}
