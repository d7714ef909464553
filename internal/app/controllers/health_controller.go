package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/models/dto"
)

// Root greets API clients
// @Summary API root
// @Tags health
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router / [get]
func Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Welcome to the Placement Tracker API"})
}

// Ping answers liveness probes
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /ping [get]
func Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.StatusResponse{Message: "pong", Status: "success"})
}
