package main

import (
	"os"

	"github.com/yigit/placement/internal/pkg/logger"
	"github.com/yigit/placement/internal/server"
)

// @title Placement Tracker API
// @version 1.0
// @description Admin backend for tracking students and predicting their placement outcome.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Setup errors are already logged with detail inside NewServer
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
