package main

import (
	"os"

	"github.com/kin-platform/kin-backend/internal/pkg/logger"
	"github.com/kin-platform/kin-backend/internal/server"
)

// @title KIN API
// @version 1.0
// @description REST backend for the KIN student organization platform

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, also accepted as an accessToken cookie

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
