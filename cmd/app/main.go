package main

import (
	"carepoint/config"
	"carepoint/di"
	_ "carepoint/docs"
	"carepoint/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title CarePoint Booking API
// @version 1.0
// @description Appointment booking wizard and contact relay for the hospital site.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from POST /v1/appointments/wizard, sent as "Bearer <token>".
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().Str("app", cfg.App.Name).Str("env", cfg.Server.Env).Msg("Starting service")

	http := di.InitializeService()
	http.Serve()

	log.Info().Msg("Service stopped")
}
