package handler

import (
	"carepoint/config"
	"carepoint/di"
	_ "carepoint/docs"
	"carepoint/shared/logger"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Invalid configuration")
		}

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
