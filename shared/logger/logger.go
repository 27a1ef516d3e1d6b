package logger

import (
	"carepoint/config"
	"carepoint/shared/constant"
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(writer(os.Getenv("SERVER_ENV")))
	log.Trace().Msg("Zerolog initialized.")
}

// writer keeps raw JSON lines in production and a readable console elsewhere.
func writer(env string) io.Writer {
	if env == constant.ServerEnvProduction {
		return os.Stdout
	}

	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Ctx returns the global logger enriched with the wizard session bound to ctx, if any.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := log.Logger

	if sessionID, ok := ctx.Value(constant.ContextKeySessionID).(string); ok && sessionID != "" {
		l = l.With().Str("session_id", sessionID).Logger()
	}

	return &l
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
