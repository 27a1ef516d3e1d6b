package health

import (
	"carepoint/infras/otel"
	"carepoint/shared/constant"
	"carepoint/transport/http/response"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) *goRedis.StatusCmd
}

type Handler struct {
	state *State
	redis Pinger
	otel  otel.Otel
}

func New(state *State, redis Pinger, otel otel.Otel) Handler {
	return Handler{
		state: state,
		redis: redis,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Check)
}

// Check reports readiness.
// @Summary Health check
// @Description 200 while serving; 503 once shutdown has begun or the session store is unreachable.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HealthCheck")
	defer scope.End()

	state := handler.state.Get()
	scope.SetAttribute("server.state", state.String())

	switch state {
	case ServerStateReady:
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(writer)

		return
	default:
		response.WithUnhealthy(writer)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("session store unreachable")

		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, state.String())
}
