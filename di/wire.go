//go:build wireinject
// +build wireinject

package di

import (
	"carepoint/config"
	"carepoint/infras/backend"
	"carepoint/infras/jwt"
	"carepoint/infras/otel"
	"carepoint/infras/redis"
	"carepoint/shared/cache"
	"carepoint/transport/http"
	"carepoint/transport/http/middleware"
	"carepoint/transport/http/router"

	appointmentRepository "carepoint/internal/domains/appointment/repository"
	appointmentService "carepoint/internal/domains/appointment/service"
	contactService "carepoint/internal/domains/contact/service"
	appointmentHandler "carepoint/internal/handlers/appointment"
	contactHandler "carepoint/internal/handlers/contact"
	healthHandler "carepoint/internal/handlers/health"

	"github.com/google/wire"
	goRedis "github.com/redis/go-redis/v9"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	backend.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var contactDomain = wire.NewSet(
	contactService.New,
)

var domains = wire.NewSet(
	appointmentDomain,
	contactDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Bind(new(healthHandler.Pinger), new(*goRedis.Client)),
	healthHandler.NewState,
	healthHandler.New,
	appointmentHandler.New,
	contactHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
