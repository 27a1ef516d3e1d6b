package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carepoint/config"
	"carepoint/infras/jwt"
	"carepoint/infras/otel/mocks"
	"carepoint/internal/handlers/appointment"
	"carepoint/internal/handlers/contact"
	"carepoint/internal/handlers/health"
	cacheMocks "carepoint/shared/cache/mocks"
	transport "carepoint/transport/http"
	"carepoint/transport/http/middleware"
	"carepoint/transport/http/router"
)

type pinger struct{}

func (pinger) Ping(context.Context) *goRedis.StatusCmd {
	return goRedis.NewStatusResult("PONG", nil)
}

func newServer(t *testing.T, cfg *config.Config) *transport.HTTP {
	t.Helper()

	ot := mocks.NewOtel()
	state := health.NewState()

	handlers := router.DomainHandlers{
		Appointment: appointment.New(nil, middleware.NewSessionMiddleware(jwt.New(cfg), ot), ot),
		Contact:     contact.New(nil, ot),
		Health:      health.New(state, pinger{}, ot),
	}

	mw := middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(gomock.NewController(t)))

	return transport.New(cfg, router.New(handlers), mw, state, ot)
}

func TestHTTP_ServeHTTP(t *testing.T) {
	server := newServer(t, &config.Config{})

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"ready"}`, recorder.Body.String())
	assert.Equal(t, health.ServerStateReady, server.State.Get())

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/appointments/wizard", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHTTP_CORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://hospital.example"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut}
	cfg.App.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}

	server := newServer(t, cfg)

	request := httptest.NewRequest(http.MethodOptions, "/v1/appointments/wizard/draft", nil)
	request.Header.Set("Origin", "https://hospital.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	assert.Equal(t, "https://hospital.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}
