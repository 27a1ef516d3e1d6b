package router_test

import (
	"net/http"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carepoint/infras/otel/mocks"
	"carepoint/internal/handlers/appointment"
	"carepoint/internal/handlers/contact"
	"carepoint/internal/handlers/health"
	"carepoint/transport/http/middleware"
	"carepoint/transport/http/router"
)

func TestRouter_SetupRoutes(t *testing.T) {
	ot := mocks.NewOtel()

	r := router.New(router.DomainHandlers{
		Appointment: appointment.New(nil, middleware.NewSessionMiddleware(nil, ot), ot),
		Contact:     contact.New(nil, ot),
		Health:      health.New(health.NewState(), nil, ot),
	})

	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	var routes []string

	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)

		return nil
	})
	require.NoError(t, err)

	sort.Strings(routes)

	assert.Equal(t, []string{
		"GET /health",
		"GET /swagger/*",
		"GET /v1/appointments/slots",
		"GET /v1/appointments/wizard",
		"PATCH /v1/appointments/wizard/draft",
		"POST /v1/appointments/wizard",
		"POST /v1/appointments/wizard/advance",
		"POST /v1/appointments/wizard/back",
		"POST /v1/appointments/wizard/reset",
		"POST /v1/appointments/wizard/submit",
		"POST /v1/contact",
		"PUT /v1/appointments/wizard/slot",
	}, routes)
}
