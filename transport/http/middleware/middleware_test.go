package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carepoint/config"
	"carepoint/infras/jwt"
	"carepoint/infras/otel/mocks"
	"carepoint/shared/cache"
	cacheMocks "carepoint/shared/cache/mocks"
	"carepoint/transport/http/middleware"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func limiterConfig(maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(m *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name: "first request in window",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				m.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantCode:      http.StatusNoContent,
			wantRemaining: "1",
		},
		{
			name: "over the limit",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name: "store unavailable lets the request through",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
				m.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
			tt.setupMock(mockCache)

			mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(2), mockCache)
			handler := mw.RateLimit()(http.HandlerFunc(ok))

			request := httptest.NewRequest(http.MethodGet, "/v1/appointments/slots", nil)
			request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRemaining, recorder.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(gomock.NewController(t)))

	recorder := httptest.NewRecorder()
	mw.RateLimit()(http.HandlerFunc(ok)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestSession(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.SessionSecret = "test-secret"
	cfg.JWT.SessionExpireMin = 60

	jwtService := jwt.New(cfg)
	token, err := jwtService.GenerateSessionToken("session-1")
	assert.NoError(t, err)

	var seen string

	handler := middleware.NewSessionMiddleware(jwtService, mocks.NewOtel()).Session(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.SessionID(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantID   string
	}{
		{name: "valid token", header: "Bearer " + token.Token, wantCode: http.StatusNoContent, wantID: "session-1"},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + token.Token, wantCode: http.StatusUnauthorized},
		{name: "forged token", header: "Bearer abc.def.ghi", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""

			request := httptest.NewRequest(http.MethodGet, "/v1/appointments/wizard", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantID, seen)
		})
	}
}
