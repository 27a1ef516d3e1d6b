package middleware

import (
	"carepoint/infras/jwt"
	"carepoint/infras/otel"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"carepoint/transport/http/response"
	"context"
	"errors"
	"net/http"
)

// Session binds a request to the booking wizard named by its bearer token.
type Session interface {
	Session(next http.Handler) http.Handler
}

type sessionImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewSessionMiddleware(jwtService jwt.JWT, otel otel.Otel) Session {
	return &sessionImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

func (m *sessionImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "session.middleware")

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			err = failure.Unauthorized(err.Error())
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateSessionToken(tokenString)
		if err != nil {
			message := "Invalid session token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "Session token has expired"
			}

			err = failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.SetAttribute("session.id", claims.SessionID)
		scope.End()

		ctx := context.WithValue(request.Context(), constant.ContextKeySessionID, claims.SessionID)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// SessionID returns the wizard session bound to ctx by the Session middleware.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(constant.ContextKeySessionID).(string)

	return id, ok && id != constant.Empty
}
