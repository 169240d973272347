package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/credential-service/internal/api/metrics"
	"github.com/99minutos/credential-service/internal/core/domain"
	"github.com/99minutos/credential-service/internal/core/ports"
)

// DefaultTokenHeader is the request header carrying the session token.
const DefaultTokenHeader = "x-auth-token"

// ContextKeyUserID is the echo.Context key holding the authenticated user id.
const ContextKeyUserID = "user_id"

type userIDKey struct{}

// Auth checks the session token in header and injects the user id into both
// the echo context and the request context. The token is the raw header value,
// with no scheme prefix.
func Auth(verifier ports.TokenVerifier, header string) echo.MiddlewareFunc {
	if header == "" {
		header = DefaultTokenHeader
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := strings.TrimSpace(c.Request().Header.Get(header))
			if token == "" {
				metrics.TokenChecksTotal.WithLabelValues(metrics.ResultMissing).Inc()
				return domain.ErrUnauthenticated
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				metrics.TokenChecksTotal.WithLabelValues(metrics.ResultInvalid).Inc()
				return err
			}

			metrics.TokenChecksTotal.WithLabelValues(metrics.ResultSuccess).Inc()
			c.Set(ContextKeyUserID, userID)
			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), userIDKey{}, userID)))

			return next(c)
		}
	}
}

// UserIDFromContext returns the user id placed by Auth, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok
}
