package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/startup-roster/internal/auth"
	"github.com/yakoovad/startup-roster/internal/service"
	"github.com/yakoovad/startup-roster/pkg/logger"
	"go.uber.org/zap"
)

const claimsKey = "claims"

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

// AuthMiddleware accepts bearer tokens of the allowed types and stores their claims on the context.
func AuthMiddleware(allowed ...auth.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logger.FromContext(c.Request().Context())

			token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || token == "" {
				return unauthorized(c, http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := auth.VerifyToken(token)
			if err != nil {
				l.Warn("rejected token", zap.Error(err))
				return unauthorized(c, http.StatusUnauthorized, "invalid token")
			}

			if !slices.Contains(allowed, claims.Type) {
				l.Warn("token type not allowed", zap.String("type", string(claims.Type)))
				return unauthorized(c, http.StatusForbidden, "token type not allowed")
			}

			c.Set(claimsKey, claims)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, status int, message string) error {
	return c.JSON(status, struct {
		Error *service.Error `json:"error"`
	}{Error: service.NewError(service.ErrorCodeUnauthorized, message)})
}

func claimsFromContext(c echo.Context) *auth.TokenClaims {
	if claims, ok := c.Get(claimsKey).(*auth.TokenClaims); ok {
		return claims
	}
	return &auth.TokenClaims{}
}
