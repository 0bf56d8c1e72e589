package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/logger"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

// AuthCookieName is the name of the authentication cookie.
const AuthCookieName = "summarizer_auth"

// userIDContextKey must match the one read by the handler package.
const userIDContextKey = "userID"

// RequestLoggerMiddleware logs HTTP requests using logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := []any{
				"module", "http",
				"action", "request",
				"resource", "http",
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			}

			switch {
			case res.Status >= 500:
				logger.Error("http request", append(fields, "result", "failed")...)
			case res.Status >= 400:
				logger.Warn("http request", append(fields, "result", "failed")...)
			default:
				logger.Debug("http request", append(fields, "result", "ok")...)
			}

			return nil
		}
	}
}

// JWTAuthMiddleware validates JWT tokens and stores the authenticated user ID
// in the request context. It checks the Authorization header first (API
// calls) and falls back to the auth cookie (browser form submissions).
func JWTAuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			if token == "" {
				if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
					token = cookie.Value
				}
			}

			if token == "" {
				logger.Warn("auth missing",
					"module", "http", "action", "request", "resource", "auth", "result", "failed",
					"method", c.Request().Method, "path", c.Request().URL.Path, "remote_ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "missing authentication",
				})
			}

			userID, err := authService.ValidateToken(token)
			if err != nil {
				logger.Warn("auth invalid",
					"module", "http", "action", "request", "resource", "auth", "result", "failed",
					"method", c.Request().Method, "path", c.Request().URL.Path, "remote_ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid token",
				})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}
