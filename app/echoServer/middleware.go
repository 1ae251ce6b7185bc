// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"libraryfront/app/echoServer/jwtx"
	"libraryfront/repository/libraryapi"
	"libraryfront/util/jwt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const rateLimitExpiry = 3 * time.Minute

type MiddlewareConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func RegisterMiddlewares(e *echo.Echo, cfg MiddlewareConfig) {

	// X-Forwarded-For is honoured only when it arrives through a private or
	// loopback hop; a direct client cannot pick its own address.
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	}

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(libraryapi.WithRequestID(req.Context(), id)))
		},
	}))

	e.Use(Slog())

	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
			MaxAge:       int((12 * time.Hour).Seconds()),
		}))
	}

	if cfg.RateLimitRPS > 0 {
		e.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return nil
		}
	}
}

// OptionalSession attaches the session when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if h == "" {
				return next(c)
			}
			claims, err := jwt.ParseAuth(h, secret)
			if err != nil {
				c.Logger().Warnf("[AUTH] ignoring invalid session req_id=%s err=%v",
					c.Response().Header().Get(echo.HeaderXRequestID), err)
				return next(c)
			}
			jwtx.SetSession(c, claims)
			return next(c)
		}
	}
}

// RateLimit throttles per client IP. Visitors idle for longer than
// rateLimitExpiry are dropped from the store. The key is c.RealIP(), so the
// echo instance's IPExtractor decides whether forwarding headers count.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	if burst < 1 {
		burst = 1
	}
	deny := func(c echo.Context, _ string, _ error) error {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "Too many requests. Please slow down."})
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: rateLimitExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) { return c.RealIP(), nil },
		DenyHandler:         deny,
		ErrorHandler: func(c echo.Context, err error) error {
			return deny(c, "", err)
		},
	})
}
