package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	authctrl "libraryfront/app/echoServer/controller/auth"
	bookctrl "libraryfront/app/echoServer/controller/book"
	rentalctrl "libraryfront/app/echoServer/controller/rental"
	userctrl "libraryfront/app/echoServer/controller/user"
	"libraryfront/app/echoServer/validation"
	"libraryfront/config"
	bookrepo "libraryfront/repository/book"
	"libraryfront/repository/libraryapi"
	rentalrepo "libraryfront/repository/rental"
	userrepo "libraryfront/repository/user"
	authsvc "libraryfront/service/auth"
	booksvc "libraryfront/service/book"
	rentalsvc "libraryfront/service/rental"
	usersvc "libraryfront/service/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// New wires repositories, services and controllers over api and returns the
// ready echo instance. now overrides the rental clock when non-nil.
func New(cfg config.App, api *libraryapi.Client, log *slog.Logger, now func() time.Time) *echo.Echo {
	// repos
	br := bookrepo.New(api)
	rr := rentalrepo.New(api)
	ur := userrepo.New(api)

	// services
	rs := rentalsvc.New(rr, br)
	if now != nil {
		rs = rentalsvc.NewWithClock(rr, br, now)
	}
	as := authsvc.New(ur, cfg.SessionSecret, cfg.SessionTTLHours)
	bs := booksvc.New(br, rr)
	us := usersvc.New(ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, Rentals: rs, V: v, Log: log}

	e := echo.New()
	e.HideBanner = true
	RegisterMiddlewares(e, MiddlewareConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	e.Validator = validation.New(v)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
			"library": api.BaseURL(),
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	Register(e, C{
		Auth:   authC,
		Book:   bookC,
		Rental: rentalC,
		User:   userC,

		SessionSecret: cfg.SessionSecret,
	})
	return e
}
