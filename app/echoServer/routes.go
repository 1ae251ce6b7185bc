package echoServer

import (
	"net/http"

	"libraryfront/app/echoServer/controller/auth"
	"libraryfront/app/echoServer/controller/book"
	"libraryfront/app/echoServer/controller/rental"
	"libraryfront/app/echoServer/controller/user"
	"libraryfront/app/echoServer/jwtx"
	jwtutil "libraryfront/util/jwt"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth          *auth.Controller
	Book          *book.Controller
	Rental        *rental.Controller
	User          *user.Controller
	SessionSecret string
}

func Register(e *echo.Echo, c C) {
	// Public, session optional
	pub := e.Group("/v1", OptionalSession(c.SessionSecret))
	pub.POST("/session", c.Auth.Login)
	pub.DELETE("/session", c.Auth.Logout)
	pub.POST("/users", c.Auth.Register)

	pub.GET("/books", c.Book.List)
	pub.GET("/books/filters", c.Book.Filters)
	pub.GET("/books/:id", c.Book.Detail)
	pub.POST("/books/:id/reviews", c.Book.AddReview)

	pub.GET("/rentals/:id", c.Rental.Detail)
	pub.GET("/users", c.User.List)
	pub.GET("/users/:id", c.User.Detail)

	// Session required
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.SessionSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return new(jwtutil.SessionClaims) },
		TokenLookup:   "header:Authorization:Bearer ",
		ErrorHandler: func(ctx echo.Context, err error) error {
			ctx.Logger().Warnf("[AUTH] rejected req_id=%s ip=%s err=%v",
				ctx.Response().Header().Get(echo.HeaderXRequestID), ctx.RealIP(), err)
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "Please log in first."})
		},
	}))
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := jwtx.SessionFromToken(ctx)
			if err != nil {
				ctx.Logger().Warnf("[AUTH] %v req_id=%s", err, ctx.Response().Header().Get(echo.HeaderXRequestID))
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "Please log in first."})
			}
			jwtx.SetSession(ctx, claims)
			return next(ctx)
		}
	})

	// Books (admin)
	auth.POST("/books", c.Book.Create)
	auth.PUT("/books/:id", c.Book.Update)
	auth.DELETE("/books/:id", c.Book.Delete)

	// Rentals
	auth.POST("/books/:id/rent", c.Rental.Rent)
	auth.POST("/rentals/:id/return", c.Rental.Return)
	auth.POST("/rentals/:id/extend", c.Rental.Extend)
	auth.GET("/rentals/my", c.Rental.Mine)
	auth.PUT("/rentals/:id", c.Rental.Reschedule)
	auth.DELETE("/rentals/:id", c.Rental.Delete)

	// Users
	auth.GET("/profile", c.User.Profile)
	auth.PUT("/users/:id", c.User.Update)
	auth.DELETE("/users/:id", c.User.Delete)
}
