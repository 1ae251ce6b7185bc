package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"libraryfront/app/echoServer/controller"
	"libraryfront/model"
	authsvc "libraryfront/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Creates the user on the library service and returns a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.User  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      502  {object}  map[string]any
// @Router       /v1/users [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.User

	if err := c.Bind(&req); err != nil {
		if ct.Log != nil {
			ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if ct.V != nil {
		if err := ct.V.Struct(req); err != nil {
			if ct.Log != nil {
				ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		}
	} else if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		case errors.Is(err, authsvc.ErrRejected):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "user rejected by library service"})
		default:
			return controller.Upstream(c, ct.Log, err, "Failed to register. Please try again.")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"token":   token,
		"user":    u,
	})
}

// Login
// @Summary      Login
// @Description  Login with a bare user id, returns a session token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      502  {object}  map[string]any
// @Router       /v1/session [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq

	if err := c.Bind(&req); err != nil {
		if ct.Log != nil {
			ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Por favor ingresa un ID de usuario."})
		case errors.Is(err, authsvc.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		default:
			return controller.Upstream(c, ct.Log, err, "Failed to log in. Please try again.")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
		"user":    u,
	})
}

// Logout discards nothing server side; the client drops its token.
// @Summary  Logout
// @Tags     session
// @Success  200  {object}  map[string]any
// @Router   /v1/session [delete]
func (ct *Controller) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
