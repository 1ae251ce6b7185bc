package user

import (
	"log/slog"
	"net/http"

	"libraryfront/app/echoServer/controller"
	"libraryfront/app/echoServer/jwtx"
	"libraryfront/model"
	rs "libraryfront/service/rental"
	usersvc "libraryfront/service/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     usersvc.Service
	Rentals rs.Service
	V       *validator.Validate
	Log     *slog.Logger
}

type UpdateReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// GET /v1/users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load users. Please try again later.")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

// GET /v1/users/:id
func (h *Controller) Detail(c echo.Context) error {
	u, err := h.Svc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load profile data. Please try again later.")
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /v1/users/:id
func (h *Controller) Update(c echo.Context) error {
	id := c.Param("id")
	if id != jwtx.UserIDFromContext(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you can only edit your own profile"})
	}
	var req UpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	u, err := h.Svc.Update(c.Request().Context(), id, &model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to update profile. Please try again.")
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /v1/users/:id
func (h *Controller) Delete(c echo.Context) error {
	id := c.Param("id")
	if id != jwtx.UserIDFromContext(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "you can only delete your own account"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to delete account. Please try again.")
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /v1/profile
// @Summary  Profile with rental history
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  map[string]any
// @Failure  401  {object}  map[string]any
// @Failure  502  {object}  map[string]any
// @Router   /v1/profile [get]
func (h *Controller) Profile(c echo.Context) error {
	s, ok := jwtx.Session(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Please log in first."})
	}
	hist, err := h.Rentals.History(c.Request().Context(), s.Subject)
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load profile data. Please try again later.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":    model.User{ID: s.Subject, Name: s.Name, Email: s.Email},
		"rentals": hist,
	})
}
