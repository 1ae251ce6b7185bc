package rental

import (
	"log/slog"
	"net/http"

	"libraryfront/app/echoServer/controller"
	"libraryfront/app/echoServer/jwtx"
	"libraryfront/model"
	rs "libraryfront/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// refusal maps the view-conditional refusals; status is 0 for anything else.
func refusal(err error) (status int, msg string) {
	switch rs.Code(err) {
	case rs.ErrBookNotFound:
		return http.StatusNotFound, "book not found"
	case rs.ErrNotFound:
		return http.StatusNotFound, "rental not found"
	case rs.ErrNotOwner:
		return http.StatusForbidden, "this rental belongs to another user"
	case rs.ErrNotAvailable:
		return http.StatusConflict, "book is not available"
	case rs.ErrAlreadyRenting:
		return http.StatusConflict, "you are already renting this book"
	case rs.ErrAlreadyReturned:
		return http.StatusConflict, "rental already returned"
	case rs.ErrAlreadyExtended:
		return http.StatusConflict, "rental already extended"
	case rs.ErrInvalidDays:
		return http.StatusBadRequest, "invalid rental length"
	case rs.ErrInvalidDates:
		return http.StatusBadRequest, "end date must not precede start date"
	}
	return 0, ""
}

// POST /v1/books/:id/rent
// @Summary  Rent a book
// @Tags     rentals
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id       path  int              true  "book id"
// @Param    payload  body  rental.RentReq   true  "7, 14, 21 or 30 days"
// @Success  201  {object}  rs.Rented
// @Failure  409  {object}  map[string]any
// @Failure  502  {object}  map[string]any
// @Router   /v1/books/{id}/rent [post]
func (h *Controller) Rent(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req RentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Rent(c.Request().Context(), jwtx.UserIDFromContext(c), id, req.Days)
	if err != nil {
		if rs.Code(err) == rs.ErrAvailabilityStale && out != nil {
			h.Log.Error("rental created but book still available", "err", err, "rental_id", out.Rental.ID)
			return c.JSON(http.StatusBadGateway, echo.Map{
				"message": "Rental created, but the book could not be marked as unavailable.",
				"rental":  out.Rental,
				"book":    out.Book,
			})
		}
		if status, msg := refusal(err); status != 0 {
			return c.JSON(status, echo.Map{"message": msg})
		}
		return controller.Upstream(c, h.Log, err, "Failed to process rental. Please try again.")
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /v1/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Return(c.Request().Context(), jwtx.UserIDFromContext(c), id)
	if err != nil {
		if status, msg := refusal(err); status != 0 {
			return c.JSON(status, echo.Map{"message": msg})
		}
		return controller.Upstream(c, h.Log, err, "Failed to return book. Please try again.")
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/rentals/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ExtendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	r, err := h.Svc.Extend(c.Request().Context(), jwtx.UserIDFromContext(c), id, req.Days)
	if err != nil {
		if status, msg := refusal(err); status != 0 {
			return c.JSON(status, echo.Map{"message": msg})
		}
		return controller.Upstream(c, h.Log, err, "Failed to extend rental. Please try again.")
	}
	return c.JSON(http.StatusOK, r)
}

// GET /v1/rentals/my
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Active(c.Request().Context(), jwtx.UserIDFromContext(c))
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load rental data. Please try again later.")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	r, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if status, msg := refusal(err); status != 0 {
			return c.JSON(status, echo.Map{"message": msg})
		}
		return controller.Upstream(c, h.Log, err, "Failed to load rental data. Please try again later.")
	}
	return c.JSON(http.StatusOK, r)
}

// PUT /v1/rentals/:id
func (h *Controller) Reschedule(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req RescheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	start, _ := model.ParseDate(req.StartDate)
	end, _ := model.ParseDate(req.EndDate)

	r, err := h.Svc.Reschedule(c.Request().Context(), jwtx.UserIDFromContext(c), id, start, end)
	if err != nil {
		if status, msg := refusal(err); status != 0 {
			return c.JSON(status, echo.Map{"message": msg})
		}
		return controller.Upstream(c, h.Log, err, "Failed to update rental. Please try again.")
	}
	return c.JSON(http.StatusOK, r)
}

// DELETE /v1/rentals/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	err := h.Svc.Delete(c.Request().Context(), jwtx.UserIDFromContext(c), id)
	if err != nil {
		if rs.Code(err) == rs.ErrAvailabilityStale {
			h.Log.Error("rental deleted but book still unavailable", "err", err, "rental_id", id)
			return c.JSON(http.StatusBadGateway, echo.Map{
				"message": "Rental deleted, but the book could not be marked as available.",
			})
		}
		if status, msg := refusal(err); status != 0 {
			return c.JSON(status, echo.Map{"message": msg})
		}
		return controller.Upstream(c, h.Log, err, "Failed to delete rental. Please try again.")
	}
	return c.NoContent(http.StatusNoContent)
}
