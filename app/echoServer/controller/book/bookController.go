package book

import (
	"errors"
	"log/slog"
	"net/http"

	"libraryfront/app/echoServer/controller"
	"libraryfront/app/echoServer/jwtx"
	"libraryfront/model"
	booksvc "libraryfront/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/books?q=&filter=
// @Summary  Catalog
// @Tags     books
// @Produce  json
// @Param    q       query  string  false  "title, author, ISBN or synopsis"
// @Param    filter  query  string  false  "category or language"
// @Success  200  {object}  map[string]any
// @Failure  502  {object}  map[string]any
// @Router   /v1/books [get]
func (h *Controller) List(c echo.Context) error {
	var q booksvc.Query
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	rows, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load books. Please try again later.")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows, "count": len(rows)})
}

// GET /v1/books/filters
func (h *Controller) Filters(c echo.Context) error {
	f, err := h.Svc.Filters(c.Request().Context())
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load categories. Using default filters.")
	}
	return c.JSON(http.StatusOK, f)
}

// GET /v1/books/:id
// @Summary  Book detail with rent / extend options for the caller
// @Tags     books
// @Produce  json
// @Param    id  path  int  true  "book id"
// @Success  200  {object}  booksvc.DetailView
// @Failure  404  {object}  map[string]any
// @Router   /v1/books/{id} [get]
func (h *Controller) Detail(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	v, err := h.Svc.Detail(c.Request().Context(), id, jwtx.UserIDFromContext(c))
	if err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to load rental information.")
	}
	return c.JSON(http.StatusOK, v)
}

// POST /v1/books/:id/reviews
func (h *Controller) AddReview(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"rating": "1..5", "comment": "required"},
		})
	}
	if req.User == "" {
		if s, ok := jwtx.Session(c); ok {
			req.User = s.Name
		}
	}

	rv, err := h.Svc.AddReview(c.Request().Context(), id, model.Review{User: req.User, Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		if errors.Is(err, booksvc.ErrInvalidReview) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "a reviewer name is required"})
		}
		return controller.Upstream(c, h.Log, err, "Failed to add review. Please try again.")
	}
	return c.JSON(http.StatusCreated, rv)
}

// POST /v1/books
func (h *Controller) Create(c echo.Context) error {
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	b, err := h.Svc.Create(c.Request().Context(), req.toModel())
	if err != nil {
		if errors.Is(err, booksvc.ErrInvalidBook) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		}
		return controller.Upstream(c, h.Log, err, "Failed to save book. Please try again.")
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /v1/books/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	b, err := h.Svc.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, booksvc.ErrInvalidBook) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		}
		return controller.Upstream(c, h.Log, err, "Failed to save book. Please try again.")
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /v1/books/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := controller.ParamID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return controller.Upstream(c, h.Log, err, "Failed to delete book. Please try again.")
	}
	return c.NoContent(http.StatusNoContent)
}
