package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"libraryfront/repository/libraryapi"

	"github.com/labstack/echo/v4"
)

// Upstream answers for a failed call to the library service: 404 passes
// through, everything else is a 502 carrying msg for display.
func Upstream(c echo.Context, log *slog.Logger, err error, msg string) error {
	if libraryapi.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if log != nil {
		log.Error(msg,
			"err", err,
			"upstream_status", libraryapi.StatusOf(err),
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"message": msg})
}

func ParamID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
