package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suagrafica/portal/internal/service"
)

type errorBody struct {
	Erro string `json:"erro"`
}

var sentinels = []struct {
	err  error
	code int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
}

// statusFor maps an error to a status code and a message safe for clients.
// Unknown errors become a bare 500.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		return he.Code, msg
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.code, strings.TrimPrefix(err.Error(), s.err.Error()+": ")
		}
	}
	return http.StatusInternalServerError, "internal error"
}

// ErrorHandler renders every error as {"erro": message}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusFor(err)
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Erro: msg})
}

// fail logs event at a level matching the status and returns the error the
// client should see.
func fail(l *slog.Logger, event string, err error) error {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(code, msg)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s is not a positive integer", service.ErrValidation, name)
	}
	return uint(id), nil
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: invalid body: %v", service.ErrValidation, err)
}
