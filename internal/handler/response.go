package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safe-rescue/api-notificaciones/internal/domain"
)

// HTTPErrorHandler is the global error handler for echo. Client errors
// carry their message as a plain-text body; anything unexpected becomes
// a 500 whose cause is logged but not echoed.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := mapError(err)

	var writeErr error
	if message == "" {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.String(status, message)
	}
	if writeErr != nil {
		slog.Error("failed to send error response", "error", writeErr)
	}
}

func mapError(err error) (int, string) {
	// echo's own HTTP errors: unknown routes, method mismatches, malformed
	// bodies rejected by Bind.
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return echoErr.Code, msg
		}
		return echoErr.Code, http.StatusText(echoErr.Code)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, "Error interno del servidor"
	}
}
