package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an application error to its HTTP status. Anything outside
// the errs taxonomy is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Validation, not-found and conflict
// messages are shown to the client. Store and unknown errors are logged
// and replaced by a generic message.
func (s *Server) respondError(c echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()

	switch status {
	case http.StatusServiceUnavailable:
		s.logger.WarnContext(c.Request().Context(), "store unavailable", "path", c.Path(), "error", err)
		message = "service temporarily unavailable"
	case http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
		message = "internal server error"
	}

	return c.JSON(status, errorResponse{Error: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

// errorHandler renders errors that escape the route handlers, such as
// unknown routes and wrong methods, in the same JSON shape.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		err = c.JSON(he.Code, errorResponse{Error: message})
	} else {
		err = s.respondError(c, err)
	}
	if err != nil {
		s.logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
	}
}
