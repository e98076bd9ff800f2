package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an error kind to an HTTP status.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders errors returned by the route handlers. Bulk validation
// failures list every rejected item; internal errors hide their message.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var invalid *commands.InvalidItemsError
	if errors.As(err, &invalid) {
		items := make([]servers.ItemError, len(invalid.Items))
		for i, item := range invalid.Items {
			items[i] = servers.ItemError{Id: item.ID, Error: item.Err.Error()}
		}
		s.respond(c, http.StatusBadRequest, servers.ValidationError{
			ValidationError: map[string][]servers.ItemError{invalid.ParamName: items},
		})
		return
	}

	code := statusOf(err)
	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
		message = http.StatusText(code)
	}

	s.respond(c, code, servers.Error{Code: code, Message: message})
}

func (s *Server) respond(c echo.Context, code int, body any) {
	if err := c.JSON(code, body); err != nil {
		s.logger.ErrorContext(c.Request().Context(), "Failed to write response", "error", err)
	}
}
