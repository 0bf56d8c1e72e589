package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidPassword), errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrSummarize):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error generating summary"})
	case errors.Is(err, service.ErrBatch):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error processing file"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

// statusFor maps a service error to the HTTP status used when rendering a
// page for an interactive caller.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// flashFor converts a service error into a flash-style message for
// interactive callers.
func flashFor(err error) string {
	switch {
	case errors.Is(err, service.ErrSummarize):
		return "Error generating summary. Please try again."
	case errors.Is(err, service.ErrBatch):
		return "Error processing file. Please try again."
	case errors.Is(err, service.ErrInvalid):
		return err.Error()
	default:
		return "Something went wrong. Please try again."
	}
}
