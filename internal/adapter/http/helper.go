package http

import (
	"errors"
	"net/http"
	"strings"

	domain "github.com/Torteous44/santaCruzService/internal/domain/photo"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// writeDomainError maps a lifecycle error onto its HTTP status class:
// client mistakes are 4xx, upstream and persistence failures are 5xx.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadyApproved),
		errors.Is(err, domain.ErrAlreadyRejected),
		errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUploadFailed):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
