package handler

import (
	"errors"
	"net/http"

	"parcel-delivery-api/internal/service"

	"github.com/labstack/echo/v4"
)

// Every endpoint answers with the same envelope:
// {success, message?/error?, ...payload}.

func respondOK(c echo.Context, status int, payload map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// respondServiceError maps service sentinels onto the HTTP taxonomy:
// not-found 404, conflict/validation 400, anything else 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrParcelNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrParcelAlreadyPaid),
		errors.Is(err, service.ErrPaymentIncomplete),
		errors.Is(err, service.ErrInvalidRole):
		return respondError(c, http.StatusBadRequest, err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
}
