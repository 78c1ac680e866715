package handler

import (
	"errors"
	"net/http"

	"parcel-delivery-api/internal/dto"
	"parcel-delivery-api/internal/middleware"
	"parcel-delivery-api/internal/model"
	"parcel-delivery-api/internal/service"

	"github.com/labstack/echo/v4"
)

type ParcelHandler struct {
	parcelService service.ParcelService
	userService   service.UserService
}

func NewParcelHandler(parcelService service.ParcelService, userService service.UserService) *ParcelHandler {
	return &ParcelHandler{
		parcelService: parcelService,
		userService:   userService,
	}
}

func (h *ParcelHandler) CreateParcel(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateParcelRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ReceiverName == "" || req.ReceiverAddress == "" || req.Cost <= 0 {
		return respondError(c, http.StatusBadRequest, "receiverName, receiverAddress and cost are required")
	}

	senderEmail := middleware.EmailFromContext(c)

	parcel, err := h.parcelService.CreateParcel(ctx, senderEmail, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusCreated, map[string]interface{}{
		"parcel": parcel,
	})
}

func (h *ParcelHandler) GetParcels(c echo.Context) error {
	ctx := c.Request().Context()

	email := middleware.EmailFromContext(c)
	user, err := h.userService.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, service.ErrUserNotFound) {
		return respondServiceError(c, err)
	}
	isAdmin := user != nil && user.Role == model.RoleAdmin

	parcels, err := h.parcelService.GetParcels(ctx, email, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"parcels": parcels,
	})
}

func (h *ParcelHandler) GetParcel(c echo.Context) error {
	ctx := c.Request().Context()

	parcel, err := h.parcelService.GetParcel(ctx, c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"parcel": parcel,
	})
}

func (h *ParcelHandler) UpdateParcel(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateParcelRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	parcel, err := h.parcelService.UpdateParcel(ctx, c.Param("id"), &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"parcel": parcel,
	})
}

func (h *ParcelHandler) DeleteParcel(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.parcelService.DeleteParcel(ctx, c.Param("id")); err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"message": "parcel deleted",
	})
}
