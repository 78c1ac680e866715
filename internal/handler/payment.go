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

type PaymentHandler struct {
	paymentService service.PaymentService
	userService    service.UserService
}

func NewPaymentHandler(paymentService service.PaymentService, userService service.UserService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		userService:    userService,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ParcelID == "" || req.Amount <= 0 || req.CustomerEmail == "" {
		return respondError(c, http.StatusBadRequest, "parcelId, amount and customerEmail are required")
	}

	result, err := h.paymentService.CreateCheckoutSession(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"sessionId": result.SessionID,
		"url":       result.URL,
	})
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.SessionID == "" || req.ParcelID == "" {
		return respondError(c, http.StatusBadRequest, "sessionId and parcelId are required")
	}

	trackingNo, err := h.paymentService.VerifyPayment(ctx, req.SessionID, req.ParcelID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"message":     "payment verified",
		"tracking_no": trackingNo,
	})
}

func (h *PaymentHandler) PayManually(c echo.Context) error {
	ctx := c.Request().Context()

	parcelID := c.Param("id")

	var req dto.ManualPayRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.PaymentMethod == "" || req.Amount <= 0 {
		return respondError(c, http.StatusBadRequest, "paymentMethod and amount are required")
	}

	trackingNo, err := h.paymentService.PayManually(ctx, parcelID, req.PaymentMethod, req.Amount)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"message":     "payment recorded",
		"tracking_no": trackingNo,
	})
}

func (h *PaymentHandler) GetPayments(c echo.Context) error {
	ctx := c.Request().Context()

	email := middleware.EmailFromContext(c)
	user, err := h.userService.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, service.ErrUserNotFound) {
		return respondServiceError(c, err)
	}
	isAdmin := user != nil && user.Role == model.RoleAdmin

	payments, err := h.paymentService.GetPayments(ctx, email, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}
