package handler

import (
	"net/http"
	"strconv"

	"parcel-delivery-api/internal/dto"
	"parcel-delivery-api/internal/middleware"
	"parcel-delivery-api/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpsertUser registers a user on first login and refreshes the display name
// afterwards. Roles are never changed here.
func (h *UserHandler) UpsertUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return respondError(c, http.StatusBadRequest, "email is required")
	}

	user, err := h.userService.UpsertUser(ctx, req.Email, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusCreated, map[string]interface{}{
		"user": user,
	})
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.GetUsers(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

func (h *UserHandler) GetMe(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.GetUserByEmail(ctx, middleware.EmailFromContext(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.userService.UpdateRole(ctx, uint(userID), req.Role); err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"message": "role updated",
	})
}
