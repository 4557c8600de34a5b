package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// ProfileHandler serves the caller's own record.
type ProfileHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewProfileHandler(authService ports.AuthService, userService ports.UserService) *ProfileHandler {
	return &ProfileHandler{authService: authService, userService: userService}
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}
	return response.OK(c, "Profile fetched successfully", toUserResponse(user))
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), identity.Username, ports.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return response.OK(c, "Profile updated successfully", toUserResponse(user))
}
