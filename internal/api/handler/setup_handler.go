package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// SetupHandler serves the anonymous first-admin bootstrap flow.
type SetupHandler struct {
	authService ports.AuthService
}

func NewSetupHandler(authService ports.AuthService) *SetupHandler {
	return &SetupHandler{authService: authService}
}

type setupAdminRequest struct {
	InvitationCode string `json:"invitationCode" validate:"required"`
	Username       string `json:"username"       validate:"required,min=3,max=50"`
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=6"`
	FirstName      string `json:"firstName"      validate:"required"`
	LastName       string `json:"lastName"       validate:"required"`
}

type setupStatusResponse struct {
	NeedsSetup bool `json:"needsSetup"`
}

// Status handles GET /api/setup/status.
func (h *SetupHandler) Status(c echo.Context) error {
	adminExists, err := h.authService.SetupStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, "Setup status fetched successfully", setupStatusResponse{NeedsSetup: !adminExists})
}

// CreateFirstAdmin handles POST /api/setup/create-first-admin.
func (h *SetupHandler) CreateFirstAdmin(c echo.Context) error {
	var req setupAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.CreateFirstAdmin(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.InvitationCode)
	if err != nil {
		return err
	}

	return response.Created(c, "Administrator account created successfully", registeredResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
