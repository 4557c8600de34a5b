package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// AdminHandler serves administrator-only user management and system stats.
type AdminHandler struct {
	userService      ports.UserService
	dashboardService ports.DashboardService
}

func NewAdminHandler(userService ports.UserService, dashboardService ports.DashboardService) *AdminHandler {
	return &AdminHandler{userService: userService, dashboardService: dashboardService}
}

type updateUserRequest struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
	Active    *bool    `json:"active,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

type userListResponse struct {
	Items      []userResponse     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, "Statistics fetched successfully", stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, "Users fetched successfully", toUserResponses(users))
}

// ListUsersPage handles GET /api/admin/users/page?page=&size=.
func (h *AdminHandler) ListUsersPage(c echo.Context) error {
	page, size := pageParams(c)

	users, total, err := h.userService.ListPage(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return response.OK(c, "Users fetched successfully", userListResponse{
		Items:      toUserResponses(users),
		Pagination: newPagination(total, page, size),
	})
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, "User fetched successfully", toUserResponse(user))
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Active:    req.Active,
		RoleNames: req.Roles,
	})
	if err != nil {
		return err
	}
	return response.OK(c, "User updated successfully", toUserResponse(user))
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.OK(c, "User deleted successfully", nil)
}

// ToggleUserStatus handles PATCH /api/admin/users/:id/toggle-status.
// Deactivation takes effect on the user's very next request.
func (h *AdminHandler) ToggleUserStatus(c echo.Context) error {
	user, err := h.userService.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, "User status updated successfully", toUserResponse(user))
}

// UpdateUserRoles handles PATCH /api/admin/users/:id/roles.
func (h *AdminHandler) UpdateUserRoles(c echo.Context) error {
	var req updateRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateRoles(c.Request().Context(), c.Param("id"), req.Roles)
	if err != nil {
		return err
	}
	return response.OK(c, "User roles updated successfully", toUserResponse(user))
}

// SearchUsers handles GET /api/admin/users/search?q=.
func (h *AdminHandler) SearchUsers(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	users, err := h.userService.Search(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return response.OK(c, "Users searched successfully", toUserResponses(users))
}

// pageParams reads page/size query parameters with sane bounds.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if size <= 0 || size > 100 {
		size = 10
	}
	return page, size
}
