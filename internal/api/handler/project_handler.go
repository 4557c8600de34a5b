package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	projectService ports.ProjectService
	authService    ports.AuthService
}

func NewProjectHandler(projectService ports.ProjectService, authService ports.AuthService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, authService: authService}
}

type projectRequest struct {
	Name          string     `json:"name"          validate:"required"`
	Description   string     `json:"description"`
	Code          string     `json:"code"          validate:"required,min=2,max=10"`
	Status        string     `json:"status"        validate:"omitempty,oneof=planning in_progress on_hold completed cancelled"`
	Priority      string     `json:"priority"      validate:"omitempty,oneof=low medium high urgent"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Budget        float64    `json:"budget"        validate:"omitempty,gte=0"`
	TeamMemberIDs []string   `json:"teamMemberIds,omitempty"`
}

type updateProjectRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Status        string     `json:"status"   validate:"omitempty,oneof=planning in_progress on_hold completed cancelled"`
	Priority      string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Budget        float64    `json:"budget"   validate:"omitempty,gte=0"`
	TeamMemberIDs []string   `json:"teamMemberIds,omitempty"`
}

type projectListResponse struct {
	Items      []domain.Project   `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /api/projects?page=&size=. Results are scoped to projects
// the caller owns or belongs to.
func (h *ProjectHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	page, size := pageParams(c)

	projects, total, err := h.projectService.ListForUser(c.Request().Context(), identity.UserID, page, size)
	if err != nil {
		return err
	}
	return response.OK(c, "Projects fetched successfully", projectListResponse{
		Items:      projects,
		Pagination: newPagination(total, page, size),
	})
}

// Get handles GET /api/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, "Project fetched successfully", project)
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner, err := h.authService.CurrentUser(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Code:          req.Code,
		Status:        domain.ProjectStatus(req.Status),
		Priority:      domain.Priority(req.Priority),
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		TeamMemberIDs: req.TeamMemberIDs,
	}, owner)
	if err != nil {
		return err
	}
	return response.Created(c, "Project created successfully", project)
}

// Update handles PUT /api/projects/:id. Empty fields keep their current value.
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projectService.Update(c.Request().Context(), c.Param("id"), ports.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Status:        domain.ProjectStatus(req.Status),
		Priority:      domain.Priority(req.Priority),
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		TeamMemberIDs: req.TeamMemberIDs,
	})
	if err != nil {
		return err
	}
	return response.OK(c, "Project updated successfully", project)
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.OK(c, "Project deleted successfully", nil)
}

// Statistics handles GET /api/projects/statistics.
func (h *ProjectHandler) Statistics(c echo.Context) error {
	stats, err := h.projectService.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, "Project statistics fetched successfully", stats)
}
