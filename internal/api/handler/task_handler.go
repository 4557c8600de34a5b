package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	taskService ports.TaskService
	authService ports.AuthService
}

func NewTaskHandler(taskService ports.TaskService, authService ports.AuthService) *TaskHandler {
	return &TaskHandler{taskService: taskService, authService: authService}
}

type taskRequest struct {
	Title          string     `json:"title"     validate:"required"`
	Description    string     `json:"description"`
	Status         string     `json:"status"    validate:"omitempty,oneof=todo in_progress review done"`
	Priority       string     `json:"priority"  validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedHours int        `json:"estimatedHours" validate:"omitempty,gte=0"`
	ActualHours    int        `json:"actualHours"    validate:"omitempty,gte=0"`
	ProjectID      string     `json:"projectId" validate:"required"`
	AssigneeID     string     `json:"assigneeId,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

type updateTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"   validate:"omitempty,oneof=todo in_progress review done"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedHours int        `json:"estimatedHours" validate:"omitempty,gte=0"`
	ActualHours    int        `json:"actualHours"    validate:"omitempty,gte=0"`
	AssigneeID     string     `json:"assigneeId,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress review done"`
}

// MyTasks handles GET /api/tasks/my-tasks: tasks where the caller is assignee
// or reporter.
func (h *TaskHandler) MyTasks(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListForUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, "Tasks fetched successfully", tasks)
}

// ByProject handles GET /api/tasks/project/:projectId.
func (h *TaskHandler) ByProject(c echo.Context) error {
	tasks, err := h.taskService.ListByProject(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return response.OK(c, "Project tasks fetched successfully", tasks)
}

// Create handles POST /api/tasks. The caller becomes the reporter.
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reporter, err := h.authService.CurrentUser(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.Priority(req.Priority),
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		Tags:           req.Tags,
	}, reporter)
	if err != nil {
		return err
	}
	return response.Created(c, "Task created successfully", task)
}

// Update handles PUT /api/tasks/:id.
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.Update(c.Request().Context(), c.Param("id"), ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.Priority(req.Priority),
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		AssigneeID:     req.AssigneeID,
		Tags:           req.Tags,
	})
	if err != nil {
		return err
	}
	return response.OK(c, "Task updated successfully", task)
}

// UpdateStatus handles PATCH /api/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateStatus(c.Request().Context(), c.Param("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return response.OK(c, "Task status updated successfully", task)
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.taskService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.OK(c, "Task deleted successfully", nil)
}
