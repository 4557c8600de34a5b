package ports

import (
	"context"
	"time"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// CreateTaskInput carries a task create request. For updates, zero values are
// left unchanged.
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.Priority
	DueDate        *time.Time
	EstimatedHours int
	ActualHours    int
	ProjectID      string
	AssigneeID     string
	Tags           []string
}

// TaskService implements task CRUD.
type TaskService interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput, reporter *domain.User) (*domain.Task, error)
	Update(ctx context.Context, id string, input CreateTaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// DashboardService aggregates counts for the dashboard and admin views.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
