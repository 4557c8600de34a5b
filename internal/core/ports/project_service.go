package ports

import (
	"context"
	"time"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// CreateProjectInput carries a project create request. The same shape is used
// for updates, where nil/empty fields are left unchanged.
type CreateProjectInput struct {
	Name          string
	Description   string
	Code          string
	Status        domain.ProjectStatus
	Priority      domain.Priority
	StartDate     *time.Time
	EndDate       *time.Time
	Budget        float64
	TeamMemberIDs []string
}

// ProjectService implements project CRUD scoped to the calling user.
type ProjectService interface {
	ListForUser(ctx context.Context, userID string, page, size int) ([]domain.Project, int64, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, input CreateProjectInput, owner *domain.User) (*domain.Project, error)
	Update(ctx context.Context, id string, input CreateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	// Statistics returns project counts keyed by "<status>Projects" plus
	// "totalProjects".
	Statistics(ctx context.Context) (map[string]int64, error)
}
