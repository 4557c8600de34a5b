package ports

import (
	"context"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// UpdateUserInput carries an administrative user update. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Active    *bool
	RoleNames []string
}

// UpdateProfileInput carries a self-service profile update.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// UserService implements administrative user management and profile updates.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	ListPage(ctx context.Context, page, size int) ([]domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*domain.User, error)
	UpdateRoles(ctx context.Context, id string, roleNames []string) (*domain.User, error)
	Search(ctx context.Context, term string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, username string, input UpdateProfileInput) (*domain.User, error)
}
