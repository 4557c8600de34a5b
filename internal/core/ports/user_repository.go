package ports

import (
	"context"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// UserRepository defines persistence for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	ListPage(ctx context.Context, page, size int) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string) ([]domain.User, error)
	CountActive(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, roleName string) (int64, error)
}

// RoleRepository defines persistence for the role enumeration.
type RoleRepository interface {
	EnsureDefaults(ctx context.Context) error
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindByNames(ctx context.Context, names []string) ([]domain.Role, error)
}
