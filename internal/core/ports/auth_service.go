package ports

import (
	"context"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// RegisterInput carries a registration request into the auth service.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService implements registration, login and first-admin bootstrap.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, username string) (*domain.User, error)

	// SetupStatus reports whether an administrator account exists yet.
	SetupStatus(ctx context.Context) (adminExists bool, err error)
	// CreateFirstAdmin bootstraps the first administrator. It fails once an
	// administrator exists or when the invitation code does not match.
	CreateFirstAdmin(ctx context.Context, input RegisterInput, invitationCode string) (*domain.User, error)
}
