package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// UserService implements administrative user management and profile updates.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ListPage(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	return s.users.ListPage(ctx, page, size)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies an administrative update. Email uniqueness is enforced
// against other accounts; role names must all exist.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if taken, err := s.users.ExistsByEmail(ctx, *input.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.RoleNames != nil {
		roles, err := s.resolveRoles(ctx, input.RoleNames)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
	}

	user.UpdatedAt = time.Now().UTC()
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ToggleStatus flips the active flag. A deactivated account loses the ability
// to authenticate on its very next request.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = !user.Active
	user.UpdatedAt = time.Now().UTC()
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Bool("active", updated.Active).Msg("user status toggled")
	return updated, nil
}

// UpdateRoles replaces the user's role set.
func (s *UserService) UpdateRoles(ctx context.Context, id string, roleNames []string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, domain.ErrInvalidRole
	}

	user.Roles = roles
	user.UpdatedAt = time.Now().UTC()
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Strs("roles", roleNames).Msg("user roles updated")
	return updated, nil
}

func (s *UserService) Search(ctx context.Context, term string) ([]domain.User, error) {
	return s.users.Search(ctx, term)
}

// UpdateProfile applies a self-service update to the caller's own record.
func (s *UserService) UpdateProfile(ctx context.Context, username string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if taken, err := s.users.ExistsByEmail(ctx, *input.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	roles, err := s.roles.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(names) {
		return nil, domain.ErrInvalidRole
	}
	return roles, nil
}
