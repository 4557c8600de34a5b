package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
	"github.com/nexusflow/nexusflow-api/internal/core/token"
)

// AuthService implements registration, login and first-admin bootstrap.
type AuthService struct {
	users          ports.UserRepository
	roles          ports.RoleRepository
	tokens         *token.Manager
	invitationCode string
	logger         zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens *token.Manager, invitationCode string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:          users,
		roles:          roles,
		tokens:         tokens,
		invitationCode: invitationCode,
		logger:         logger,
	}
}

// Register creates a new active user with the default team-member role.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	return s.createUser(ctx, input, domain.RoleTeamMember)
}

// Login verifies credentials and issues a token embedding the user's current
// role names.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("invalid login attempt")
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn().Str("username", username).Msg("login attempt on deactivated account")
		return "", nil, domain.ErrAccountDeactivated
	}

	signed, err := s.tokens.Issue(user.Username, user.RoleNames())
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	return signed, user, nil
}

// CurrentUser loads the caller's full credential record.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// SetupStatus reports whether an administrator account exists.
func (s *AuthService) SetupStatus(ctx context.Context) (bool, error) {
	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateFirstAdmin bootstraps the first administrator account, guarded by an
// externally provisioned invitation code. It self-disables once any
// administrator exists.
func (s *AuthService) CreateFirstAdmin(ctx context.Context, input ports.RegisterInput, invitationCode string) (*domain.User, error) {
	if s.invitationCode == "" {
		return nil, domain.ErrSetupDisabled
	}
	if subtle.ConstantTimeCompare([]byte(invitationCode), []byte(s.invitationCode)) != 1 {
		return nil, domain.ErrBadInvitation
	}

	exists, err := s.SetupStatus(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAdminExists
	}

	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	user, err := s.createUser(ctx, input, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("first administrator created")
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, input ports.RegisterInput, roleName string) (*domain.User, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []domain.Role{*role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", roleName).Msg("user registered")
	return created, nil
}
