package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// ProjectService implements project CRUD scoped to the calling user.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, users: users, logger: logger}
}

func (s *ProjectService) ListForUser(ctx context.Context, userID string, page, size int) ([]domain.Project, int64, error) {
	return s.projects.ListForUser(ctx, userID, page, size)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// Create persists a new project owned by the caller. Team member IDs must
// resolve to existing users.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput, owner *domain.User) (*domain.Project, error) {
	members, err := s.resolveMembers(ctx, input.TeamMemberIDs)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.ProjectPlanning
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		Code:        strings.ToUpper(input.Code),
		Status:      status,
		Priority:    priority,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
		Owner:       owner.Ref(),
		TeamMembers: members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("code", project.Code).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner", owner.Username).Msg("project created")
	return created, nil
}

// Update applies a partial update; empty fields keep their current value.
func (s *ProjectService) Update(ctx context.Context, id string, input ports.CreateProjectInput) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		project.Name = input.Name
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if input.Status != "" {
		project.Status = input.Status
	}
	if input.Priority != "" {
		project.Priority = input.Priority
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.Budget != 0 {
		project.Budget = input.Budget
	}
	if input.TeamMemberIDs != nil {
		members, err := s.resolveMembers(ctx, input.TeamMemberIDs)
		if err != nil {
			return nil, err
		}
		project.TeamMembers = members
	}

	project.UpdatedAt = time.Now().UTC()
	updated, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// Statistics returns project counts per status plus the total.
func (s *ProjectService) Statistics(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, len(domain.ProjectStatuses)+1)
	for _, status := range domain.ProjectStatuses {
		n, err := s.projects.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[string(status)+"Projects"] = n
	}

	total, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats["totalProjects"] = total
	return stats, nil
}

func (s *ProjectService) resolveMembers(ctx context.Context, ids []string) ([]domain.Member, error) {
	members := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		members = append(members, user.Ref())
	}
	return members, nil
}
