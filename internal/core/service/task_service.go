package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// TaskService implements task CRUD.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, logger: logger}
}

func (s *TaskService) ListForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListForUser(ctx, userID)
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

// Create persists a task reported by the caller. The project must exist; the
// assignee, when given, must resolve to an existing user.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput, reporter *domain.User) (*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	var assignee *domain.Member
	if input.AssigneeID != "" {
		user, err := s.users.FindByID(ctx, input.AssigneeID)
		if err != nil {
			return nil, err
		}
		ref := user.Ref()
		assignee = &ref
	}

	status := input.Status
	if status == "" {
		status = domain.TaskTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		ActualHours:    input.ActualHours,
		ProjectID:      input.ProjectID,
		Assignee:       assignee,
		Reporter:       reporter.Ref(),
		Tags:           input.Tags,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", input.ProjectID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("reporter", reporter.Username).Msg("task created")
	return created, nil
}

// Update applies a partial update; zero-valued fields keep their current value.
func (s *TaskService) Update(ctx context.Context, id string, input ports.CreateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.EstimatedHours != 0 {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != 0 {
		task.ActualHours = input.ActualHours
	}
	if input.AssigneeID != "" {
		user, err := s.users.FindByID(ctx, input.AssigneeID)
		if err != nil {
			return nil, err
		}
		ref := user.Ref()
		task.Assignee = &ref
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}

	task.UpdatedAt = time.Now().UTC()
	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Msg("task updated")
	return updated, nil
}

// UpdateStatus moves a task to a new workflow state.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Str("status", string(status)).Msg("task status updated")
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}
