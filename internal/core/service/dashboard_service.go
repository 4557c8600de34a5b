package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// StatsCache is an optional short-lived cache in front of the dashboard
// aggregates. It must never hold identity or role data; only counts.
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, bool)
	Set(ctx context.Context, stats *domain.DashboardStats)
}

// DashboardService aggregates counts for the dashboard and admin views.
type DashboardService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	users    ports.UserRepository
	cache    StatsCache
	logger   zerolog.Logger
}

// NewDashboardService builds the service. cache may be nil to disable caching.
func NewDashboardService(projects ports.ProjectRepository, tasks ports.TaskRepository, users ports.UserRepository, cache StatsCache, logger zerolog.Logger) *DashboardService {
	return &DashboardService{projects: projects, tasks: tasks, users: users, cache: cache, logger: logger}
}

// Stats returns the dashboard aggregates, served from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx); ok {
			return stats, nil
		}
	}

	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.CountByStatus(ctx, domain.TaskDone)
	if err != nil {
		return nil, err
	}
	totalTasks, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalProjects:  totalProjects,
		CompletedTasks: completed,
		PendingTasks:   totalTasks - completed,
		TeamMembers:    activeUsers,
	}

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}
