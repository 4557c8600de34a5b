package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

type stubStatsCache struct {
	stats *domain.DashboardStats
	gets  int
	sets  int
}

func (c *stubStatsCache) Get(_ context.Context) (*domain.DashboardStats, bool) {
	c.gets++
	if c.stats == nil {
		return nil, false
	}
	return c.stats, true
}

func (c *stubStatsCache) Set(_ context.Context, stats *domain.DashboardStats) {
	c.sets++
	c.stats = stats
}

func TestDashboardService_Stats(t *testing.T) {
	users := newStubUserRepo()
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc := NewDashboardService(projects, tasks, users, nil, zerolog.Nop())

	owner := seedUser(t, users, "ana", "ana@example.com")
	inactive := seedUser(t, users, "ben", "ben@example.com")
	users.users[inactive.ID].Active = false

	seedProject(t, projects, owner, "DSH")
	for _, status := range []domain.TaskStatus{domain.TaskDone, domain.TaskTodo, domain.TaskTodo} {
		if _, err := tasks.Create(context.Background(), &domain.Task{Title: "t", Status: status, Reporter: owner.Ref()}); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalProjects != 1 {
		t.Fatalf("expected 1 project, got %d", stats.TotalProjects)
	}
	if stats.CompletedTasks != 1 {
		t.Fatalf("expected 1 completed task, got %d", stats.CompletedTasks)
	}
	if stats.PendingTasks != 2 {
		t.Fatalf("expected 2 pending tasks, got %d", stats.PendingTasks)
	}
	if stats.TeamMembers != 1 {
		t.Fatalf("expected 1 active member, got %d", stats.TeamMembers)
	}
}

func TestDashboardService_Stats_CacheHit(t *testing.T) {
	projects := newStubProjectRepo()
	projects.err = context.DeadlineExceeded // repos must not be touched on a hit

	cache := &stubStatsCache{stats: &domain.DashboardStats{TotalProjects: 42}}
	svc := NewDashboardService(projects, newStubTaskRepo(), newStubUserRepo(), cache, zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalProjects != 42 {
		t.Fatalf("expected cached value, got %d", stats.TotalProjects)
	}
}

func TestDashboardService_Stats_CacheFill(t *testing.T) {
	cache := &stubStatsCache{}
	svc := NewDashboardService(newStubProjectRepo(), newStubTaskRepo(), newStubUserRepo(), cache, zerolog.Nop())

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill, sets=%d", cache.sets)
	}

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("second Stats failed: %v", err)
	}
	if cache.gets != 2 || cache.sets != 1 {
		t.Fatalf("expected second call served from cache, gets=%d sets=%d", cache.gets, cache.sets)
	}
}
