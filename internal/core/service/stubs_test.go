package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared across the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
	err    error // if set, every call fails with this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = "u" + strconv.Itoa(r.nextID)
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) ListPage(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Search(_ context.Context, term string) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	lower := strings.ToLower(term)
	var out []domain.User
	for _, u := range r.users {
		haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Username + " " + u.Email)
		if strings.Contains(haystack, lower) {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) CountActive(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, u := range r.users {
		if u.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, roleName string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, u := range r.users {
		if u.HasRole(roleName) {
			n++
		}
	}
	return n, nil
}

type stubRoleRepo struct {
	roles map[string]domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]domain.Role)}
	for _, role := range domain.DefaultRoles() {
		r.roles[role.Name] = role
	}
	return r
}

func (r *stubRoleRepo) EnsureDefaults(_ context.Context) error { return nil }

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *stubRoleRepo) FindByNames(_ context.Context, names []string) ([]domain.Role, error) {
	var out []domain.Role
	for _, name := range names {
		if role, ok := r.roles[name]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
	err      error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	clone.TeamMembers = append([]domain.Member(nil), p.TeamMembers...)
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.projects {
		if p.Code == project.Code {
			return nil, domain.ErrDuplicateCode
		}
	}
	r.nextID++
	clone := cloneProject(project)
	clone.ID = "p" + strconv.Itoa(r.nextID)
	r.projects[clone.ID] = cloneProject(clone)
	return clone, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) ListForUser(_ context.Context, userID string, page, size int) ([]domain.Project, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var matched []domain.Project
	for _, p := range r.projects {
		if p.Owner.ID == userID {
			matched = append(matched, *cloneProject(p))
			continue
		}
		for _, m := range p.TeamMembers {
			if m.ID == userID {
				matched = append(matched, *cloneProject(p))
				break
			}
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubProjectRepo) Update(_ context.Context, project *domain.Project) (*domain.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.projects[project.ID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	r.projects[project.ID] = cloneProject(project)
	return cloneProject(project), nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) Count(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.projects)), nil
}

func (r *stubProjectRepo) CountByStatus(_ context.Context, status domain.ProjectStatus) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, p := range r.projects {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
	err    error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	if t.Assignee != nil {
		a := *t.Assignee
		clone.Assignee = &a
	}
	clone.Tags = append([]string(nil), t.Tags...)
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	clone := cloneTask(task)
	clone.ID = "t" + strconv.Itoa(r.nextID)
	r.tasks[clone.ID] = cloneTask(clone)
	return clone, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) ListForUser(_ context.Context, userID string) ([]domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Task
	for _, t := range r.tasks {
		if (t.Assignee != nil && t.Assignee.ID == userID) || t.Reporter.ID == userID {
			out = append(out, *cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID string) ([]domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, *cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) Count(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.tasks)), nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context, status domain.TaskStatus) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, t := range r.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}
