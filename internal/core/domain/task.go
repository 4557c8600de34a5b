package domain

import "time"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// Task is a unit of work inside a project. Assignee is optional; the reporter
// is always the user who created the task.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedHours int        `json:"estimatedHours,omitempty"`
	ActualHours    int        `json:"actualHours,omitempty"`
	ProjectID      string     `json:"projectId"`
	Assignee       *Member    `json:"assignee,omitempty"`
	Reporter       Member     `json:"reporter"`
	Tags           []string   `json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// DashboardStats is the aggregate snapshot served on the dashboard.
type DashboardStats struct {
	TotalProjects  int64 `json:"totalProjects"`
	CompletedTasks int64 `json:"completedTasks"`
	PendingTasks   int64 `json:"pendingTasks"`
	TeamMembers    int64 `json:"teamMembers"`
}
